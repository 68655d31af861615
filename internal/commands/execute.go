package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Edit     func(EditArgs) (Result, error)
	Done     func(TargetArgs) (Result, error)
	Delete   func(TargetArgs) (Result, error)
	Undo     func() (Result, error)
	Category func(CategoryArgs) (Result, error)
	Theme    func() (Result, error)
	Show     func(ShowArgs) (Result, error)
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing("edit")
		}
		return handlers.Edit(*cmd.Edit)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing("done")
		}
		return handlers.Done(*cmd.Target)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing("delete")
		}
		return handlers.Delete(*cmd.Target)
	case TypeUndo:
		if handlers.Undo == nil {
			return Result{}, missing("undo")
		}
		return handlers.Undo()
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, missing("category")
		}
		return handlers.Category(*cmd.Category)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing("theme")
		}
		return handlers.Theme()
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing("show")
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
