package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeEdit     Type = "edit"
	TypeDone     Type = "done"
	TypeDelete   Type = "delete"
	TypeUndo     Type = "undo"
	TypeCategory Type = "category"
	TypeTheme    Type = "theme"
	TypeShow     Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs carries "<text> | <date> | <time>", the last two optional.
type AddArgs struct {
	Text string
	Date string
	Time string
}

type EditArgs struct {
	Number int
	Text   string
	Date   string
	Time   string
}

// TargetArgs points at a task by its 1-based number in the visible list.
type TargetArgs struct {
	Number int
}

type CategoryAction string

const (
	CategoryAdd    CategoryAction = "add"
	CategoryDelete CategoryAction = "delete"
)

type CategoryArgs struct {
	Action CategoryAction
	// Name is required for add; empty on delete means the current tab.
	Name string
}

type ShowArgs struct {
	Category string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Edit     *EditArgs
	Target   *TargetArgs
	Category *CategoryArgs
	Show     *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDone, TypeDelete:
		return parseTarget(input, Type(head), args)
	case TypeUndo, TypeTheme:
		if len(args) > 0 {
			return Command{}, invalid("%s takes no arguments", head)
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeCategory:
		return parseCategory(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text, date, clock, err := splitSchedule(args)
	if err != nil {
		return Command{}, err
	}
	if text == "" {
		return Command{}, invalid("add requires task text")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text, Date: date, Time: clock}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("edit requires a task number and text")
	}
	n, err := parseNumber(args[0])
	if err != nil {
		return Command{}, err
	}
	text, date, clock, err := splitSchedule(args[1:])
	if err != nil {
		return Command{}, err
	}
	if text == "" {
		return Command{}, invalid("edit requires task text")
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Number: n, Text: text, Date: date, Time: clock}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires a task number", typ)
	}
	n, err := parseNumber(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Number: n}}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("category requires add or delete")
	}
	name := strings.Join(args[1:], " ")
	switch CategoryAction(strings.ToLower(args[0])) {
	case CategoryAdd:
		if name == "" {
			return Command{}, invalid("category add requires a name")
		}
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Action: CategoryAdd, Name: name}}, nil
	case CategoryDelete:
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Action: CategoryDelete, Name: name}}, nil
	default:
		return Command{}, invalid("unknown category action: %s", args[0])
	}
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("show requires a category")
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Category: strings.Join(args, " ")}}, nil
}

// splitSchedule splits "text | date | time" into its trimmed segments.
func splitSchedule(args []string) (text, date, clock string, err error) {
	segments := strings.Split(strings.Join(args, " "), "|")
	if len(segments) > 3 {
		return "", "", "", invalid("expected at most text | date | time")
	}
	for len(segments) < 3 {
		segments = append(segments, "")
	}
	text = strings.TrimSpace(segments[0])
	date = strings.TrimSpace(segments[1])
	clock = strings.TrimSpace(segments[2])
	if clock != "" && date == "" {
		return "", "", "", invalid("a time needs a date")
	}
	return text, date, clock, nil
}

func parseNumber(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || n < 1 {
		return 0, invalid("task number must be a positive integer, got %q", raw)
	}
	return n, nil
}
