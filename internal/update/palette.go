package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolane/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.setStatus("command palette closed")
		return m, nil
	case "enter":
		return m.executePaletteCommand(m.commandInput.Value())
	default:
		typeInto(&m.commandInput, msg)
	}
	return m, nil
}

func (m *Model) closePalette() {
	if m.Mode == ModePalette {
		m.Mode = ModeList
	}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand(input string) (tea.Model, tea.Cmd) {
	m.closePalette()
	raw := strings.TrimSpace(input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.fail(err)
		return m, nil
	}

	var follow tea.Cmd
	category := m.currentCategory()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			created, err := m.svc.AddTask(m.ctx, category, a.Text, a.Date, a.Time)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %q", created.Text)}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			target, err := m.svc.TaskByNumber(m.ctx, category, e.Number)
			if err != nil {
				return commands.Result{}, err
			}
			edited, err := m.svc.EditTask(m.ctx, target.ID, e.Text, e.Date, e.Time)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("saved %q", edited.Text)}, nil
		},
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			target, err := m.svc.TaskByNumber(m.ctx, category, t.Number)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := m.svc.ToggleComplete(m.ctx, target.ID)
			if err != nil {
				return commands.Result{}, err
			}
			if updated.Completed {
				return commands.Result{Message: fmt.Sprintf("completed %q", updated.Text)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("reopened %q", updated.Text)}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			target, err := m.svc.TaskByNumber(m.ctx, category, t.Number)
			if err != nil {
				return commands.Result{}, err
			}
			follow, err = m.deleteTask(target.ID)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Undo: func() (commands.Result, error) {
			restored, err := m.svc.Undo(m.ctx)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("restored %q", restored.Text)}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			switch c.Action {
			case commands.CategoryAdd:
				created, err := m.svc.AddCategory(m.ctx, c.Name)
				if err != nil {
					return commands.Result{}, err
				}
				return commands.Result{Message: fmt.Sprintf("added category %q", created.Name)}, nil
			default:
				name := category
				if c.Name != "" {
					resolved, ok := m.resolveCategory(c.Name)
					if !ok {
						return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no category named %q", c.Name)}
					}
					name = resolved
				}
				m.confirmCategoryDelete(name)
				return commands.Result{Message: fmt.Sprintf("confirm delete of %q", name)}, nil
			}
		},
		Theme: func() (commands.Result, error) {
			next, err := m.svc.ToggleTheme(m.ctx)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("theme: %s", next)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			if !m.selectCategory(s.Category) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no category named %q", s.Category)}
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", m.currentCategory())}, nil
		},
	})
	if err != nil {
		m.fail(err)
		return m, nil
	}
	if rerr := m.reload(); rerr != nil {
		m.fail(rerr)
		return m, follow
	}
	m.setStatus("%s", res.Message)
	return m, follow
}
