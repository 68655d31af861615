package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolane/internal/datetime"
	"github.com/sandeepkv93/todolane/internal/logger"
	"github.com/sandeepkv93/todolane/internal/model"
)

func (m Model) currentCategory() string {
	if m.CategoryIndex < 0 || m.CategoryIndex >= len(m.Categories) {
		return ""
	}
	return m.Categories[m.CategoryIndex].Name
}

// visible is the list in display order: open tasks, then completed.
func (m Model) visible() []model.Task {
	out := make([]model.Task, 0, len(m.Open)+len(m.Completed))
	out = append(out, m.Open...)
	return append(out, m.Completed...)
}

func (m Model) selected() (model.Task, bool) {
	all := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(all) {
		return model.Task{}, false
	}
	return all[m.Cursor], true
}

func (m *Model) reload() error {
	cats, err := m.svc.Categories(m.ctx)
	if err != nil {
		return err
	}
	m.Categories = cats
	if m.CategoryIndex >= len(cats) {
		m.CategoryIndex = len(cats) - 1
	}
	if m.CategoryIndex < 0 {
		m.CategoryIndex = 0
	}

	theme, err := m.svc.Theme(m.ctx)
	if err != nil {
		return err
	}
	m.Theme = theme

	m.Open, m.Completed = nil, nil
	if name := m.currentCategory(); name != "" {
		all, err := m.svc.Tasks(m.ctx, name)
		if err != nil {
			return err
		}
		m.Open, m.Completed = model.Split(all)
	}
	m.clampCursor()
	return nil
}

func (m *Model) clampCursor() {
	n := len(m.Open) + len(m.Completed)
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) selectCategory(name string) bool {
	for i, c := range m.Categories {
		if strings.EqualFold(c.Name, name) {
			m.CategoryIndex = i
			m.Cursor = 0
			return true
		}
	}
	return false
}

// refresh reloads from the store, keeping the selected task under the
// cursor when it still exists.
func (m *Model) refresh() {
	current, hadSelection := m.selected()
	if err := m.reload(); err != nil {
		m.fail(err)
		return
	}
	if hadSelection {
		m.selectTask(current.ID)
	}
}

// resolveCategory matches name case-insensitively against the loaded
// categories and returns the stored spelling.
func (m Model) resolveCategory(name string) (string, bool) {
	for _, c := range m.Categories {
		if strings.EqualFold(c.Name, name) {
			return c.Name, true
		}
	}
	return "", false
}

func (m *Model) selectTask(id string) {
	for i, t := range m.visible() {
		if t.ID == id {
			m.Cursor = i
			return
		}
	}
}

func (m *Model) setStatus(format string, args ...any) {
	m.Status = StatusBar{Text: fmt.Sprintf(format, args...)}
}

func (m *Model) fail(err error) {
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	logger.Warn("ui action failed", "err", err)
}

// caption is the date/time hint shown next to a task.
func (m Model) caption(t model.Task) string {
	parts := make([]string, 0, 2)
	if t.Date != "" {
		if at, ok, err := t.Due(m.svc.Location()); err == nil && ok {
			parts = append(parts, datetime.RelativeLabel(at, m.now().In(at.Location())))
		} else {
			parts = append(parts, t.Date)
		}
	}
	if t.Time != "" {
		parts = append(parts, t.Time)
	}
	return strings.Join(parts, " ")
}

// typeInto feeds a key press to a text input, appending rune input directly
// so pasted runs arrive whole.
func typeInto(in *textinput.Model, msg tea.KeyMsg) {
	if msg.Type == tea.KeyRunes {
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
		return
	}
	if msg.Type == tea.KeySpace {
		in.SetValue(in.Value() + " ")
		in.CursorEnd()
		return
	}
	updated, _ := in.Update(msg)
	*in = updated
}
