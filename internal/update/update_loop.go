package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolane/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForReminderCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeForm:
			return m.handleFormKey(typed)
		case ModeCategory:
			return m.handleCategoryKey(typed), nil
		case ModeConfirmCategory:
			return m.handleConfirmKey(typed), nil
		case ModePalette:
			return m.handlePaletteKey(typed)
		}
		return m.handleListKey(typed)
	case RefreshMsg:
		m.refresh()
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail(typed.Err)
		}
		return m, nil
	case UndoExpiredMsg:
		if typed.Seq == m.undoSeq {
			if _, _, ok := m.svc.PendingUndo(); !ok && strings.Contains(m.Status.Text, "undo") {
				m.Status = StatusBar{}
			}
		}
		return m, nil
	case ReminderDueMsg:
		m.onReminder(typed.Event)
		if m.Scheduler != nil {
			return m, waitForReminderCmd(m.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.NextCategory):
		m.shiftCategory(1)
	case key.Matches(msg, m.Keys.PrevCategory):
		m.shiftCategory(-1)
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.Open)+len(m.Completed)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.Keys.Delete):
		return m.deleteSelected()
	case key.Matches(msg, m.Keys.Undo):
		m.undo()
	case key.Matches(msg, m.Keys.Add):
		m.openForm("", "", "", "")
	case key.Matches(msg, m.Keys.Edit):
		if t, ok := m.selected(); ok {
			m.openForm(t.ID, t.Text, t.Date, t.Time)
		}
	case key.Matches(msg, m.Keys.AddCategory):
		m.Mode = ModeCategory
		m.categoryInput.SetValue("")
		m.categoryInput.Focus()
	case key.Matches(msg, m.Keys.DeleteCategory):
		m.confirmCategoryDelete(m.currentCategory())
	case key.Matches(msg, m.Keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.Keys.Palette):
		m.Mode = ModePalette
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.setStatus("command palette active")
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	theme := string(m.Theme)
	names := make([]string, 0, len(m.Categories))
	for _, c := range m.Categories {
		names = append(names, c.Name)
	}

	body := m.renderTaskList()
	switch m.Mode {
	case ModeForm:
		body = m.renderForm()
	case ModeCategory:
		body = views.RenderForm(views.FormData{
			Theme:  theme,
			Title:  "Add a New Category",
			Fields: []string{m.categoryInput.View()},
			Hint:   "[enter] save  [esc] cancel",
		})
	case ModeConfirmCategory:
		body = views.RenderConfirm(fmt.Sprintf("Delete %q and all of its tasks?", m.PendingCategory), theme)
	}

	side := m.renderHelpIfVisible()
	if m.Mode == ModePalette {
		side = strings.TrimSpace(views.RenderCommandPalette(true, m.commandInput.View()) + "\n" + side)
	}

	notification := ""
	if len(m.Notifications) > 0 {
		last := m.Notifications[len(m.Notifications)-1]
		notification = views.RenderNotification(last.Level, fmt.Sprintf("%s: %s", last.Title, last.Body))
	}

	return views.RenderApp(views.AppData{
		Theme:         theme,
		Header:        fmt.Sprintf("todolane | %s | theme: %s", m.currentCategory(), m.Theme),
		Tabs:          views.RenderTabs(names, m.CategoryIndex, theme),
		Body:          body,
		Side:          side,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  notification,
		Footer:        m.helpModel.ShortHelpView(m.Keys.ShortHelp()),
	})
}

func (m Model) renderTaskList() string {
	data := views.TaskListData{Theme: string(m.Theme)}
	for i, t := range m.visible() {
		row := views.TaskRowData{
			Number:    i + 1,
			Text:      t.Text,
			Caption:   m.caption(t),
			Color:     t.BgColor,
			Completed: t.Completed,
			Selected:  i == m.Cursor,
		}
		if t.Completed {
			data.Completed = append(data.Completed, row)
		} else {
			data.Open = append(data.Open, row)
		}
	}
	return views.RenderTaskList(data)
}

func (m *Model) shiftCategory(delta int) {
	n := len(m.Categories)
	if n == 0 {
		return
	}
	m.CategoryIndex = (m.CategoryIndex + delta + n) % n
	m.Cursor = 0
	if err := m.reload(); err != nil {
		m.fail(err)
	}
}

func (m *Model) toggleSelected() {
	t, ok := m.selected()
	if !ok {
		return
	}
	updated, err := m.svc.ToggleComplete(m.ctx, t.ID)
	if err != nil {
		m.fail(err)
		return
	}
	if err := m.reload(); err != nil {
		m.fail(err)
		return
	}
	m.selectTask(updated.ID)
	if updated.Completed {
		m.setStatus("completed %q", updated.Text)
	} else {
		m.setStatus("reopened %q", updated.Text)
	}
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	cmd, err := m.deleteTask(t.ID)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	return m, cmd
}

// deleteTask removes the task and arms the undo hint timer.
func (m *Model) deleteTask(id string) (tea.Cmd, error) {
	removed, err := m.svc.DeleteTask(m.ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.reload(); err != nil {
		return nil, err
	}
	window := m.svc.UndoWindow()
	m.setStatus("deleted %q, press u to undo (%ds)", removed.Text, int(window/time.Second))
	m.undoSeq++
	seq := m.undoSeq
	return tea.Tick(window, func(time.Time) tea.Msg { return UndoExpiredMsg{Seq: seq} }), nil
}

func (m *Model) undo() {
	restored, err := m.svc.Undo(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	if err := m.reload(); err != nil {
		m.fail(err)
		return
	}
	m.selectCategory(restored.Category)
	if err := m.reload(); err != nil {
		m.fail(err)
		return
	}
	m.selectTask(restored.ID)
	m.setStatus("restored %q", restored.Text)
}

func (m *Model) toggleTheme() {
	next, err := m.svc.ToggleTheme(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Theme = next
	m.setStatus("theme: %s", next)
}

func (m *Model) confirmCategoryDelete(name string) {
	if name == "" {
		return
	}
	m.PendingCategory = name
	m.Mode = ModeConfirmCategory
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch strings.ToLower(msg.String()) {
	case "y":
		name := m.PendingCategory
		m.PendingCategory = ""
		m.Mode = ModeList
		if err := m.svc.DeleteCategory(m.ctx, name); err != nil {
			m.fail(err)
			return m
		}
		if err := m.reload(); err != nil {
			m.fail(err)
			return m
		}
		m.setStatus("deleted category %q", name)
	case "n", "esc":
		m.PendingCategory = ""
		m.Mode = ModeList
		m.setStatus("category kept")
	}
	return m
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.categoryInput.Blur()
	case "enter":
		created, err := m.svc.AddCategory(m.ctx, m.categoryInput.Value())
		if err != nil {
			m.fail(err)
			return m
		}
		m.Mode = ModeList
		m.categoryInput.Blur()
		if err := m.reload(); err != nil {
			m.fail(err)
			return m
		}
		m.selectCategory(created.Name)
		if err := m.reload(); err != nil {
			m.fail(err)
			return m
		}
		m.setStatus("added category %q", created.Name)
	default:
		typeInto(&m.categoryInput, msg)
	}
	return m
}
