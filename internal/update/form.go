package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolane/internal/views"
)

func (m *Model) openForm(id, text, date, clock string) {
	m.Mode = ModeForm
	m.Form = FormState{EditingID: id, Focus: fieldText}
	values := [fieldCount]string{text, date, clock}
	for i := range m.formInputs {
		m.formInputs[i].SetValue(values[i])
		m.formInputs[i].Blur()
	}
	m.formInputs[fieldText].Focus()
}

func (m *Model) focusField(i int) {
	m.formInputs[m.Form.Focus].Blur()
	m.Form.Focus = (i + fieldCount) % fieldCount
	m.formInputs[m.Form.Focus].Focus()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.Form = FormState{}
		m.setStatus("edit cancelled")
	case "tab", "down":
		m.focusField(m.Form.Focus + 1)
	case "shift+tab", "up":
		m.focusField(m.Form.Focus - 1)
	case "enter":
		m.submitForm()
	default:
		typeInto(&m.formInputs[m.Form.Focus], msg)
	}
	return m, nil
}

// submitForm saves the form. On a validation error the form stays open
// with the message in the status line.
func (m *Model) submitForm() {
	text := m.formInputs[fieldText].Value()
	date := m.formInputs[fieldDate].Value()
	clock := m.formInputs[fieldTime].Value()

	if m.Form.EditingID == "" {
		created, err := m.svc.AddTask(m.ctx, m.currentCategory(), text, date, clock)
		if err != nil {
			m.fail(err)
			return
		}
		m.finishForm(created.ID)
		m.setStatus("added %q", created.Text)
		return
	}
	edited, err := m.svc.EditTask(m.ctx, m.Form.EditingID, text, date, clock)
	if err != nil {
		m.fail(err)
		return
	}
	m.finishForm(edited.ID)
	m.setStatus("saved %q", edited.Text)
}

func (m *Model) finishForm(id string) {
	m.Mode = ModeList
	m.Form = FormState{}
	if err := m.reload(); err != nil {
		m.fail(err)
		return
	}
	m.selectTask(id)
}

func (m Model) renderForm() string {
	title := "Add Task"
	if m.Form.EditingID != "" {
		title = "Edit Task"
	}
	fields := make([]string, 0, fieldCount)
	for i := range m.formInputs {
		fields = append(fields, m.formInputs[i].View())
	}
	return views.RenderForm(views.FormData{
		Theme:  string(m.Theme),
		Title:  title,
		Fields: fields,
		Hint:   "[tab] next field  [enter] save  [esc] cancel\ndate: DD Mon YYYY   time: H:MM am/pm",
	})
}
