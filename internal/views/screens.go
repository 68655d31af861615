package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	EmptyOpenText      = "No tasks here.\nPress a to add one."
	EmptyCompletedText = "Still waiting for you to complete your tasks..."
)

type TaskRowData struct {
	Number    int
	Text      string
	Caption   string
	Color     string
	Completed bool
	Selected  bool
}

type TaskListData struct {
	Theme     string
	Open      []TaskRowData
	Completed []TaskRowData
}

type FormData struct {
	Theme  string
	Title  string
	Fields []string
	Hint   string
}

type HelpPanelData struct {
	Theme    string
	Markdown string
	HelpView string
}

func RenderTabs(names []string, active int, theme string) string {
	s := ThemeStyles(theme)
	out := make([]string, 0, len(names))
	for i, name := range names {
		if i == active {
			out = append(out, s.TabActive.Render(name))
			continue
		}
		out = append(out, s.Tab.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func RenderTaskList(data TaskListData) string {
	s := ThemeStyles(data.Theme)
	var b strings.Builder
	if len(data.Open) == 0 {
		b.WriteString(s.Muted.Render(EmptyOpenText) + "\n")
	}
	for _, row := range data.Open {
		b.WriteString(renderTaskRow(s, row) + "\n")
	}

	b.WriteString("\n" + s.Section.Render("Completed") + "\n")
	if len(data.Completed) == 0 {
		b.WriteString(s.Muted.Render(EmptyCompletedText) + "\n")
	}
	for _, row := range data.Completed {
		b.WriteString(renderTaskRow(s, row) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskRow(s Styles, row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render("●")
	if row.Color == "" {
		swatch = " "
	}

	text := row.Text
	switch {
	case row.Completed:
		text = s.Done.Render(text)
	case row.Selected:
		text = s.Selected.Render(text)
	}
	line := fmt.Sprintf("%s %d. %s %s %s", cursor, row.Number, swatch, check, text)
	if row.Caption != "" {
		line += " " + s.Muted.Render(row.Caption)
	}
	return line
}

func RenderForm(data FormData) string {
	s := ThemeStyles(data.Theme)
	var b strings.Builder
	b.WriteString(s.Section.Render(data.Title) + "\n")
	for _, f := range data.Fields {
		b.WriteString(f + "\n")
	}
	if data.Hint != "" {
		b.WriteString(s.Muted.Render(data.Hint))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderConfirm(question, theme string) string {
	s := ThemeStyles(theme)
	return s.Section.Render(question) + "\n" + s.Muted.Render("[y] confirm  [n/esc] cancel")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", inputView)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	md := RenderMarkdown(data.Markdown, data.Theme)
	if data.HelpView == "" {
		return md
	}
	return md + "\n\n" + data.HelpView
}
