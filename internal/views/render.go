package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Styles is the lipgloss set for one theme.
type Styles struct {
	Header    lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Section   lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Done      lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
	Footer    lipgloss.Style
}

func ThemeStyles(theme string) Styles {
	fg, muted, accent, border := lipgloss.Color("#2B2D42"), lipgloss.Color("#8D99AE"), lipgloss.Color("#3A86FF"), lipgloss.Color("#D3D3D3")
	if theme == "dark" {
		fg, muted, accent, border = lipgloss.Color("#EDF2F4"), lipgloss.Color("#8D99AE"), lipgloss.Color("#FFBE0B"), lipgloss.Color("#4A4E69")
	}
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		TabActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(fg),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(fg),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		Footer:    lipgloss.NewStyle().Foreground(muted),
	}
}

type AppData struct {
	Theme         string
	Header        string
	Tabs          string
	Body          string
	Side          string
	StatusLine    string
	StatusIsError bool
	Notification  string
	Footer        string
}

func RenderApp(data AppData) string {
	s := ThemeStyles(data.Theme)
	body := s.Panel.Width(58).Render(data.Body)
	if strings.TrimSpace(data.Side) != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, s.Panel.Width(58).Render(data.Side))
	}

	lines := []string{s.Header.Render(data.Header)}
	if data.Tabs != "" {
		lines = append(lines, data.Tabs)
	}
	lines = append(lines, body)
	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, s.Error.Render(data.StatusLine))
		} else {
			lines = append(lines, s.Status.Render(data.StatusLine))
		}
	}
	if data.Notification != "" {
		lines = append(lines, s.Panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, s.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the glamour style matching theme, falling
// back to the raw text.
func RenderMarkdown(md, theme string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if theme == "dark" {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
