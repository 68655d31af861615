package update

import (
	"github.com/sandeepkv93/todolane/internal/views"
)

const helpMarkdown = `# todolane

Tasks live in categories; **tab** walks between them.

## Dates and times
- date: ` + "`DD Mon YYYY`" + `, e.g. ` + "`05 Jan 2025`" + ` (September is ` + "`Sept`" + `)
- time: ` + "`H:MM am`" + ` or ` + "`H:MM pm`" + `
- reminders fire 1 hour and 5 minutes ahead, then at the time itself

## Palette
- ` + "`add <text> | <date> | <time>`" + `
- ` + "`edit <n> <text> | <date> | <time>`" + `
- ` + "`done <n>`" + `, ` + "`delete <n>`" + `, ` + "`undo`" + `
- ` + "`category add <name>`" + `, ` + "`category delete`" + `
- ` + "`theme`" + `, ` + "`show <category>`" + `
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Theme:    string(m.Theme),
		Markdown: helpMarkdown,
		HelpView: m.helpModel.FullHelpView(m.Keys.FullHelp()),
	})
}
