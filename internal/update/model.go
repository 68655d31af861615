package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/todolane/internal/model"
	"github.com/sandeepkv93/todolane/internal/notify"
	"github.com/sandeepkv93/todolane/internal/scheduler"
	"github.com/sandeepkv93/todolane/internal/tasks"
)

type Mode string

const (
	ModeList            Mode = "list"
	ModeForm            Mode = "form"
	ModeCategory        Mode = "category"
	ModeConfirmCategory Mode = "confirm_category"
	ModePalette         Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// FormState backs the add/edit form. EditingID is empty while adding.
type FormState struct {
	EditingID string
	Focus     int
}

const (
	fieldText = iota
	fieldDate
	fieldTime
	fieldCount
)

type KeyMap struct {
	NextCategory   key.Binding
	PrevCategory   key.Binding
	Up             key.Binding
	Down           key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	Undo           key.Binding
	Add            key.Binding
	Edit           key.Binding
	AddCategory    key.Binding
	DeleteCategory key.Binding
	Theme          key.Binding
	Palette        key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextCategory:   key.NewBinding(key.WithKeys("tab", "l"), key.WithHelp("tab", "next category")),
		PrevCategory:   key.NewBinding(key.WithKeys("shift+tab", "h"), key.WithHelp("shift+tab", "previous category")),
		Up:             key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:           key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Toggle:         key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle complete")),
		Delete:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:           key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo delete")),
		Add:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Edit:           key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit task")),
		AddCategory:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add category")),
		DeleteCategory: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete category")),
		Theme:          key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		Palette:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command palette")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Undo, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextCategory, k.PrevCategory, k.Up, k.Down},
		{k.Add, k.Edit, k.Toggle, k.Delete, k.Undo},
		{k.AddCategory, k.DeleteCategory, k.Theme, k.Palette, k.Help, k.Quit},
	}
}

type Model struct {
	svc *tasks.Service
	ctx context.Context

	Scheduler     *scheduler.Engine
	Categories    []model.Category
	CategoryIndex int
	Open          []model.Task
	Completed     []model.Task
	Cursor        int
	Theme         model.Theme
	Mode          Mode
	Form          FormState
	// PendingCategory is the category awaiting delete confirmation.
	PendingCategory string
	HelpVisible     bool
	Status          StatusBar
	Notifications   []notify.Notification
	DesktopEnabled  bool
	Keys            KeyMap
	Quitting        bool

	notifier      notify.DesktopNotifier
	now           func() time.Time
	undoSeq       int
	formInputs    [fieldCount]textinput.Model
	categoryInput textinput.Model
	commandInput  textinput.Model
	helpModel     help.Model
}

type Options struct {
	DesktopNotifications bool
	Notifier             notify.DesktopNotifier
	Now                  func() time.Time
}

// AppErrorMsg reports a failure from work running outside the update loop,
// such as a background reminder sweep.
type AppErrorMsg struct {
	Err error
}

// RefreshMsg rereads categories and tasks from the store. The TUI sends it
// after each sweep and when the day rolls over so captions and tasks added
// by other processes show up.
type RefreshMsg struct{}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

// UndoExpiredMsg closes the undo hint opened by the delete with the same Seq.
type UndoExpiredMsg struct {
	Seq int
}

// NewModel loads categories, tasks and theme from svc. engine may be nil
// when reminders are disabled.
func NewModel(ctx context.Context, svc *tasks.Service, engine *scheduler.Engine, opts Options) Model {
	m := Model{
		svc:            svc,
		ctx:            ctx,
		Scheduler:      engine,
		Theme:          model.ThemeLight,
		Mode:           ModeList,
		DesktopEnabled: opts.DesktopNotifications,
		Keys:           DefaultKeyMap(),
		notifier:       opts.Notifier,
		now:            opts.Now,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.notifier == nil {
		m.notifier = notify.NoopDesktopNotifier{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.initBubbleComponents()
	if err := m.reload(); err != nil {
		m.fail(err)
	}
	return m
}

func (m *Model) initBubbleComponents() {
	prompts := [fieldCount]string{"text> ", "date> ", "time> "}
	placeholders := [fieldCount]string{"What needs doing?", "05 Jan 2025", "5:30 pm"}
	for i := range m.formInputs {
		in := textinput.New()
		in.Prompt = prompts[i]
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		in.Width = 42
		m.formInputs[i] = in
	}

	m.categoryInput = textinput.New()
	m.categoryInput.Prompt = "category> "
	m.categoryInput.CharLimit = 64
	m.categoryInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}
