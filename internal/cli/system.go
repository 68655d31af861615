package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolane/internal/datetime"
	"github.com/sandeepkv93/todolane/internal/logger"
	"github.com/sandeepkv93/todolane/internal/model"
	"github.com/sandeepkv93/todolane/internal/notify"
	"github.com/sandeepkv93/todolane/internal/scheduler"
	"github.com/sandeepkv93/todolane/internal/update"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(app *Context) error {
	app.Engine.Start()
	if n, err := app.Service.ScheduleAll(app.Ctx); err != nil {
		logger.Warn("initial reminder sync failed", "err", err)
	} else {
		logger.Debug("reminders scheduled", "count", n)
	}

	m := update.NewModel(app.Ctx, app.Service, app.Engine, update.Options{
		DesktopNotifications: app.Config.DesktopNotifications,
		Notifier:             desktopNotifier(app),
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(app.Ctx))

	// Sweeps pick up tasks added by other processes and the midnight
	// rollover of Today/Tomorrow captions.
	sweeper := scheduler.NewSweeper(app.Service.Location())
	if _, err := sweeper.Every(app.Config.SweepInterval, tuiSweep(app, program.Send)); err != nil {
		return err
	}
	if _, err := sweeper.Daily("00:00", func() { program.Send(update.RefreshMsg{}) }); err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("todolane tui: %w", err)
	}
	return nil
}

// tuiSweep resyncs reminders and asks the running TUI to reload, or reports
// the failure to it.
func tuiSweep(app *Context, send func(tea.Msg)) func() {
	return func() {
		n, err := app.Service.ScheduleAll(app.Ctx)
		if err != nil {
			send(update.AppErrorMsg{Err: fmt.Errorf("reminder sweep: %w", err)})
			return
		}
		logger.Debug("reminder sweep", "scheduled", n)
		send(update.RefreshMsg{})
	}
}

type ThemeCmd struct {
	Theme string `arg:"" optional:"" help:"light, dark or toggle. Prints the current theme when omitted."`
}

func (c *ThemeCmd) Run(app *Context) error {
	var (
		theme model.Theme
		err   error
	)
	switch strings.ToLower(c.Theme) {
	case "":
		theme, err = app.Service.Theme(app.Ctx)
	case "toggle":
		theme, err = app.Service.ToggleTheme(app.Ctx)
	default:
		theme, err = model.ParseTheme(c.Theme)
		if err == nil {
			err = app.Service.SetTheme(app.Ctx, theme)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "theme: %s\n", theme)
	return nil
}

// WhenCmd shows how a date and time pair is read and which reminders it
// would raise from now.
// The first three words are the date, anything after them the time.
type WhenCmd struct {
	Words []string `arg:"" help:"Date and optional time, e.g. 05 Jan 2025 5:30 pm."`
}

func (c *WhenCmd) Run(app *Context) error {
	split := min(3, len(c.Words))
	date := strings.Join(c.Words[:split], " ")
	clock := strings.Join(c.Words[split:], " ")
	at, err := datetime.Normalize(date, clock, app.Service.Location())
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "%s %s  (%s)\n", datetime.FormatDate(at), datetime.FormatClock(at), at.Format(time.RFC3339))

	sample := model.Task{Text: "task", Date: date, Time: clock}
	reminders, err := model.PlanReminders(sample, app.Now(), app.Service.Location())
	if err != nil {
		return err
	}
	if len(reminders) == 0 {
		fmt.Fprintln(app.Out, "no reminders ahead")
		return nil
	}
	for _, r := range reminders {
		fmt.Fprintf(app.Out, "  %-15s %s %s\n", r.Kind, datetime.FormatDate(r.TriggerAt), datetime.FormatClock(r.TriggerAt))
	}
	return nil
}

// WatchCmd delivers reminders without the TUI until interrupted.
type WatchCmd struct{}

func (c *WatchCmd) Run(app *Context) error {
	ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Engine.Start()
	resync := func() {
		n, err := app.Service.ScheduleAll(ctx)
		if err != nil {
			logger.Warn("reminder sweep failed", "err", err)
			return
		}
		logger.Debug("reminder sweep", "scheduled", n)
	}
	resync()

	sweeper := scheduler.NewSweeper(app.Service.Location())
	if _, err := sweeper.Every(app.Config.SweepInterval, resync); err != nil {
		return err
	}
	if _, err := sweeper.Daily("00:00", resync); err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	dispatcher := notify.NewDispatcher(app.Engine.C(), desktopNotifier(app))
	dispatcher.Delivered = func(n notify.Notification, err error) {
		if err != nil {
			fmt.Fprintf(app.Out, "%s  %s: %s (desktop: %v)\n", datetime.FormatClock(n.At), n.Title, n.Body, err)
			return
		}
		fmt.Fprintf(app.Out, "%s  %s: %s\n", datetime.FormatClock(n.At), n.Title, n.Body)
	}
	fmt.Fprintf(app.Out, "watching reminders, %d queued (ctrl+c to stop)\n", app.Engine.Pending())

	if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func desktopNotifier(app *Context) notify.DesktopNotifier {
	if !app.Config.DesktopNotifications {
		return notify.NoopDesktopNotifier{}
	}
	return notify.ExecDesktopNotifier{}
}
