package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sandeepkv93/todolane/internal/scheduler"
)

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// FromEvent turns a fired reminder into the notification shown for it.
func FromEvent(ev scheduler.ReminderEvent, at time.Time) Notification {
	title := strings.TrimSpace(ev.Title)
	if title == "" {
		title = "todolane"
	}
	return Notification{Title: title, Body: ev.Body, Level: "reminder", At: at}
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

// ExecDesktopNotifier shells out to notify-send on Linux and osascript on
// macOS. Other platforms are a silent no-op.
type ExecDesktopNotifier struct {
	GOOS string
	Run  func(name string, args ...string) error
}

func (e ExecDesktopNotifier) Send(n Notification) error {
	run := e.Run
	if run == nil {
		run = func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		}
	}
	goos := e.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "linux":
		return run("notify-send", n.Title, n.Body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return run("osascript", "-e", script)
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
