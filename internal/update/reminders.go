package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todolane/internal/logger"
	"github.com/sandeepkv93/todolane/internal/notify"
	"github.com/sandeepkv93/todolane/internal/scheduler"
)

const notificationLimit = 20

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func (m *Model) onReminder(ev scheduler.ReminderEvent) {
	m.setStatus("%s: %s", ev.Title, ev.Body)

	n := notify.FromEvent(ev, m.now())
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > notificationLimit {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationLimit:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			logger.Warn("desktop notification failed", "task", ev.TaskID, "err", err)
		}
	}
}
