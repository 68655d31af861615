package notify

import (
	"context"
	"time"

	"github.com/sandeepkv93/todolane/internal/logger"
	"github.com/sandeepkv93/todolane/internal/scheduler"
)

// Dispatcher delivers fired reminders without a UI attached.
type Dispatcher struct {
	source   <-chan scheduler.ReminderEvent
	notifier DesktopNotifier
	now      func() time.Time
	// Delivered, when set, observes every notification after Send.
	Delivered func(Notification, error)
}

func NewDispatcher(source <-chan scheduler.ReminderEvent, notifier DesktopNotifier) *Dispatcher {
	if notifier == nil {
		notifier = NoopDesktopNotifier{}
	}
	return &Dispatcher{source: source, notifier: notifier, now: time.Now}
}

// Run drains the source until ctx is cancelled or the source closes.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-d.source:
			if !ok {
				return nil
			}
			n := FromEvent(ev, d.now())
			err := d.notifier.Send(n)
			if err != nil {
				logger.Warn("notification failed", "task", ev.TaskID, "kind", ev.Kind, "err", err)
			} else {
				logger.Info("reminder delivered", "task", ev.TaskID, "kind", ev.Kind)
			}
			if d.Delivered != nil {
				d.Delivered(n, err)
			}
		}
	}
}
