package model

import (
	"fmt"
	"strings"
	"time"
)

type ReminderKind string

const (
	ReminderHourBefore    ReminderKind = "hour_before"
	ReminderMinutesBefore ReminderKind = "minutes_before"
	ReminderDue           ReminderKind = "due"
)

type ReminderOffset struct {
	Kind   ReminderKind
	Before time.Duration
	Phrase string
}

// ReminderOffsets are the checkpoints raised ahead of a task's instant,
// earliest first.
var ReminderOffsets = []ReminderOffset{
	{Kind: ReminderHourBefore, Before: time.Hour, Phrase: "starts in 1 hour"},
	{Kind: ReminderMinutesBefore, Before: 5 * time.Minute, Phrase: "starts in 5 minutes"},
	{Kind: ReminderDue, Before: 0, Phrase: "is due now"},
}

type Reminder struct {
	TaskID    string
	ChannelID string
	Kind      ReminderKind
	TriggerAt time.Time
	Title     string
	Body      string
}

// PlanReminders returns the checkpoints for task that are still ahead of
// now. Completed tasks, undated tasks and date-only tasks get none.
func PlanReminders(task Task, now time.Time, loc *time.Location) ([]Reminder, error) {
	if task.Completed || strings.TrimSpace(task.Date) == "" || strings.TrimSpace(task.Time) == "" {
		return nil, nil
	}
	target, _, err := task.Due(loc)
	if err != nil {
		return nil, err
	}

	out := make([]Reminder, 0, len(ReminderOffsets))
	for _, off := range ReminderOffsets {
		at := target.Add(-off.Before)
		if !at.After(now) {
			continue
		}
		out = append(out, Reminder{
			TaskID:    task.ID,
			ChannelID: task.ChannelID,
			Kind:      off.Kind,
			TriggerAt: at,
			Title:     task.Category,
			Body:      fmt.Sprintf("%s %s", task.Text, off.Phrase),
		})
	}
	return out, nil
}
