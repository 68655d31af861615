package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/todolane/internal/datetime"
	"github.com/sandeepkv93/todolane/internal/model"
	"github.com/sandeepkv93/todolane/internal/scheduler"
	"github.com/sandeepkv93/todolane/internal/storage"
)

type fakeScheduler struct {
	mu     sync.Mutex
	queued []scheduler.ReminderEvent
}

func (f *fakeScheduler) Schedule(ev scheduler.ReminderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, ev)
	return nil
}

func (f *fakeScheduler) CancelChannel(channelID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.queued[:0]
	removed := 0
	for _, ev := range f.queued {
		if ev.ChannelID == channelID {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	f.queued = kept
	return removed
}

func (f *fakeScheduler) forTask(id string) []scheduler.ReminderEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]scheduler.ReminderEvent, 0)
	for _, ev := range f.queued {
		if ev.TaskID == id {
			out = append(out, ev)
		}
	}
	return out
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	svc   *Service
	sched *fakeScheduler
	clock *clock
	ctx   context.Context
}

func setup(t *testing.T) fixture {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	clk := &clock{now: time.Date(2025, time.January, 5, 9, 0, 0, 0, time.UTC)}
	sched := &fakeScheduler{}
	svc := NewService(repo, sched, Options{
		Location:   time.UTC,
		UndoWindow: 5 * time.Second,
		Now:        clk.Now,
		Pick:       func(int) int { return 2 },
	})
	ctx := context.Background()
	if err := svc.EnsureDefaults(ctx, model.ThemeDark); err != nil {
		t.Fatalf("ensure defaults: %v", err)
	}
	return fixture{svc: svc, sched: sched, clock: clk, ctx: ctx}
}

func TestEnsureDefaultsSeedsOnce(t *testing.T) {
	f := setup(t)
	if err := f.svc.EnsureDefaults(f.ctx, model.ThemeLight); err != nil {
		t.Fatalf("second ensure defaults: %v", err)
	}
	cats, err := f.svc.Categories(f.ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != DefaultCategory {
		t.Fatalf("unexpected categories: %#v", cats)
	}
	theme, err := f.svc.Theme(f.ctx)
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if theme != model.ThemeDark {
		t.Fatalf("expected seeded theme to survive, got %s", theme)
	}
}

func TestAddTaskPlansReminders(t *testing.T) {
	f := setup(t)
	task, err := f.svc.AddTask(f.ctx, DefaultCategory, "  Dentist ", "05 Jan 2025", "5:30 pm")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.Text != "Dentist" || task.BgColor != model.BgColors[2] || task.ID == "" || task.ChannelID == "" {
		t.Fatalf("unexpected task: %#v", task)
	}
	if task.ID == task.ChannelID {
		t.Fatal("expected distinct task and channel ids")
	}

	queued := f.sched.forTask(task.ID)
	if len(queued) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(queued))
	}
	due := time.Date(2025, time.January, 5, 17, 30, 0, 0, time.UTC)
	if !queued[2].TriggerAt.Equal(due) || queued[2].Kind != string(model.ReminderDue) {
		t.Fatalf("unexpected due reminder: %#v", queued[2])
	}
	if queued[0].Title != DefaultCategory || queued[0].Body != "Dentist starts in 1 hour" {
		t.Fatalf("unexpected reminder text: %#v", queued[0])
	}
}

func TestAddTaskRejectsUnreadableSchedule(t *testing.T) {
	f := setup(t)
	cases := []struct {
		date, clock string
		want        error
	}{
		{"05 Foo 2025", "5:30 pm", datetime.ErrUnknownMonth},
		{"05 Jan 2025", "5:30", datetime.ErrMissingMeridiem},
		{"2025-01-05", "", datetime.ErrInvalidFormat},
	}
	for _, tc := range cases {
		if _, err := f.svc.AddTask(f.ctx, DefaultCategory, "x", tc.date, tc.clock); !errors.Is(err, tc.want) {
			t.Fatalf("AddTask(%q, %q): expected %v, got %v", tc.date, tc.clock, tc.want, err)
		}
	}
	list, err := f.svc.Tasks(f.ctx, DefaultCategory)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected nothing saved, got %#v", list)
	}
}

func TestAddTaskWithoutTimeSkipsReminders(t *testing.T) {
	f := setup(t)
	dateOnly, err := f.svc.AddTask(f.ctx, DefaultCategory, "Rent", "06 Jan 2025", "")
	if err != nil {
		t.Fatalf("add date-only: %v", err)
	}
	timeOnly, err := f.svc.AddTask(f.ctx, DefaultCategory, "Stretch", "", "7:00 am")
	if err != nil {
		t.Fatalf("add time-only: %v", err)
	}
	if n := len(f.sched.forTask(dateOnly.ID)) + len(f.sched.forTask(timeOnly.ID)); n != 0 {
		t.Fatalf("expected no reminders, got %d", n)
	}
	if _, err := f.svc.AddTask(f.ctx, DefaultCategory, "   ", "", ""); err == nil {
		t.Fatal("expected blank text to be rejected")
	}
}

func TestEditTaskMovesToFreshChannel(t *testing.T) {
	f := setup(t)
	task, err := f.svc.AddTask(f.ctx, DefaultCategory, "Call mom", "05 Jan 2025", "6:00 pm")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	edited, err := f.svc.EditTask(f.ctx, task.ID, "Call mom back", "05 Jan 2025", "9:02 am")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.ChannelID == task.ChannelID {
		t.Fatal("expected a new channel after edit")
	}

	queued := f.sched.forTask(task.ID)
	if len(queued) != 1 {
		t.Fatalf("expected only the due reminder ahead of 9:02, got %#v", queued)
	}
	if queued[0].ChannelID != edited.ChannelID || queued[0].Body != "Call mom back is due now" {
		t.Fatalf("unexpected reminder after edit: %#v", queued[0])
	}

	if _, err := f.svc.EditTask(f.ctx, task.ID, "x", "05 Jan 2025", "9:02"); !errors.Is(err, datetime.ErrMissingMeridiem) {
		t.Fatalf("expected meridiem error, got %v", err)
	}
}

func TestToggleCompleteCancelsAndRestoresReminders(t *testing.T) {
	f := setup(t)
	task, err := f.svc.AddTask(f.ctx, DefaultCategory, "Gym", "05 Jan 2025", "8:00 pm")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	done, err := f.svc.ToggleComplete(f.ctx, task.ID)
	if err != nil || !done.Completed {
		t.Fatalf("complete: %v %#v", err, done)
	}
	if n := len(f.sched.forTask(task.ID)); n != 0 {
		t.Fatalf("expected reminders withdrawn, got %d", n)
	}
	reopened, err := f.svc.ToggleComplete(f.ctx, task.ID)
	if err != nil || reopened.Completed {
		t.Fatalf("reopen: %v %#v", err, reopened)
	}
	if n := len(f.sched.forTask(task.ID)); n != 3 {
		t.Fatalf("expected reminders restored, got %d", n)
	}
}

func TestDeleteAndUndoRestoresPosition(t *testing.T) {
	f := setup(t)
	ids := make([]string, 0, 3)
	for _, text := range []string{"a", "b", "c"} {
		task, err := f.svc.AddTask(f.ctx, DefaultCategory, text, "", "")
		if err != nil {
			t.Fatalf("add %s: %v", text, err)
		}
		ids = append(ids, task.ID)
	}

	if _, err := f.svc.Undo(f.ctx); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo before delete, got %v", err)
	}

	removed, err := f.svc.DeleteTask(f.ctx, ids[1])
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, left, ok := f.svc.PendingUndo(); !ok || left != 5*time.Second {
		t.Fatalf("expected full undo window, got %v %v", left, ok)
	}

	f.clock.Advance(2 * time.Second)
	restored, err := f.svc.Undo(f.ctx)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if restored.ID != removed.ID || restored.Position != 1 {
		t.Fatalf("unexpected restored task: %#v", restored)
	}
	list, err := f.svc.Tasks(f.ctx, DefaultCategory)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	for i, want := range ids {
		if list[i].ID != want {
			t.Fatalf("unexpected order after undo at %d: %#v", i, list)
		}
	}
	if _, err := f.svc.Undo(f.ctx); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected undo to be single use, got %v", err)
	}
}

func TestUndoExpires(t *testing.T) {
	f := setup(t)
	task, err := f.svc.AddTask(f.ctx, DefaultCategory, "temp", "", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := f.svc.DeleteTask(f.ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	f.clock.Advance(5 * time.Second)
	if _, _, ok := f.svc.PendingUndo(); ok {
		t.Fatal("expected undo window closed")
	}
	if _, err := f.svc.Undo(f.ctx); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo after window, got %v", err)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	f := setup(t)
	if _, err := f.svc.AddCategory(f.ctx, "  "); !errors.Is(err, model.ErrEmptyCategory) {
		t.Fatalf("expected empty category error, got %v", err)
	}
	if _, err := f.svc.AddCategory(f.ctx, DefaultCategory); !errors.Is(err, model.ErrDuplicateCategory) {
		t.Fatalf("expected duplicate category error, got %v", err)
	}
	if err := f.svc.DeleteCategory(f.ctx, DefaultCategory); !errors.Is(err, ErrLastCategory) {
		t.Fatalf("expected last category guard, got %v", err)
	}

	work, err := f.svc.AddCategory(f.ctx, "Work")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if work.Position != 1 {
		t.Fatalf("unexpected position: %#v", work)
	}
	task, err := f.svc.AddTask(f.ctx, "Work", "Standup", "05 Jan 2025", "10:00 am")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := f.svc.DeleteCategory(f.ctx, "Work"); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if n := len(f.sched.forTask(task.ID)); n != 0 {
		t.Fatalf("expected reminders cancelled with category, got %d", n)
	}
	if err := f.svc.DeleteCategory(f.ctx, "Work"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskByNumberFollowsDisplayOrder(t *testing.T) {
	f := setup(t)
	first, _ := f.svc.AddTask(f.ctx, DefaultCategory, "first", "", "")
	second, _ := f.svc.AddTask(f.ctx, DefaultCategory, "second", "", "")
	if _, err := f.svc.ToggleComplete(f.ctx, first.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err := f.svc.TaskByNumber(f.ctx, DefaultCategory, 1)
	if err != nil || got.ID != second.ID {
		t.Fatalf("expected open task first, got %#v %v", got, err)
	}
	got, err = f.svc.TaskByNumber(f.ctx, DefaultCategory, 2)
	if err != nil || got.ID != first.ID {
		t.Fatalf("expected completed task second, got %#v %v", got, err)
	}
	if _, err := f.svc.TaskByNumber(f.ctx, DefaultCategory, 3); !errors.Is(err, ErrNoSuchTask) {
		t.Fatalf("expected ErrNoSuchTask, got %v", err)
	}
}

func TestToggleTheme(t *testing.T) {
	f := setup(t)
	next, err := f.svc.ToggleTheme(f.ctx)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if next != model.ThemeLight {
		t.Fatalf("expected light after dark, got %s", next)
	}
	stored, err := f.svc.Theme(f.ctx)
	if err != nil || stored != model.ThemeLight {
		t.Fatalf("expected stored light theme, got %s %v", stored, err)
	}
}

func TestScheduleAllDoesNotDuplicate(t *testing.T) {
	f := setup(t)
	if _, err := f.svc.AddTask(f.ctx, DefaultCategory, "Meeting", "05 Jan 2025", "11:00 am"); err != nil {
		t.Fatalf("add: %v", err)
	}
	done, err := f.svc.AddTask(f.ctx, DefaultCategory, "Done already", "05 Jan 2025", "11:00 am")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := f.svc.ToggleComplete(f.ctx, done.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	for i := 0; i < 2; i++ {
		n, err := f.svc.ScheduleAll(f.ctx)
		if err != nil {
			t.Fatalf("schedule all: %v", err)
		}
		if n != 3 {
			t.Fatalf("expected 3 reminders per sweep, got %d", n)
		}
	}
	if len(f.sched.queued) != 3 {
		t.Fatalf("expected no duplicates, got %d", len(f.sched.queued))
	}

	f.clock.Advance(90 * time.Minute)
	n, err := f.svc.ScheduleAll(f.ctx)
	if err != nil {
		t.Fatalf("schedule all later: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected hour reminder to have passed, got %d", n)
	}
}
