package tasks

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/todolane/internal/datetime"
	"github.com/sandeepkv93/todolane/internal/logger"
	"github.com/sandeepkv93/todolane/internal/model"
	"github.com/sandeepkv93/todolane/internal/scheduler"
	"github.com/sandeepkv93/todolane/internal/storage"
)

const DefaultCategory = "Personal"

var (
	ErrNothingToUndo = errors.New("tasks: nothing to undo")
	ErrLastCategory  = errors.New("tasks: cannot delete the last category")
	ErrNoSuchTask    = errors.New("tasks: no task at that number")
)

// ReminderScheduler is the slice of the scheduler engine the service drives.
type ReminderScheduler interface {
	Schedule(ev scheduler.ReminderEvent) error
	CancelChannel(channelID string) int
}

type Options struct {
	Location   *time.Location
	UndoWindow time.Duration
	Now        func() time.Time
	// Pick returns an index in [0, n) for the card color.
	Pick func(n int) int
}

type deletion struct {
	task  model.Task
	index int
	at    time.Time
}

type Service struct {
	repo       storage.Repository
	reminders  ReminderScheduler
	loc        *time.Location
	undoWindow time.Duration
	now        func() time.Time
	pick       func(n int) int

	mu      sync.Mutex
	deleted *deletion
}

func NewService(repo storage.Repository, reminders ReminderScheduler, opts Options) *Service {
	s := &Service{
		repo:       repo,
		reminders:  reminders,
		loc:        opts.Location,
		undoWindow: opts.UndoWindow,
		now:        opts.Now,
		pick:       opts.Pick,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.undoWindow <= 0 {
		s.undoWindow = 5 * time.Second
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.pick == nil {
		s.pick = rand.IntN
	}
	return s
}

func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) UndoWindow() time.Duration {
	return s.undoWindow
}

// EnsureDefaults seeds the first category and the stored theme on a fresh
// database. Existing values are left alone.
func (s *Service) EnsureDefaults(ctx context.Context, theme model.Theme) error {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		if err := s.repo.CreateCategory(ctx, storage.Category{Name: DefaultCategory, CreatedAt: s.now().UTC()}); err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
	}
	if _, err := s.repo.GetSetting(ctx, storage.SettingTheme); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if !theme.IsValid() {
			theme = model.ThemeLight
		}
		return s.repo.PutSetting(ctx, storage.SettingTheme, string(theme), s.now().UTC())
	}
	return nil
}

func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.Category{Name: row.Name, Position: row.Position, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (s *Service) AddCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	existing, err := s.Categories(ctx)
	if err != nil {
		return model.Category{}, err
	}
	if err := model.ValidateCategoryName(name, existing); err != nil {
		return model.Category{}, err
	}
	row := storage.Category{Name: name, CreatedAt: s.now().UTC()}
	if err := s.repo.CreateCategory(ctx, row); err != nil {
		return model.Category{}, err
	}
	return model.Category{Name: name, Position: len(existing), CreatedAt: row.CreatedAt}, nil
}

// DeleteCategory drops the category and its tasks, withdrawing their
// reminders. The last remaining category is kept.
func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, c := range cats {
		if c.Name == name {
			found = true
			break
		}
	}
	if !found {
		return storage.ErrNotFound
	}
	if len(cats) == 1 {
		return ErrLastCategory
	}

	rows, err := s.repo.ListTasks(ctx, storage.TaskListFilter{Category: name})
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCategory(ctx, name); err != nil {
		return err
	}
	for _, row := range rows {
		s.cancel(row.ChannelID)
	}

	s.mu.Lock()
	if s.deleted != nil && s.deleted.task.Category == name {
		s.deleted = nil
	}
	s.mu.Unlock()

	logger.Info("category deleted", "category", name, "tasks", len(rows))
	return nil
}

// Tasks lists a category in display order.
func (s *Service) Tasks(ctx context.Context, category string) ([]model.Task, error) {
	rows, err := s.repo.ListTasks(ctx, storage.TaskListFilter{Category: category})
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, toModel(row))
	}
	return out, nil
}

// TaskByNumber resolves a 1-based number against the category's open tasks
// followed by its completed ones, the order the list shows them in.
func (s *Service) TaskByNumber(ctx context.Context, category string, n int) (model.Task, error) {
	all, err := s.Tasks(ctx, category)
	if err != nil {
		return model.Task{}, err
	}
	open, completed := model.Split(all)
	ordered := append(open, completed...)
	if n < 1 || n > len(ordered) {
		return model.Task{}, fmt.Errorf("%w: %d", ErrNoSuchTask, n)
	}
	return ordered[n-1], nil
}

func (s *Service) AddTask(ctx context.Context, category, text, date, clock string) (model.Task, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if err := s.checkSchedule(date, clock); err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:        uuid.NewString(),
		Text:      strings.TrimSpace(text),
		BgColor:   model.BgColors[s.pick(len(model.BgColors))],
		Category:  category,
		ChannelID: uuid.NewString(),
		Date:      date,
		Time:      clock,
		CreatedAt: s.now().UTC(),
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, toRow(task)); err != nil {
		return model.Task{}, err
	}
	row, err := s.repo.GetTask(ctx, task.ID)
	if err != nil {
		return model.Task{}, err
	}
	task = toModel(row)
	s.schedule(task)
	logger.Debug("task added", "task", task.ID, "category", category)
	return task, nil
}

// EditTask rewrites text and schedule. The task moves to a fresh channel so
// reminders planned for the old schedule never fire.
func (s *Service) EditTask(ctx context.Context, id, text, date, clock string) (model.Task, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if err := s.checkSchedule(date, clock); err != nil {
		return model.Task{}, err
	}
	row, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task := toModel(row)
	oldChannel := task.ChannelID

	task.Text = strings.TrimSpace(text)
	task.Date = date
	task.Time = clock
	task.ChannelID = uuid.NewString()
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.repo.UpdateTask(ctx, toRow(task)); err != nil {
		return model.Task{}, err
	}
	s.cancel(oldChannel)
	s.schedule(task)
	return task, nil
}

func (s *Service) ToggleComplete(ctx context.Context, id string) (model.Task, error) {
	row, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task := toModel(row)
	task.Completed = !task.Completed
	if err := s.repo.UpdateTask(ctx, toRow(task)); err != nil {
		return model.Task{}, err
	}
	if task.Completed {
		s.cancel(task.ChannelID)
	} else {
		s.schedule(task)
	}
	return task, nil
}

// DeleteTask removes the task and holds it for Undo until the window lapses.
func (s *Service) DeleteTask(ctx context.Context, id string) (model.Task, error) {
	row, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	index, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task := toModel(row)
	s.cancel(task.ChannelID)

	s.mu.Lock()
	s.deleted = &deletion{task: task, index: index, at: s.now()}
	s.mu.Unlock()
	return task, nil
}

// PendingUndo reports the task Undo would restore and how long remains.
func (s *Service) PendingUndo() (model.Task, time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted == nil {
		return model.Task{}, 0, false
	}
	left := s.undoWindow - s.now().Sub(s.deleted.at)
	if left <= 0 {
		return model.Task{}, 0, false
	}
	return s.deleted.task, left, true
}

// Undo restores the most recent deletion at its old index.
func (s *Service) Undo(ctx context.Context) (model.Task, error) {
	s.mu.Lock()
	d := s.deleted
	s.deleted = nil
	s.mu.Unlock()

	if d == nil || s.now().Sub(d.at) >= s.undoWindow {
		return model.Task{}, ErrNothingToUndo
	}
	if err := s.repo.InsertTaskAt(ctx, toRow(d.task), d.index); err != nil {
		return model.Task{}, err
	}
	task := d.task
	task.Position = d.index
	s.schedule(task)
	return task, nil
}

func (s *Service) Theme(ctx context.Context) (model.Theme, error) {
	raw, err := s.repo.GetSetting(ctx, storage.SettingTheme)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.ThemeLight, nil
		}
		return "", err
	}
	return model.ParseTheme(raw)
}

func (s *Service) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidTheme, theme)
	}
	return s.repo.PutSetting(ctx, storage.SettingTheme, string(theme), s.now().UTC())
}

func (s *Service) ToggleTheme(ctx context.Context) (model.Theme, error) {
	current, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// ScheduleAll re-plans reminders for every open task and returns how many
// were queued. Each channel is cleared first so repeated sweeps never
// double up.
func (s *Service) ScheduleAll(ctx context.Context) (int, error) {
	open := false
	rows, err := s.repo.ListTasks(ctx, storage.TaskListFilter{Completed: &open})
	if err != nil {
		return 0, err
	}
	total := 0
	for _, row := range rows {
		s.cancel(row.ChannelID)
		total += s.schedule(toModel(row))
	}
	logger.Debug("reminders planned", "tasks", len(rows), "reminders", total)
	return total, nil
}

// checkSchedule rejects a date/time pair the normalizer cannot read. A time
// without a date is kept for display only.
func (s *Service) checkSchedule(date, clock string) error {
	if date == "" {
		return nil
	}
	if _, err := datetime.Normalize(date, clock, s.loc); err != nil {
		return fmt.Errorf("tasks: %w", err)
	}
	return nil
}

// schedule queues the task's reminders. Failures are logged, never
// returned: the task itself is already saved.
func (s *Service) schedule(task model.Task) int {
	if s.reminders == nil {
		return 0
	}
	planned, err := model.PlanReminders(task, s.now(), s.loc)
	if err != nil {
		logger.Warn("reminder skipped", "task", task.ID, "date", task.Date, "time", task.Time, "err", err)
		return 0
	}
	queued := 0
	for _, r := range planned {
		ev := scheduler.ReminderEvent{
			ID:        r.ChannelID + ":" + string(r.Kind),
			TaskID:    r.TaskID,
			ChannelID: r.ChannelID,
			Kind:      string(r.Kind),
			Title:     r.Title,
			Body:      r.Body,
			TriggerAt: r.TriggerAt,
		}
		if err := s.reminders.Schedule(ev); err != nil {
			logger.Warn("reminder not queued", "task", task.ID, "kind", r.Kind, "err", err)
			continue
		}
		queued++
	}
	return queued
}

func (s *Service) cancel(channelID string) {
	if s.reminders == nil || channelID == "" {
		return
	}
	s.reminders.CancelChannel(channelID)
}

func toModel(row storage.Task) model.Task {
	return model.Task{
		ID:        row.ID,
		Text:      row.Text,
		BgColor:   row.BgColor,
		Completed: row.Completed,
		Category:  row.Category,
		ChannelID: row.ChannelID,
		Date:      row.DateText,
		Time:      row.TimeText,
		Position:  row.Position,
		CreatedAt: row.CreatedAt,
	}
}

func toRow(task model.Task) storage.Task {
	return storage.Task{
		ID:        task.ID,
		Text:      task.Text,
		BgColor:   task.BgColor,
		Completed: task.Completed,
		Category:  task.Category,
		ChannelID: task.ChannelID,
		DateText:  task.Date,
		TimeText:  task.Time,
		Position:  task.Position,
		CreatedAt: task.CreatedAt,
	}
}
