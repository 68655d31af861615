package model

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/todolane/internal/datetime"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Buy groceries",
		Category:  "Personal",
		CreatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiresText(t *testing.T) {
	task := Task{
		ID:        "task-1",
		Text:      "   ",
		Category:  "Personal",
		CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: task text is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskDue(t *testing.T) {
	task := Task{Date: "05 Jan 2025", Time: "5:30 pm"}
	at, ok, err := task.Due(time.UTC)
	if err != nil || !ok {
		t.Fatalf("expected due instant, ok=%v err=%v", ok, err)
	}
	if at.Format("2006-01-02 15:04") != "2025-01-05 17:30" {
		t.Fatalf("unexpected due instant: %s", at.Format(time.RFC3339))
	}

	_, ok, err = Task{}.Due(time.UTC)
	if err != nil || ok {
		t.Fatalf("expected no due instant for undated task, ok=%v err=%v", ok, err)
	}

	_, _, err = Task{Date: "05 Foo 2025"}.Due(time.UTC)
	if !errors.Is(err, datetime.ErrUnknownMonth) {
		t.Fatalf("expected ErrUnknownMonth, got %v", err)
	}
}

func TestSplitKeepsOrder(t *testing.T) {
	tasks := []Task{
		{ID: "a"},
		{ID: "b", Completed: true},
		{ID: "c"},
		{ID: "d", Completed: true},
	}
	open, done := Split(tasks)
	if len(open) != 2 || open[0].ID != "a" || open[1].ID != "c" {
		t.Fatalf("unexpected open tasks: %#v", open)
	}
	if len(done) != 2 || done[0].ID != "b" || done[1].ID != "d" {
		t.Fatalf("unexpected completed tasks: %#v", done)
	}
}

func TestValidateCategoryName(t *testing.T) {
	existing := []Category{{Name: "Personal"}, {Name: "Work"}}
	if err := ValidateCategoryName("Errands", existing); err != nil {
		t.Fatalf("expected valid name, got %v", err)
	}
	if err := ValidateCategoryName("  ", existing); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
	if err := ValidateCategoryName("Work", existing); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestThemeToggleAndParse(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Fatal("unexpected theme toggle")
	}
	theme, err := ParseTheme(" Dark ")
	if err != nil || theme != ThemeDark {
		t.Fatalf("parse dark: theme=%q err=%v", theme, err)
	}
	if _, err := ParseTheme("sepia"); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
}
