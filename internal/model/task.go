package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/todolane/internal/datetime"
)

var (
	ErrInvalidTheme      = errors.New("model: invalid theme")
	ErrEmptyCategory     = errors.New("model: category name is required")
	ErrDuplicateCategory = errors.New("model: category already exists")
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func ParseTheme(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
	return t, nil
}

// BgColors is the card palette new tasks draw from.
var BgColors = []string{
	"#FFD6A5",
	"#FDFFB6",
	"#CAFFBF",
	"#9BF6FF",
	"#A0C4FF",
	"#BDB2FF",
	"#FFC6FF",
	"#FFADAD",
}

type Task struct {
	ID        string
	Text      string
	BgColor   string
	Completed bool
	Category  string
	ChannelID string
	Date      string
	Time      string
	Position  int
	CreatedAt time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("model: task category is required")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// Due reports the instant the task is set for. ok is false when the task
// carries no date.
func (t Task) Due(loc *time.Location) (at time.Time, ok bool, err error) {
	if strings.TrimSpace(t.Date) == "" {
		return time.Time{}, false, nil
	}
	at, err = datetime.Normalize(t.Date, t.Time, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return at, true, nil
}

// Split partitions tasks into open and completed, keeping their order.
func Split(tasks []Task) (open []Task, completed []Task) {
	open = make([]Task, 0, len(tasks))
	completed = make([]Task, 0)
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
			continue
		}
		open = append(open, t)
	}
	return open, completed
}

type Category struct {
	Name      string
	Position  int
	CreatedAt time.Time
}

func ValidateCategoryName(name string, existing []Category) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCategory
	}
	for _, c := range existing {
		if c.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
		}
	}
	return nil
}
