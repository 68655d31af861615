package storage

import "time"

type Task struct {
	ID        string
	Text      string
	BgColor   string
	Completed bool
	Category  string
	ChannelID string
	DateText  string
	TimeText  string
	Position  int
	CreatedAt time.Time
}

type Category struct {
	Name      string
	Position  int
	CreatedAt time.Time
}

type TaskListFilter struct {
	Category  string
	Completed *bool
}

const (
	SettingTheme = "theme"
)
