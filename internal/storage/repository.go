package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	InsertTaskAt(ctx context.Context, in Task, index int) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) (int, error)
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateCategory(ctx context.Context, in Category) error
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, name string) error

	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string, at time.Time) error
}
