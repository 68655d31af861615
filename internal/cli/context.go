package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/sandeepkv93/todolane/internal/config"
	"github.com/sandeepkv93/todolane/internal/scheduler"
	"github.com/sandeepkv93/todolane/internal/storage"
	"github.com/sandeepkv93/todolane/internal/tasks"
)

// Context carries the opened store and service into every command's Run.
type Context struct {
	Ctx     context.Context
	Config  config.RuntimeConfig
	Repo    *storage.SQLiteRepository
	Engine  *scheduler.Engine
	Service *tasks.Service
	Out     io.Writer
	Now     func() time.Time
	// Confirm asks a yes/no question before destructive commands.
	Confirm func(title string) (bool, error)
}

// Open prepares the database, the reminder engine and the service for cfg.
// The engine is created but not started; long-running commands start it.
func Open(ctx context.Context, cfg config.RuntimeConfig) (*Context, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	svc := tasks.NewService(repo, engine, tasks.Options{
		Location:   loc,
		UndoWindow: cfg.UndoWindow,
	})
	if err := svc.EnsureDefaults(ctx, cfg.Theme); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	return &Context{
		Ctx:     ctx,
		Config:  cfg,
		Repo:    repo,
		Engine:  engine,
		Service: svc,
		Out:     os.Stdout,
		Now:     time.Now,
		Confirm: PromptConfirm,
	}, nil
}

func (c *Context) Close() error {
	var errs []error
	if c.Engine != nil {
		c.Engine.Stop()
	}
	if c.Repo != nil {
		errs = append(errs, c.Repo.Close())
	}
	return errors.Join(errs...)
}

// PromptConfirm renders a huh confirmation on the terminal.
func PromptConfirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Keep").
				Value(&ok),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
