package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sandeepkv93/todolane/internal/cli"
	"github.com/sandeepkv93/todolane/internal/config"
	"github.com/sandeepkv93/todolane/internal/logger"
	"github.com/sandeepkv93/todolane/internal/model"
)

var CLI struct {
	Version  kong.VersionFlag
	DB       string `help:"SQLite database path. Overrides TODOLANE_DB." name:"db" type:"path"`
	Timezone string `help:"IANA time zone for dates and reminders. Overrides TODOLANE_TIMEZONE."`
	Theme    string `help:"Theme seeded on first run (light or dark). Overrides TODOLANE_THEME."`
	Notify   bool   `help:"Send desktop notifications for reminders."`
	Debug    bool   `help:"Verbose logging, mirrored to stderr outside the TUI."`

	Tui      cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add      cli.AddCmd    `cmd:"" help:"Add a task."`
	List     cli.ListCmd   `cmd:"" help:"List tasks by category."`
	Done     cli.DoneCmd   `cmd:"" help:"Toggle a task between open and completed."`
	Delete   cli.DeleteCmd `cmd:"" help:"Delete a task."`
	Category struct {
		Add    cli.CategoryAddCmd    `cmd:"" help:"Add a category."`
		List   cli.CategoryListCmd   `cmd:"" help:"List categories." default:"1"`
		Delete cli.CategoryDeleteCmd `cmd:"" help:"Delete a category and its tasks."`
	} `cmd:"" help:"Manage categories."`
	ThemeCmd cli.ThemeCmd `cmd:"" name:"theme" help:"Show or change the theme."`
	When     cli.WhenCmd  `cmd:"" help:"Show how a date and time are read and the reminders they raise."`
	Watch    cli.WatchCmd `cmd:"" help:"Deliver reminders in the foreground without the TUI."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("todolane"),
		kong.Description("Categorised to-do lists with timed reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *kong.Context) error {
	cfg, err := runtimeConfig()
	if err != nil {
		return err
	}

	interactive := ctx.Command() == "tui"
	if err := logger.Init(logger.Config{
		Debug:  cfg.Debug,
		Dir:    cfg.LogDir,
		Stderr: cfg.Debug && !interactive,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	defer logger.Close()

	appCtx, err := cli.Open(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := appCtx.Close(); closeErr != nil {
			logger.Warn("close failed", "err", closeErr)
		}
	}()

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("command failed", "command", ctx.Command(), "err", err)
		return err
	}
	return nil
}

// runtimeConfig layers flags over TODOLANE_* variables over defaults.
func runtimeConfig() (config.RuntimeConfig, error) {
	cfg := config.RuntimeConfigFromEnv(config.DefaultRuntimeConfig())
	if CLI.DB != "" {
		cfg.DBPath = CLI.DB
	}
	if CLI.Timezone != "" {
		if _, err := time.LoadLocation(CLI.Timezone); err != nil {
			return cfg, fmt.Errorf("timezone %q: %w", CLI.Timezone, err)
		}
		cfg.Timezone = CLI.Timezone
	}
	if CLI.Theme != "" {
		theme, err := model.ParseTheme(CLI.Theme)
		if err != nil {
			return cfg, err
		}
		cfg.Theme = theme
	}
	if CLI.Notify {
		cfg.DesktopNotifications = true
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	return cfg, nil
}
