package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/todolane/internal/model"
)

const appDirName = "todolane"

type RuntimeConfig struct {
	DBPath               string
	LogDir               string
	Theme                model.Theme
	DesktopNotifications bool
	SchedulerBuffer      int
	UndoWindow           time.Duration
	Timezone             string
	SweepInterval        time.Duration
	Debug                bool
}

// DefaultRuntimeConfig keeps state under the user config directory, falling
// back to the working directory when none is available.
func DefaultRuntimeConfig() RuntimeConfig {
	base := appDirName
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		base = filepath.Join(dir, appDirName)
	}
	return RuntimeConfig{
		DBPath:               filepath.Join(base, "todolane.db"),
		LogDir:               filepath.Join(base, "logs"),
		Theme:                model.ThemeLight,
		DesktopNotifications: false,
		SchedulerBuffer:      64,
		UndoWindow:           5 * time.Second,
		SweepInterval:        15 * time.Minute,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODOLANE_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TODOLANE_LOG_DIR"); ok {
		cfg.LogDir = v
	}
	if v, ok := getEnvString("TODOLANE_THEME"); ok {
		if theme, err := model.ParseTheme(v); err == nil {
			cfg.Theme = theme
		}
	}
	if v, ok := getEnvBool("TODOLANE_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TODOLANE_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("TODOLANE_UNDO_SECONDS"); ok && v > 0 {
		cfg.UndoWindow = time.Duration(v) * time.Second
	}
	if v, ok := getEnvInt("TODOLANE_SWEEP_MINUTES"); ok && v > 0 {
		cfg.SweepInterval = time.Duration(v) * time.Minute
	}
	if v, ok := getEnvString("TODOLANE_TIMEZONE"); ok {
		cfg.Timezone = v
	}
	if v, ok := getEnvBool("TODOLANE_DEBUG"); ok {
		cfg.Debug = v
	}
	return cfg
}

// Location resolves Timezone, defaulting to the machine's local zone.
func (c RuntimeConfig) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
