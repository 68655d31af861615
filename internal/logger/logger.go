package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const fileName = "todolane.log"

var (
	Logger *log.Logger
	sink   *lumberjack.Logger
)

type Config struct {
	Debug bool
	Dir   string
	// Stderr mirrors records to stderr. The TUI leaves it off so log lines
	// never tear the alt screen.
	Stderr bool
}

// Init replaces the package logger with one writing to a rotating file
// under cfg.Dir.
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return err
	}
	if sink != nil {
		_ = sink.Close()
	}

	sink = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, fileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = sink
	if cfg.Stderr {
		writer = io.MultiWriter(os.Stderr, sink)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "todolane",
	})
	return nil
}

// Path is the active log file, empty before Init.
func Path() string {
	if sink == nil {
		return ""
	}
	return sink.Filename
}

func Close() error {
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	Logger = nil
	return err
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
