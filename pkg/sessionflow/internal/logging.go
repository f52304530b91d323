package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile   *os.File
	logPath   string
	logFormat string
	logOutput io.Writer

	setupOnce   sync.Once
	multiWriter io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   = &slog.LevelVar{}
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories. An empty path logs to the
// console only.
func SetLogPath(path string) {
	logPath = path
}

// SetLogFormat selects "json" (default) or "text" output.
func SetLogFormat(format string) {
	logFormat = strings.ToLower(format)
}

// SetLogOutput replaces stdout as the console destination.
func SetLogOutput(w io.Writer) {
	logOutput = w
}

func setup() {
	setupOnce.Do(func() {
		console := logOutput
		if console == nil {
			console = os.Stdout
		}

		if logPath == "" {
			multiWriter = console
			return
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			multiWriter = console
			return
		}

		var err error
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Can't open log file, fall back to console-only
			multiWriter = console
			return
		}

		multiWriter = io.MultiWriter(console, logFile)
	})
}

// GetLogger returns the shared application logger, building it on first use
// from the path, format and output configured so far.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		setup()
		logger = NewLogger(multiWriter, logFormat, levelVar)
	})
	return logger
}

// NewLogger builds an isolated logger writing to w.
func NewLogger(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" onto slog
// levels. Anything else is info.
func ParseLevel(rawLevel string) slog.Level {
	switch strings.ToLower(rawLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(rawLevel string) {
	levelVar.Set(ParseLevel(rawLevel))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
