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
	logFile *os.File
	logPath string

	setupOnce sync.Once
	logWriter io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   *slog.LevelVar
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories. Must be called before the
// first call to GetLogger to take effect.
func SetLogPath(path string) {
	logPath = path
}

// SetLogWriter replaces the destination of log records. Must be called
// before the first call to GetLogger to take effect.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

func setup() {
	setupOnce.Do(func() {
		if logWriter != nil {
			return
		}

		if logPath == "" {
			logWriter = os.Stderr
			return
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			logWriter = os.Stderr
			return
		}

		var err error
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Can't open log file, fall back to console-only
			logWriter = os.Stderr
			return
		}

		logWriter = io.MultiWriter(os.Stderr, logFile)
	})
}

// GetLogger returns the module logger, building it on first use.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		if levelVar == nil {
			levelVar = &slog.LevelVar{}
			levelVar.Set(slog.LevelError)
		}

		setup()

		handler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
			Level:     levelVar,
			AddSource: false,
		})
		logger = slog.New(handler).With("component", "deeplinks")
	})
	return logger
}

func SetLogLevel(level slog.Level) {
	GetLogger()
	levelVar.Set(level)
}

// ParseLevel maps a raw level name to a slog level. Unknown names map to info.
func ParseLevel(rawLevel string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(rawLevel)) {
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
	SetLogLevel(ParseLevel(rawLevel))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
