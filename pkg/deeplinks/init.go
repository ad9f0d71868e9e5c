// Package deeplinks resolves incoming URLs against a registry of declared
// deeplinks and runs the matching one.
//
// A deeplink declares the URLs it answers to with a Path, either a regular
// expression or declarative paths with parameter markers:
//
//	item/{id}            path segment parameter
//	search?{q?}          optional first query item
//	feed?{tab}&{page?}   required first and optional next query item
//	{section}            whole-path parameter
//
// Running a deeplink goes through these steps, each waiting for the previous
// one to call back:
//
//  1. Navigation returns to the root screen, if the deeplink asks for it.
//  2. Any loader left on screen is dismissed; a new one is presented if the
//     deeplink asks for it.
//  3. The deeplink handles the URL and produces an Action.
//  4. The loader is dismissed and the action is executed.
//
// If decoding or handling fails, the loader is dropped, the deeplink's
// Recover hook may supply a fallback action, and the caller's onError is
// invoked exactly once.
package deeplinks

import (
	"io"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/constants"
	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/internal"
)

// GetLogger returns the module logger for structured logging. Debug level is
// enabled when DEEPLINKS_DEBUG is set or ENVIRONMENT=DEV.
func GetLogger() *slog.Logger {
	debugOnce.Do(func() {
		if constants.IsDebug() {
			internal.SetLogLevel(slog.LevelDebug)
		}
	})
	return internal.GetLogger()
}

var debugOnce sync.Once

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before the first Service is created to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// SetLogWriter sends log records to w instead of stderr.
// Call before the first Service is created to take effect.
func SetLogWriter(w io.Writer) {
	internal.SetLogWriter(w)
}

// SetLogLevel sets the minimum log level for the module logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// CloseLogger closes the log file, if one was opened.
func CloseLogger() {
	internal.CloseLogger()
}
