package internal

import (
	"log/slog"

	"go.uber.org/atomic"
)

// Once wraps a completion callback so that only its first invocation runs.
// Later invocations are dropped and reported to the logger, since every
// collaborator is expected to call back exactly once.
func Once(logger *slog.Logger, step string, fn func()) func() {
	var fired atomic.Bool
	return func() {
		if !fired.CompareAndSwap(false, true) {
			logger.Warn("completion called more than once", "step", step)
			return
		}
		fn()
	}
}

// OnceWith is Once for callbacks that carry a result.
func OnceWith[T any](logger *slog.Logger, step string, fn func(T)) func(T) {
	var fired atomic.Bool
	return func(v T) {
		if !fired.CompareAndSwap(false, true) {
			logger.Warn("completion called more than once", "step", step)
			return
		}
		fn(v)
	}
}
