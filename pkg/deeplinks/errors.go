package deeplinks

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per ProcessingError kind. Use errors.Is to test a
// returned error against them.
var (
	// ErrPatternInvalid indicates a route path could not be compiled.
	ErrPatternInvalid = errors.New("deeplinks: path pattern is invalid")

	// ErrParameterPosition indicates a parameter marker is not preceded by
	// "/", "?" or "&" and does not start the path.
	ErrParameterPosition = errors.New("deeplinks: parameter position is invalid")

	// ErrParameterDecode indicates the query parameters could not be decoded
	// into the route's parameter type.
	ErrParameterDecode = errors.New("deeplinks: parameters decoding failed")

	// ErrHandlerFailed indicates the route's own handling reported an error.
	ErrHandlerFailed = errors.New("deeplinks: deeplink handling failed")
)

// ErrorKind classifies a ProcessingError.
type ErrorKind int

const (
	KindPatternInvalid    ErrorKind = iota // Route path failed to compile
	KindParameterPosition                  // Misplaced parameter marker in a route path
	KindParameterDecode                    // Query parameters failed to decode
	KindHandlerFailed                      // Route handler reported an error
)

func (k ErrorKind) String() string {
	switch k {
	case KindPatternInvalid:
		return "pattern_invalid"
	case KindParameterPosition:
		return "parameter_position"
	case KindParameterDecode:
		return "parameter_decode"
	case KindHandlerFailed:
		return "handler_failed"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindPatternInvalid:
		return ErrPatternInvalid
	case KindParameterPosition:
		return ErrParameterPosition
	case KindParameterDecode:
		return ErrParameterDecode
	case KindHandlerFailed:
		return ErrHandlerFailed
	default:
		return nil
	}
}

// ProcessingError is the single error type reported by the module.
//
// Registration-time defects (KindPatternInvalid, KindParameterPosition) abort
// a lookup. Per-request failures (KindParameterDecode, KindHandlerFailed) are
// routed through the deeplink's Recover hook and the caller's onError.
type ProcessingError struct {
	Kind  ErrorKind
	Path  Path   // Offending route path (KindPatternInvalid)
	Token string // Offending parameter token (KindParameterPosition)
	Err   error  // Underlying cause
}

func (e *ProcessingError) Error() string {
	switch e.Kind {
	case KindPatternInvalid:
		return fmt.Sprintf("deeplinks: path %s is incorrect: %v", e.Path, e.Err)
	case KindParameterPosition:
		return fmt.Sprintf("deeplinks: invalid parameter position %q", e.Token)
	case KindParameterDecode:
		return fmt.Sprintf("deeplinks: parsing parameters failed: %v", e.Err)
	case KindHandlerFailed:
		return fmt.Sprintf("deeplinks: failed to handle deeplink: %v", e.Err)
	default:
		return fmt.Sprintf("deeplinks: %v", e.Err)
	}
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error of this error's kind.
func (e *ProcessingError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func newPatternInvalid(path Path, err error) *ProcessingError {
	return &ProcessingError{Kind: KindPatternInvalid, Path: path, Err: err}
}

func newParameterPosition(token string) *ProcessingError {
	return &ProcessingError{Kind: KindParameterPosition, Token: token}
}

func newParameterDecode(err error) *ProcessingError {
	return &ProcessingError{Kind: KindParameterDecode, Err: err}
}

func newHandlerFailed(err error) *ProcessingError {
	return &ProcessingError{Kind: KindHandlerFailed, Err: err}
}

// AsProcessingError extracts a *ProcessingError from err's chain.
func AsProcessingError(err error) (*ProcessingError, bool) {
	var perr *ProcessingError
	ok := errors.As(err, &perr)
	return perr, ok
}

// IsPatternError checks if an error means a route path is broken, either
// because it failed to compile or because a parameter is misplaced.
func IsPatternError(err error) bool {
	return errors.Is(err, ErrPatternInvalid) || errors.Is(err, ErrParameterPosition)
}
