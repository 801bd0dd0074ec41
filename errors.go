package cpbridge

import (
	"errors"
	"fmt"
)

// Sentinel errors for the bridge. Use errors.Is to check.
var (
	ErrToolNotFound     = errors.New("tool not found")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrTimeout          = errors.New("tool execution timeout")
	ErrShutdown         = errors.New("registry is shutting down")
)

// ArgumentError is a caller-side failure: a missing required parameter, a value
// that cannot be coerced to its declared type, or a constraint violation.
// Reason is safe to display verbatim to the end user; it never carries stack
// traces or internal paths.
type ArgumentError struct {
	Reason string
	Err    error // wrapped sentinel for errors.Is/errors.As
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid tool input: %s", e.Reason)
}

// Unwrap supports errors.Is/errors.As on wrapped chains (e.g. errors.Is(err, ErrInvalidArguments)).
func (e *ArgumentError) Unwrap() error { return e.Err }

// NewArgumentError builds an ArgumentError with display-safe text. Handlers may
// return it for business-rule validation failures; Dispatch passes it through
// unchanged instead of hiding it behind a HandlerError.
func NewArgumentError(format string, args ...any) *ArgumentError {
	return &ArgumentError{Reason: fmt.Sprintf(format, args...), Err: ErrInvalidArguments}
}

// HandlerError is a failure during aggregation or rendering. Detail, when set,
// is display-safe text (e.g. an upstream rejection message); the cause stays
// wrapped for logs and is never shown to the caller.
type HandlerError struct {
	Detail string
	Err    error
}

func (e *HandlerError) Error() string {
	if e.Detail != "" {
		return "tool execution failed: " + e.Detail
	}
	return "internal error during tool execution"
}

func (e *HandlerError) Unwrap() error { return e.Err }

// IsArgumentError returns true if err is or wraps an ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// IsHandlerError returns true if err is or wraps a HandlerError.
func IsHandlerError(err error) bool {
	var he *HandlerError
	return errors.As(err, &he)
}

// wrapHandlerError passes through ArgumentError and HandlerError; wraps other
// errors as HandlerError with no display detail.
func wrapHandlerError(err error) error {
	if err == nil {
		return nil
	}
	if IsArgumentError(err) || IsHandlerError(err) {
		return err
	}
	return &HandlerError{Err: err}
}

// panicError wraps a recovered panic value for HandlerError.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
