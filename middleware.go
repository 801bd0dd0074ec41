package cpbridge

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps a Handler with cross-cutting behavior (logging, recovery).
// The descriptor identifies the tool being wrapped.
type Middleware func(Descriptor, Handler) Handler

// WithLogging returns a middleware that logs start, end, duration, and errors.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(d Descriptor, next Handler) Handler {
		return func(ctx context.Context, args Args) (*Result, error) {
			start := time.Now()
			logger.DebugContext(ctx, "tool start", "tool", d.Name)
			res, err := next(ctx, args)
			dur := time.Since(start)
			if err != nil {
				logger.ErrorContext(ctx, "tool failed", "tool", d.Name, "duration", dur, "error", err)
				return nil, err
			}
			logger.InfoContext(ctx, "tool done", "tool", d.Name, "duration", dur, "parts", len(res.Parts))
			return res, nil
		}
	}
}

// WithRecovery returns a middleware that recovers panics and returns
// HandlerError. Redundant when the registry already recovers; useful for
// handlers invoked outside Dispatch.
func WithRecovery() Middleware {
	return func(_ Descriptor, next Handler) Handler {
		return func(ctx context.Context, args Args) (res *Result, err error) {
			defer func() {
				if p := recover(); p != nil {
					res, err = nil, &HandlerError{Err: &panicError{p: p}}
				}
			}()
			return next(ctx, args)
		}
	}
}
