package cpbridge

import "time"

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	timeout       time.Duration
	defaultHandle string
	recoverPanics bool
	middlewares   []Middleware
}

// WithDispatchTimeout bounds each Dispatch with a deadline. Pass 0 to disable.
func WithDispatchTimeout(d time.Duration) RegistryOption {
	return func(o *registryOptions) {
		o.timeout = d
	}
}

// WithDefaultHandle sets the process-wide default user identity substituted
// for parameters marked IdentityDefault when the caller omits them.
func WithDefaultHandle(handle string) RegistryOption {
	return func(o *registryOptions) {
		o.defaultHandle = handle
	}
}

// WithRecoverPanics enables panic recovery in Dispatch (returns HandlerError).
func WithRecoverPanics(enable bool) RegistryOption {
	return func(o *registryOptions) {
		o.recoverPanics = enable
	}
}

// WithMiddleware stores middlewares applied to every handler at Register time,
// outermost first.
func WithMiddleware(mws ...Middleware) RegistryOption {
	return func(o *registryOptions) {
		o.middlewares = append(o.middlewares, mws...)
	}
}
