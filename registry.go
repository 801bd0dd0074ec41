package cpbridge

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool is a registered tool: descriptor, compiled schema, and handler.
// Instances are created by Register and never mutated afterwards.
type Tool struct {
	desc      Descriptor
	schemaMap map[string]any
	resolved  *jsonschema.Resolved
	handler   Handler
}

// Descriptor returns the registered descriptor.
func (t *Tool) Descriptor() Descriptor { return t.desc }

// Schema returns the JSON Schema map exported to the orchestrator. Callers
// must not mutate the returned map.
func (t *Tool) Schema() map[string]any { return t.schemaMap }

// Registry holds the tool set and dispatches calls with timeout and panic
// recovery. The set is populated once at startup; registering a duplicate name
// is an error so misconfiguration fails fast instead of silently replacing a
// tool.
type Registry struct {
	mu          sync.Mutex
	tools       map[string]*Tool
	opts        registryOptions
	middlewares []Middleware
	done        chan struct{}
	running     sync.WaitGroup
}

// NewRegistry creates a Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{
		timeout:       2 * time.Minute,
		recoverPanics: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		tools:       make(map[string]*Tool),
		opts:        o,
		middlewares: o.middlewares,
		done:        make(chan struct{}),
	}
}

// Register compiles the descriptor's schema and adds the tool. Stored
// middlewares are applied to the handler, outermost first.
func (r *Registry) Register(d Descriptor, h Handler) error {
	if h == nil {
		return fmt.Errorf("tool %q: nil handler", d.Name)
	}
	schemaMap, resolved, err := compileDescriptor(d)
	if err != nil {
		return err
	}
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](d, h)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[d.Name]; exists {
		return fmt.Errorf("tool %q: already registered", d.Name)
	}
	r.tools[d.Name] = &Tool{desc: d, schemaMap: schemaMap, resolved: resolved, handler: h}
	return nil
}

// MustRegister is Register that panics on error, for startup wiring.
func (r *Registry) MustRegister(d Descriptor, h Handler) {
	if err := r.Register(d, h); err != nil {
		panic(err)
	}
}

// Resolve returns the tool with the given name, or (nil, false) if not found.
// Resolution is a pure lookup with no side effects.
func (r *Registry) Resolve(name string) (*Tool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tools[name]
	return t, ok
}

// Descriptors returns all registered descriptors sorted by name for
// deterministic export.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, r.tools[name].desc)
	}
	return out
}

// Tools returns all registered tools sorted by name.
func (r *Registry) Tools() []*Tool {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]*Tool, 0, len(names))
	for _, name := range names {
		out = append(out, r.tools[name])
	}
	return out
}

// Dispatch resolves, validates, and executes one tool call.
//
// Failure modes: ErrToolNotFound for an unknown name, *ArgumentError for
// schema or coercion failures, *HandlerError for handler faults (including
// recovered panics and empty results). Missing optional parameters are filled
// from declared defaults, then from the registry-wide default handle for
// identity parameters, before validation runs.
func (r *Registry) Dispatch(ctx context.Context, call Call) (res *Result, err error) {
	r.mu.Lock()
	select {
	case <-r.done:
		r.mu.Unlock()
		return nil, ErrShutdown
	default:
	}
	tool, ok := r.tools[call.Name]
	if !ok {
		r.mu.Unlock()
		return nil, ErrToolNotFound
	}
	r.running.Add(1)
	r.mu.Unlock()
	defer r.running.Done()

	args, err := buildArgs(tool.desc, call.Arguments, r.opts.defaultHandle)
	if err != nil {
		return nil, err
	}
	generic, err := validatableArgs(args)
	if err != nil {
		return nil, &HandlerError{Err: err}
	}
	if err := validateAgainstSchema(tool.resolved, generic); err != nil {
		return nil, err
	}

	if r.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.timeout)
		defer cancel()
	}
	if r.opts.recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				res, err = nil, &HandlerError{Err: &panicError{p: p}}
			}
		}()
	}

	res, err = tool.handler(ctx, args)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: tool %q", ErrTimeout, call.Name)
		}
		return nil, wrapHandlerError(err)
	}
	if res.Empty() {
		return nil, &HandlerError{Err: fmt.Errorf("tool %q returned an empty result", call.Name)}
	}
	return res, nil
}

// Shutdown closes the registry for new calls and waits for in-flight
// dispatches or ctx to cancel.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	select {
	case <-r.done:
		r.mu.Unlock()
		return nil
	default:
		close(r.done)
	}
	r.mu.Unlock()
	done := make(chan struct{})
	go func() {
		r.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
