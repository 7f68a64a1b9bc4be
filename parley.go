package parley

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parleykit/parley/internal/binding"
	"github.com/parleykit/parley/internal/eval"
	"github.com/parleykit/parley/internal/runtime"
	"github.com/parleykit/parley/pkg/domain"
	"github.com/parleykit/parley/pkg/ports"
)

// Version is the library version, surfaced by the CLI.
const Version = "0.3.0"

// Runtime is the high-level entry point for the library. It bundles a
// compiled dialogue resource, the host state providers, and the traversal
// engine behind a small API. A Runtime carries no process-global state;
// hosts create as many as they need.
type Runtime struct {
	engine    *runtime.Engine
	resource  *domain.Resource
	loader    ports.ResourceLoader
	providers []ports.StateProvider
	strict    bool
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithResource sets the compiled dialogue resource directly.
func WithResource(res *domain.Resource) Option {
	return func(r *Runtime) {
		r.resource = res
	}
}

// WithLoader sets a loader that produces the resource at construction
// time. WithResource takes precedence when both are given.
func WithLoader(loader ports.ResourceLoader) Option {
	return func(r *Runtime) {
		r.loader = loader
	}
}

// WithStates appends host state providers. Lookup order is registration
// order; the first provider claiming a name wins.
func WithStates(providers ...ports.StateProvider) Option {
	return func(r *Runtime) {
		r.providers = append(r.providers, providers...)
	}
}

// WithStrict toggles strict state resolution. Strict runtimes fail
// traversal on unknown properties and methods; lenient ones fall back to
// hinted zero values and remember writes in a shadow store. The default
// is strict.
func WithStrict(strict bool) Option {
	return func(r *Runtime) {
		r.strict = strict
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runtime) {
		r.hooks = hooks
	}
}

// New builds a Runtime. A resource is optional at construction: a runtime
// without one can still serve GetNextDialogueLineFrom calls.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		strict: true,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.resource == nil && r.loader != nil {
		res, err := r.loader.Load()
		if err != nil {
			return nil, fmt.Errorf("loading resource: %w", err)
		}
		r.resource = res
	}

	binder := binding.New(r.strict, r.providers...)
	evaluator := eval.New(binder, r.logger)
	r.engine = runtime.NewEngine(evaluator,
		runtime.WithDefaultResource(r.resource),
		runtime.WithLogger(r.logger),
		runtime.WithLifecycleHooks(r.hooks),
	)
	return r, nil
}

// GetNextDialogueLine resolves a key against the configured resource and
// returns the next printable line, or nil when the dialogue has ended.
func (r *Runtime) GetNextDialogueLine(ctx context.Context, key string) (*domain.DialogueLine, error) {
	return r.engine.NextLine(ctx, key, nil)
}

// GetNextDialogueLineFrom is the explicit-resource variant, for hosts that
// juggle several compiled resources over one runtime.
func (r *Runtime) GetNextDialogueLineFrom(ctx context.Context, key string, res *domain.Resource) (*domain.DialogueLine, error) {
	return r.engine.NextLine(ctx, key, res)
}

// AddListener registers a callback for dialogue start/finish transitions
// and returns a handle usable with RemoveListener.
func (r *Runtime) AddListener(kind domain.EventType, fn func()) int {
	return r.engine.AddListener(kind, fn)
}

// RemoveListener unregisters a callback by its handle.
func (r *Runtime) RemoveListener(kind domain.EventType, id int) {
	r.engine.RemoveListener(kind, id)
}

// Running reports whether a dialogue is currently in flight.
func (r *Runtime) Running() bool {
	return r.engine.Running()
}

// Resource returns the configured resource, if any.
func (r *Runtime) Resource() *domain.Resource {
	return r.resource
}

// Titles lists the entry titles of the configured resource.
func (r *Runtime) Titles() []string {
	if r.resource == nil {
		return nil
	}
	titles := make([]string, 0, len(r.resource.Titles))
	for title := range r.resource.Titles {
		titles = append(titles, title)
	}
	return titles
}
