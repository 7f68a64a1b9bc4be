// Package runtime implements the dialogue traversal engine: resolving a
// key through the resource graph into the next printable unit, executing
// mutation side effects along the way, and maintaining the edge-triggered
// running signal.
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/parleykit/parley/internal/eval"
	"github.com/parleykit/parley/pkg/domain"
)

// Engine walks a dialogue resource. A single Engine serializes its
// traversal calls: a second call blocks until the first (including any
// wait suspension) returns.
type Engine struct {
	eval     *eval.Evaluator
	resource *domain.Resource
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	signal   *Signal

	mu sync.Mutex
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithDefaultResource sets the resource used when a traversal call does
// not pass one explicitly.
func WithDefaultResource(res *domain.Resource) EngineOption {
	return func(e *Engine) {
		e.resource = res
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine over the given evaluator.
func NewEngine(ev *eval.Evaluator, opts ...EngineOption) *Engine {
	e := &Engine{
		eval:   ev,
		logger: slog.New(slog.DiscardHandler),
		signal: NewSignal(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddListener registers a started/finished callback; see Signal.
func (e *Engine) AddListener(kind domain.EventType, fn func()) int {
	return e.signal.AddListener(kind, fn)
}

// RemoveListener unregisters a callback by handle.
func (e *Engine) RemoveListener(kind domain.EventType, id int) {
	e.signal.RemoveListener(kind, id)
}

// Running reports whether a dialogue is currently in flight.
func (e *Engine) Running() bool {
	return e.signal.Running()
}

// NextLine resolves a key to the next printable unit of the resource, or
// nil when the graph has terminated. Passing a nil resource falls back to
// the configured default; having neither is a configuration error.
//
// The running signal rises when a call succeeds and falls on termination.
// A call that fails never touches the signal, so listeners and Running()
// keep the last known state.
func (e *Engine) NextLine(ctx context.Context, key string, res *domain.Resource) (*domain.DialogueLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if res == nil {
		res = e.resource
	}
	if res == nil {
		return nil, domain.ErrMissingResource
	}

	start := time.Now()

	line, err := e.walk(ctx, key, res)
	if err != nil {
		e.logger.Debug("traversal failed", "key", key, "error", err)
		return nil, err
	}

	e.signal.Raise()
	if line == nil {
		e.signal.Lower()
	}
	if e.hooks.OnTraversal != nil {
		e.hooks.OnTraversal(ctx, &domain.TraversalEvent{
			Key:      key,
			Terminal: line == nil,
			Duration: time.Since(start),
		})
	}
	return line, nil
}

// walk drives the outer loop: mutation units execute their side effect and
// advance without ever being surfaced; anything else printable is returned.
// Invalid units terminate the walk exactly like a missing key.
func (e *Engine) walk(ctx context.Context, key string, res *domain.Resource) (*domain.DialogueLine, error) {
	for {
		line, at, err := e.step(ctx, key, res)
		if err != nil {
			return nil, err
		}
		if line == nil || !valid(line) {
			return nil, nil
		}

		if line.Type == domain.TypeMutation {
			if err := e.eval.Mutate(ctx, line.Mutation); err != nil {
				return nil, err
			}
			if e.hooks.OnMutation != nil {
				e.hooks.OnMutation(ctx, &domain.MutationEvent{Key: at})
			}
			if line.NextID == "" {
				return nil, nil
			}
			key = line.NextID
			continue
		}

		if e.hooks.OnLine != nil {
			e.hooks.OnLine(ctx, &domain.LineEvent{Key: at, Type: line.Type})
		}
		return line, nil
	}
}

// step resolves a key to the next printable unit, looping through the
// non-printable node kinds: titles translate, conditions branch, gotos
// skip. It returns the key the unit was built from alongside the unit.
func (e *Engine) step(ctx context.Context, key string, res *domain.Resource) (*domain.DialogueLine, string, error) {
	for {
		if target, ok := res.Titles[key]; ok {
			key = target
		}
		data, ok := res.Lines[key]
		if !ok {
			// Terminal: empty or dangling key.
			return nil, key, nil
		}

		switch data.Type {
		case domain.TypeCondition:
			pass, err := e.eval.Check(ctx, data.Condition)
			if err != nil {
				return nil, key, err
			}
			if pass {
				key = data.NextID
			} else {
				key = data.NextConditionalID
			}
		case domain.TypeGoto:
			key = data.NextID
		default:
			line, err := e.build(ctx, &data, res)
			return line, key, err
		}
	}
}

// build constructs the boundary value for a printable node. For dialogue
// and mutation nodes it also peeks the successor: a response-typed next
// node contributes its filtered option list, and a single surviving option
// collapses into a direct continuation.
func (e *Engine) build(ctx context.Context, data *domain.Line, res *domain.Resource) (*domain.DialogueLine, error) {
	line := &domain.DialogueLine{
		Type:      data.Type,
		NextID:    data.NextID,
		Responses: []domain.DialogueResponse{},
	}

	switch data.Type {
	case domain.TypeResponse:
		responses, err := e.filterResponses(ctx, data.Responses, res)
		if err != nil {
			return nil, err
		}
		line.Responses = responses
		return line, nil

	case domain.TypeDialogue:
		line.Character = data.Character
		text, err := e.eval.Interpolate(ctx, data.Text, data.Replacements)
		if err != nil {
			return nil, err
		}
		line.Dialogue = text

	case domain.TypeMutation:
		line.Mutation = data.Mutation
	}

	if next, ok := res.Lines[data.NextID]; ok && next.Type == domain.TypeResponse {
		responses, err := e.filterResponses(ctx, next.Responses, res)
		if err != nil {
			return nil, err
		}
		line.Responses = responses
		if len(responses) == 1 {
			// A dead-end single choice is a continuation, not a choice.
			line.NextID = responses[0].NextID
		}
	}

	return line, nil
}

// filterResponses keeps the options whose conditions pass (or that have
// none), building a prompt/target pair per survivor.
func (e *Engine) filterResponses(ctx context.Context, keys []string, res *domain.Resource) ([]domain.DialogueResponse, error) {
	out := make([]domain.DialogueResponse, 0, len(keys))
	for _, key := range keys {
		data, ok := res.Lines[key]
		if !ok {
			continue
		}
		pass, err := e.eval.Check(ctx, data.Condition)
		if err != nil {
			return nil, err
		}
		if !pass {
			continue
		}
		prompt, err := e.eval.Interpolate(ctx, data.Text, data.Replacements)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.DialogueResponse{
			Prompt: prompt,
			NextID: data.NextID,
		})
	}
	return out, nil
}

// valid applies the boundary checks: empty dialogue text, a mutation node
// without a mutation, and a response set with no survivors all read as
// graph termination.
func valid(line *domain.DialogueLine) bool {
	switch line.Type {
	case domain.TypeDialogue:
		return line.Dialogue != ""
	case domain.TypeMutation:
		return line.Mutation != nil
	case domain.TypeResponse:
		return len(line.Responses) > 0
	}
	return true
}
