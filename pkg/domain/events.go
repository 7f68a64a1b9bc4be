package domain

import (
	"context"
	"time"
)

// EventType identifies a runtime event kind for listener registration.
type EventType string

const (
	// EventStarted fires when the running signal transitions false -> true.
	EventStarted EventType = "started"
	// EventFinished fires when the running signal transitions true -> false.
	EventFinished EventType = "finished"
)

// LineEvent describes a printable unit emitted to the host.
type LineEvent struct {
	Key  string `json:"key"`
	Type string `json:"type"`
}

// MutationEvent describes a mutation side effect executed during traversal.
type MutationEvent struct {
	Key string `json:"key"`
}

// TraversalEvent describes one completed GetNextDialogueLine call.
type TraversalEvent struct {
	Key      string        `json:"key"`
	Terminal bool          `json:"terminal"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines optional callbacks for engine observability.
// Nil hooks are skipped.
type LifecycleHooks struct {
	OnLine      func(context.Context, *LineEvent)
	OnMutation  func(context.Context, *MutationEvent)
	OnTraversal func(context.Context, *TraversalEvent)
}
