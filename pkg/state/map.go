// Package state ships the standard host-side StateProvider: a mutex-guarded
// map of properties plus a table of bound methods. Hosts with richer state
// (entities, save games) implement ports.StateProvider directly.
package state

import (
	"context"
	"fmt"
	"sync"
)

// Method is a callable bound into a Map. Arguments arrive already resolved
// by the binding layer. A method may block; it should honor ctx.
type Method func(ctx context.Context, args []any) (any, error)

// Map is a map-backed state provider.
type Map struct {
	mu      sync.RWMutex
	props   map[string]any
	methods map[string]Method
}

// NewMap creates a provider seeded with the given properties. The initial
// map is copied; nil is fine.
func NewMap(initial map[string]any) *Map {
	props := make(map[string]any, len(initial))
	for k, v := range initial {
		props[k] = v
	}
	return &Map{
		props:   props,
		methods: make(map[string]Method),
	}
}

// Bind registers a callable under the given name, replacing any previous
// binding.
func (m *Map) Bind(name string, fn Method) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods[name] = fn
}

// Snapshot returns a copy of the current properties, for persistence.
func (m *Map) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.props))
	for k, v := range m.props {
		out[k] = v
	}
	return out
}

func (m *Map) HasProperty(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.props[name]
	return ok
}

func (m *Map) GetProperty(name string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.props[name]
	if !ok {
		return nil, fmt.Errorf("property not defined: %s", name)
	}
	return v, nil
}

func (m *Map) SetProperty(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[name] = value
	return nil
}

func (m *Map) HasMethod(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.methods[name]
	return ok
}

func (m *Map) CallMethod(ctx context.Context, name string, args []any) (any, error) {
	m.mu.RLock()
	fn, ok := m.methods[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("method not bound: %s", name)
	}
	return fn(ctx, args)
}
