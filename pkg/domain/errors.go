package domain

import (
	"errors"
	"fmt"
)

// ErrMissingResource is returned when a traversal is requested with neither
// an explicit resource nor a configured default. Fatal in any mode.
var ErrMissingResource = errors.New("no dialogue resource supplied")

// ErrSessionNotFound is returned by session stores when an ID is unknown.
var ErrSessionNotFound = errors.New("session not found")

// ExportError marks a condition or mutation side that failed to compile in
// the authoring tool. Reaching one at runtime is fatal in any mode.
type ExportError struct {
	Detail string
}

func (e *ExportError) Error() string {
	if e.Detail == "" {
		return "expression failed to export at compile time"
	}
	return fmt.Sprintf("expression failed to export at compile time: %s", e.Detail)
}

// UnknownPropertyError reports a property name no configured state provider
// defines. Fatal in strict mode; recovered silently in lenient mode.
type UnknownPropertyError struct {
	Property string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("no state provider defines property %q", e.Property)
}

// UnknownMethodError reports a callable name no configured state provider
// exposes. Fatal in strict mode; recovered silently in lenient mode.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("no state provider exposes method %q", e.Method)
}
