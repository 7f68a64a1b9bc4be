// Package binding resolves script-level names to host state. It owns the
// ordered state-provider list, the literal classification rules, and the
// strict/lenient policy for unknown names.
package binding

import (
	"context"
	"strconv"
	"strings"

	"github.com/parleykit/parley/pkg/domain"
	"github.com/parleykit/parley/pkg/ports"
)

// Type hints guide lenient-mode defaults when a name is undefined.
const (
	HintNone   = ""
	HintNumber = "number"
	HintString = "string"
	HintBool   = "bool"
)

// Binder maps script names to an ordered list of externally owned state
// providers. Resolution is first-match-wins: the first provider that
// defines a property or method owns it, later providers are never
// consulted. In lenient mode, names no provider defines live in an
// internal shadow map instead of failing.
type Binder struct {
	providers []ports.StateProvider
	shadow    map[string]any
	strict    bool
}

// New creates a binder over the given providers. Order is significant.
func New(strict bool, providers ...ports.StateProvider) *Binder {
	return &Binder{
		providers: providers,
		shadow:    make(map[string]any),
		strict:    strict,
	}
}

// Strict reports whether unknown names are fatal.
func (b *Binder) Strict() bool {
	return b.strict
}

// Value resolves a raw token to a concrete value. Non-string tokens pass
// through unchanged. String tokens are classified in order: quoted literal,
// boolean word, integer, float, and finally a variable name looked up
// through the provider list.
func (b *Binder) Value(token any, hint string) (any, error) {
	s, ok := token.(string)
	if !ok {
		return token, nil
	}

	if quoted(s) {
		return s[1 : len(s)-1], nil
	}

	switch strings.ToLower(s) {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}

	return b.property(s, hint)
}

// SetValue writes a property through the owning provider, or into the
// shadow map in lenient mode when no provider defines it.
func (b *Binder) SetValue(name string, value any) error {
	for _, p := range b.providers {
		if p.HasProperty(name) {
			return p.SetProperty(name, value)
		}
	}
	if b.strict {
		return &domain.UnknownPropertyError{Property: name}
	}
	b.shadow[name] = value
	return nil
}

// Call resolves each raw argument through Value, then dispatches to the
// first provider exposing a callable of that name. Lenient mode returns
// false for unknown methods.
func (b *Binder) Call(ctx context.Context, name string, args []any) (any, error) {
	resolved := make([]any, len(args))
	for i, a := range args {
		v, err := b.Value(a, HintNone)
		if err != nil {
			return nil, err
		}
		resolved[i] = v
	}

	for _, p := range b.providers {
		if p.HasMethod(name) {
			return p.CallMethod(ctx, name, resolved)
		}
	}
	if b.strict {
		return nil, &domain.UnknownMethodError{Method: name}
	}
	return false, nil
}

// ShadowSnapshot copies the lenient-mode shadow map: the names scripts
// wrote that no provider claimed. Serve-mode hosts persist these alongside
// provider state.
func (b *Binder) ShadowSnapshot() map[string]any {
	out := make(map[string]any, len(b.shadow))
	for k, v := range b.shadow {
		out[k] = v
	}
	return out
}

func (b *Binder) property(name, hint string) (any, error) {
	for _, p := range b.providers {
		if p.HasProperty(name) {
			return p.GetProperty(name)
		}
	}
	if b.strict {
		return nil, &domain.UnknownPropertyError{Property: name}
	}
	if v, ok := b.shadow[name]; ok {
		return v, nil
	}
	return defaultFor(name, hint), nil
}

// defaultFor picks the lenient-mode zero value. A numeric hint yields 0,
// or 0.0 when the original token looked fractional.
func defaultFor(token, hint string) any {
	switch hint {
	case HintNumber:
		if strings.Contains(token, ".") {
			return 0.0
		}
		return 0
	case HintString:
		return ""
	default:
		return false
	}
}

func quoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}

// Quoted reports whether a raw token text is a quoted string literal.
// The expression reducer uses it for the concatenation special case.
func Quoted(s string) bool {
	return quoted(s)
}
