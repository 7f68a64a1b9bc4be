package ports

import "context"

// StateProvider exposes host-owned state to dialogue scripts. The binding
// layer holds an ordered list of providers and resolves every name with a
// first-match-wins scan: the first provider whose HasProperty/HasMethod
// returns true owns the name and later providers are never consulted.
//
// CallMethod may block (a provider method is allowed to suspend); it must
// honor ctx cancellation.
type StateProvider interface {
	HasProperty(name string) bool
	GetProperty(name string) (any, error)
	SetProperty(name string, value any) error

	HasMethod(name string) bool
	CallMethod(ctx context.Context, name string, args []any) (any, error)
}
