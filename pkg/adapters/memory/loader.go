// Package memory provides in-process adapters: a resource loader over a
// prebuilt document and a session store backed by a map. Both are meant
// for tests and for hosts that embed their dialogue data.
package memory

import (
	"fmt"

	"github.com/parleykit/parley/pkg/domain"
)

// Loader implements ports.ResourceLoader over an already built resource.
type Loader struct {
	resource *domain.Resource
}

// NewLoader wraps a resource in a loader.
func NewLoader(res *domain.Resource) *Loader {
	return &Loader{resource: res}
}

// Load returns the wrapped resource.
func (l *Loader) Load() (*domain.Resource, error) {
	if l.resource == nil {
		return nil, fmt.Errorf("memory loader holds no resource")
	}
	return l.resource, nil
}
