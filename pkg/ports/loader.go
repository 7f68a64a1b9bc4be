package ports

import "github.com/parleykit/parley/pkg/domain"

// ResourceLoader retrieves a compiled dialogue resource. It decouples the
// runtime from storage: files, embedded data, or anything else.
type ResourceLoader interface {
	Load() (*domain.Resource, error)
}
