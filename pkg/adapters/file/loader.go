// Package file loads compiled dialogue resources from disk. A resource
// document is JSON or YAML; YAML being a superset, both parse through the
// same path and then decode into domain types via mapstructure.
package file

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/parleykit/parley/internal/validator"
	"github.com/parleykit/parley/pkg/domain"
)

// Loader implements ports.ResourceLoader over a single document file.
type Loader struct {
	path     string
	validate bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithValidation runs the integrity validator after decoding, failing the
// load on dangling references.
func WithValidation() LoaderOption {
	return func(l *Loader) {
		l.validate = true
	}
}

// NewLoader creates a loader for the given document path.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{path: path}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and decodes the document.
func (l *Loader) Load() (*domain.Resource, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading resource %s: %w", l.path, err)
	}

	res, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding resource %s: %w", l.path, err)
	}

	if l.validate {
		if err := validator.Validate(res); err != nil {
			return nil, fmt.Errorf("validating resource %s: %w", l.path, err)
		}
	}
	return res, nil
}

// Decode unmarshals a JSON or YAML resource document. The intermediate
// generic map keeps a single decode path for both formats.
func Decode(data []byte) (*domain.Resource, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	var res domain.Resource
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &res,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("mapping document: %w", err)
	}
	return &res, nil
}
