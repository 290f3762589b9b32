package codegen

import (
	"errors"
	"fmt"

	"github.com/okra-platform/crudgen/internal/artifact"
)

var ErrUnsupportedKind = errors.New("unsupported artifact kind")

// Registry manages available code generators
type Registry struct {
	generators map[artifact.Kind]Factory
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	r := &Registry{
		generators: make(map[artifact.Kind]Factory),
	}
	return r
}

// Register adds a new generator factory to the registry
func (r *Registry) Register(kind artifact.Kind, factory Factory) {
	r.generators[kind] = factory
}

// Get returns a generator for the specified kind
func (r *Registry) Get(kind artifact.Kind, opts Options) (Generator, error) {
	factory, exists := r.generators[kind]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}

	return factory(opts), nil
}

// Kinds returns the registered kinds in generation order.
func (r *Registry) Kinds() []artifact.Kind {
	kinds := make([]artifact.Kind, 0, len(r.generators))
	for _, k := range artifact.Kinds {
		if _, ok := r.generators[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
