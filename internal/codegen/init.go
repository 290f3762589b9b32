package codegen

import (
	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/codegen/api"
	"github.com/okra-platform/crudgen/internal/codegen/state"
	"github.com/okra-platform/crudgen/internal/codegen/views"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewRegistry()

func init() {
	// API layer
	DefaultRegistry.Register(artifact.KindModel, func(opts Options) Generator { return api.NewModelGenerator(opts) })
	DefaultRegistry.Register(artifact.KindController, func(opts Options) Generator { return api.NewControllerGenerator(opts) })
	DefaultRegistry.Register(artifact.KindRoute, func(opts Options) Generator { return api.NewRouteGenerator(opts) })
	DefaultRegistry.Register(artifact.KindSummaryController, func(opts Options) Generator { return api.NewSummaryControllerGenerator(opts) })
	DefaultRegistry.Register(artifact.KindSummaryRoute, func(opts Options) Generator { return api.NewSummaryRouteGenerator(opts) })

	// Client state
	DefaultRegistry.Register(artifact.KindSlice, func(opts Options) Generator { return state.NewSliceGenerator(opts) })
	DefaultRegistry.Register(artifact.KindStore, func(opts Options) Generator { return state.NewStoreGenerator(opts) })
	DefaultRegistry.Register(artifact.KindStoreType, func(opts Options) Generator { return state.NewStoreTypeGenerator(opts) })

	// Views
	for _, kind := range views.Kinds {
		DefaultRegistry.Register(kind, func(opts Options) Generator { return views.NewGenerator(kind, opts) })
	}
}
