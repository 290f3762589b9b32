// Package state generates the client-side data layer of a feature: the RTK
// Query API slice, the Zustand UI store and the shared TypeScript types.
package state

import (
	"embed"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/codegen/render"
)

//go:embed templates/*.tmpl
var templates embed.FS

var engine = render.MustEngine(templates, "templates/*.tmpl")

// NewSliceGenerator renders the RTK Query slice. It only uses naming and
// placement, never the field catalog.
func NewSliceGenerator(opts render.Options) *render.TemplateGenerator {
	return render.NewTemplateGenerator(artifact.KindSlice, engine, "slice.tmpl", false, opts)
}

func NewStoreGenerator(opts render.Options) *render.TemplateGenerator {
	return render.NewTemplateGenerator(artifact.KindStore, engine, "store.tmpl", false, opts)
}

func NewStoreTypeGenerator(opts render.Options) *render.TemplateGenerator {
	return render.NewTemplateGenerator(artifact.KindStoreType, engine, "store_type.tmpl", true, opts)
}
