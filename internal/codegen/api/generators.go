package api

import (
	"embed"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/codegen/render"
)

//go:embed templates/*.tmpl
var templates embed.FS

var engine = render.MustEngine(templates, "templates/*.tmpl")

// NewControllerGenerator renders the CRUD handlers. Search fields come from the
// model, so the controller itself never reads the field catalog.
func NewControllerGenerator(opts render.Options) *render.TemplateGenerator {
	return render.NewTemplateGenerator(artifact.KindController, engine, "controller.tmpl", false, opts)
}

func NewRouteGenerator(opts render.Options) *render.TemplateGenerator {
	return render.NewTemplateGenerator(artifact.KindRoute, engine, "route.tmpl", false, opts)
}

// NewSummaryControllerGenerator renders the summary handler, which groups
// counts by every SELECT and BOOLEAN field.
func NewSummaryControllerGenerator(opts render.Options) *render.TemplateGenerator {
	return render.NewTemplateGenerator(artifact.KindSummaryController, engine, "summary_controller.tmpl", true, opts)
}

func NewSummaryRouteGenerator(opts render.Options) *render.TemplateGenerator {
	return render.NewTemplateGenerator(artifact.KindSummaryRoute, engine, "summary_route.tmpl", false, opts)
}
