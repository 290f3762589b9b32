// Package views generates the React side of a feature: the client page and its
// components, and the server-rendered page with its data loader.
package views

import (
	"embed"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/codegen/render"
)

//go:embed templates/*.tmpl
var templates embed.FS

var engine = render.MustEngine(templates, "templates/*.tmpl")

type view struct {
	template   string
	withFields bool
}

var views = map[artifact.Kind]view{
	artifact.KindListView:     {"list_view.tmpl", true},
	artifact.KindDetailView:   {"detail_view.tmpl", true},
	artifact.KindForm:         {"form.tmpl", true},
	artifact.KindDeleteDialog: {"delete_dialog.tmpl", false},
	artifact.KindBulkActions:  {"bulk_actions.tmpl", true},
	artifact.KindClientPage:   {"client_page.tmpl", false},
	artifact.KindSSRPage:      {"ssr_page.tmpl", false},
	artifact.KindSSRLoader:    {"ssr_loader.tmpl", false},
}

// Kinds lists the view kinds in generation order.
var Kinds = []artifact.Kind{
	artifact.KindListView,
	artifact.KindDetailView,
	artifact.KindForm,
	artifact.KindDeleteDialog,
	artifact.KindBulkActions,
	artifact.KindClientPage,
	artifact.KindSSRPage,
	artifact.KindSSRLoader,
}

// NewGenerator returns the generator of a view kind. It panics on a kind that
// is not a view, which is a programming error.
func NewGenerator(kind artifact.Kind, opts render.Options) *render.TemplateGenerator {
	v, ok := views[kind]
	if !ok {
		panic("views: not a view kind: " + string(kind))
	}
	return render.NewTemplateGenerator(kind, engine, v.template, v.withFields, opts)
}
