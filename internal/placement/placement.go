// Package placement decides where each generated artifact lands on disk.
package placement

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/naming"
)

var ErrNoMapping = errors.New("no placement mapping for artifact kind")

// Family is the set of path templates for one folder layout.
type Family struct {
	Name  string
	Paths map[artifact.Kind]func(c naming.Convention) string
}

// Resolver maps (kind, convention, shared) to a relative path.
type Resolver struct {
	Shared    Family
	Dashboard Family
}

// Default is the resolver used by the orchestrators.
var Default = &Resolver{Shared: SharedFamily(), Dashboard: DashboardFamily()}

// SharedFamily places every artifact of an entity under src/app/generate/<camelPlural>.
func SharedFamily() Family {
	root := func(c naming.Convention) string { return "src/app/generate/" + c.CamelPlural }
	components := func(c naming.Convention) string { return root(c) + "/components" }

	return Family{
		Name: "generate",
		Paths: map[artifact.Kind]func(c naming.Convention) string{
			artifact.KindModel:             func(c naming.Convention) string { return root(c) + "/api/model.ts" },
			artifact.KindController:        func(c naming.Convention) string { return root(c) + "/api/controller.ts" },
			artifact.KindRoute:             func(c naming.Convention) string { return root(c) + "/api/route.ts" },
			artifact.KindSummaryController: func(c naming.Convention) string { return root(c) + "/api/summary/controller.ts" },
			artifact.KindSummaryRoute:      func(c naming.Convention) string { return root(c) + "/api/summary/route.ts" },
			artifact.KindSlice:             func(c naming.Convention) string { return root(c) + "/redux/" + c.CamelSingular + "Slice.ts" },
			artifact.KindStore:             func(c naming.Convention) string { return root(c) + "/store/use" + c.PascalSingular + "Store.ts" },
			artifact.KindStoreType:         func(c naming.Convention) string { return root(c) + "/store/types.ts" },
			artifact.KindListView:          func(c naming.Convention) string { return components(c) + "/" + c.PascalSingular + "List.tsx" },
			artifact.KindDetailView:        func(c naming.Convention) string { return components(c) + "/" + c.PascalSingular + "Detail.tsx" },
			artifact.KindForm:              func(c naming.Convention) string { return components(c) + "/" + c.PascalSingular + "Form.tsx" },
			artifact.KindDeleteDialog:      func(c naming.Convention) string { return components(c) + "/Delete" + c.PascalSingular + "Dialog.tsx" },
			artifact.KindBulkActions:       func(c naming.Convention) string { return components(c) + "/" + c.PascalSingular + "BulkActions.tsx" },
			artifact.KindClientPage:        func(c naming.Convention) string { return root(c) + "/page.tsx" },
			artifact.KindSSRPage:           func(c naming.Convention) string { return root(c) + "/ssr/page.tsx" },
			artifact.KindSSRLoader:         func(c naming.Convention) string { return root(c) + "/ssr/loader.ts" },
		},
	}
}

// DashboardFamily spreads artifacts over the per-feature trees: API under
// src/app/api/v1, state under src/redux and src/store, pages under src/app/dashboard.
func DashboardFamily() Family {
	api := func(c naming.Convention) string { return "src/app/api/v1/" + c.KebabPlural }
	page := func(c naming.Convention) string { return "src/app/dashboard/" + c.SnakePlural }
	components := func(c naming.Convention) string { return page(c) + "/_components" }
	store := func(c naming.Convention) string { return "src/store/" + c.CamelSingular }

	return Family{
		Name: "dashboard",
		Paths: map[artifact.Kind]func(c naming.Convention) string{
			artifact.KindModel:             func(c naming.Convention) string { return api(c) + "/model.ts" },
			artifact.KindController:        func(c naming.Convention) string { return api(c) + "/controller.ts" },
			artifact.KindRoute:             func(c naming.Convention) string { return api(c) + "/route.ts" },
			artifact.KindSummaryController: func(c naming.Convention) string { return api(c) + "/summary/controller.ts" },
			artifact.KindSummaryRoute:      func(c naming.Convention) string { return api(c) + "/summary/route.ts" },
			artifact.KindSlice: func(c naming.Convention) string {
				return "src/redux/features/" + c.CamelSingular + "/" + c.CamelSingular + "Slice.ts"
			},
			artifact.KindStore:        func(c naming.Convention) string { return store(c) + "/use" + c.PascalSingular + "Store.ts" },
			artifact.KindStoreType:    func(c naming.Convention) string { return store(c) + "/types.ts" },
			artifact.KindListView:     func(c naming.Convention) string { return components(c) + "/" + c.PascalSingular + "List.tsx" },
			artifact.KindDetailView:   func(c naming.Convention) string { return components(c) + "/" + c.PascalSingular + "Detail.tsx" },
			artifact.KindForm:         func(c naming.Convention) string { return components(c) + "/" + c.PascalSingular + "Form.tsx" },
			artifact.KindDeleteDialog: func(c naming.Convention) string { return components(c) + "/Delete" + c.PascalSingular + "Dialog.tsx" },
			artifact.KindBulkActions:  func(c naming.Convention) string { return components(c) + "/" + c.PascalSingular + "BulkActions.tsx" },
			artifact.KindClientPage:   func(c naming.Convention) string { return page(c) + "/page.tsx" },
			artifact.KindSSRPage:      func(c naming.Convention) string { return page(c) + "/ssr/page.tsx" },
			artifact.KindSSRLoader:    func(c naming.Convention) string { return page(c) + "/ssr/loader.ts" },
		},
	}
}

// Resolve returns the relative output path of kind.
func (r *Resolver) Resolve(kind artifact.Kind, c naming.Convention, shared bool) (string, error) {
	family := r.Dashboard
	if shared {
		family = r.Shared
	}
	fn, ok := family.Paths[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s in %s family", ErrNoMapping, kind, family.Name)
	}
	return fn(c), nil
}

// ImportPath returns the "@/..." module specifier generated code uses for kind.
func (r *Resolver) ImportPath(kind artifact.Kind, c naming.Convention, shared bool) (string, error) {
	p, err := r.Resolve(kind, c, shared)
	if err != nil {
		return "", err
	}
	p = strings.TrimPrefix(p, "src/")
	p = strings.TrimSuffix(p, path.Ext(p))
	return "@/" + p, nil
}

// URLPath returns the URL served by a route or page kind, e.g. "/api/v1/products".
func (r *Resolver) URLPath(kind artifact.Kind, c naming.Convention, shared bool) (string, error) {
	p, err := r.Resolve(kind, c, shared)
	if err != nil {
		return "", err
	}
	base := path.Base(p)
	if base != "route.ts" && base != "page.tsx" {
		return "", fmt.Errorf("%w: %s is not served at a URL", ErrNoMapping, kind)
	}
	dir := strings.TrimPrefix(path.Dir(p), "src/app")
	if dir == "" {
		dir = "/"
	}
	return dir, nil
}

// Resolve uses the Default resolver.
func Resolve(kind artifact.Kind, c naming.Convention, shared bool) (string, error) {
	return Default.Resolve(kind, c, shared)
}
