package orchestrator

import (
	"errors"
	"fmt"

	"github.com/okra-platform/crudgen/internal/artifact"
)

var ErrUnknownArea = errors.New("unknown generation area")

// Area is a group of artifacts generated and emitted together.
type Area string

const (
	AreaAPI        Area = "api"
	AreaRedux      Area = "redux"
	AreaStore      Area = "store"
	AreaClientView Area = "client-view"
	AreaSSRView    Area = "ssr-view"
	AreaAll        Area = "all"
)

// Areas lists the concrete areas in the order "all" reports them.
var Areas = []Area{AreaAPI, AreaRedux, AreaStore, AreaClientView, AreaSSRView}

var areaKinds = map[Area][]artifact.Kind{
	AreaAPI: {
		artifact.KindModel,
		artifact.KindController,
		artifact.KindRoute,
		artifact.KindSummaryController,
		artifact.KindSummaryRoute,
	},
	AreaRedux: {artifact.KindSlice},
	AreaStore: {artifact.KindStore, artifact.KindStoreType},
	AreaClientView: {
		artifact.KindListView,
		artifact.KindDetailView,
		artifact.KindForm,
		artifact.KindDeleteDialog,
		artifact.KindBulkActions,
		artifact.KindClientPage,
	},
	AreaSSRView: {artifact.KindSSRPage, artifact.KindSSRLoader},
}

// ParseArea returns the Area named s.
func ParseArea(s string) (Area, error) {
	a := Area(s)
	if a == AreaAll {
		return a, nil
	}
	if _, ok := areaKinds[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownArea, s)
	}
	return a, nil
}

// Kinds returns the artifact kinds of a, in generation order. For AreaAll it
// returns every kind.
func (a Area) Kinds() []artifact.Kind {
	if a == AreaAll {
		var all []artifact.Kind
		for _, area := range Areas {
			all = append(all, areaKinds[area]...)
		}
		return all
	}
	return append([]artifact.Kind(nil), areaKinds[a]...)
}
