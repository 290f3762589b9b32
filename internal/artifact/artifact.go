// Package artifact names the kinds of files the generator produces.
package artifact

import "fmt"

// Kind identifies one generated file type.
type Kind string

const (
	KindModel             Kind = "model"
	KindController        Kind = "controller"
	KindRoute             Kind = "route"
	KindSummaryController Kind = "summary-controller"
	KindSummaryRoute      Kind = "summary-route"
	KindSlice             Kind = "slice"
	KindStore             Kind = "store"
	KindStoreType         Kind = "store-type"
	KindListView          Kind = "list-view"
	KindDetailView        Kind = "detail-view"
	KindForm              Kind = "form"
	KindDeleteDialog      Kind = "delete-dialog"
	KindBulkActions       Kind = "bulk-actions"
	KindClientPage        Kind = "client-page"
	KindSSRPage           Kind = "ssr-page"
	KindSSRLoader         Kind = "ssr-loader"
)

// Kinds lists every kind in generation order.
var Kinds = []Kind{
	KindModel, KindController, KindRoute, KindSummaryController, KindSummaryRoute,
	KindSlice, KindStore, KindStoreType,
	KindListView, KindDetailView, KindForm, KindDeleteDialog, KindBulkActions, KindClientPage,
	KindSSRPage, KindSSRLoader,
}

// Parse returns the Kind named s.
func Parse(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown artifact kind: %s", s)
}

// Artifact is one generated file. It is written exactly once, in full.
type Artifact struct {
	Kind         Kind   `json:"kind"`
	RelativePath string `json:"relativePath"`
	Content      []byte `json:"-"`
}

