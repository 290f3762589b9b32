// Package codegen maps artifact kinds to the generators that render them.
package codegen

import (
	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/codegen/render"
	"github.com/okra-platform/crudgen/internal/request"
)

// Generator is the interface every artifact generator implements. Generate is
// pure: the same request always yields the same bytes, with no I/O.
type Generator interface {
	// Generate returns the full content of the artifact for req
	Generate(req *request.Request) ([]byte, error)

	// Kind returns the artifact kind this generator produces
	Kind() artifact.Kind
}

// Options contains common options for code generation
type Options = render.Options

// Factory builds a generator for one kind.
type Factory func(opts Options) Generator
