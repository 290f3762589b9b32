package orchestrator

import (
	"errors"

	"github.com/okra-platform/crudgen/internal/codegen"
	"github.com/okra-platform/crudgen/internal/codegen/render"
	"github.com/okra-platform/crudgen/internal/emit"
	"github.com/okra-platform/crudgen/internal/placement"
	"github.com/okra-platform/crudgen/internal/request"
	"github.com/okra-platform/crudgen/internal/schema"
)

// Class is the kind of failure a run ended with.
type Class int

const (
	ClassNone Class = iota
	// ClassInput: the request itself is wrong. Nothing was generated.
	ClassInput
	// ClassMapping: a field type or artifact kind has no template or path.
	ClassMapping
	// ClassEmission: writing to disk failed part way.
	ClassEmission
	// ClassInternal: anything else, e.g. a broken template override.
	ClassInternal
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassInput:
		return "input"
	case ClassMapping:
		return "mapping"
	case ClassEmission:
		return "emission"
	default:
		return "internal"
	}
}

// Classify maps err onto the error taxonomy. Emission wins over mapping when
// both are present, since it is the later stage.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, emit.ErrEmit):
		return ClassEmission
	case errors.Is(err, request.ErrInvalidRequest), errors.Is(err, ErrUnknownArea):
		return ClassInput
	case errors.Is(err, schema.ErrUnmappedFieldType),
		errors.Is(err, placement.ErrNoMapping),
		errors.Is(err, codegen.ErrUnsupportedKind),
		errors.Is(err, render.ErrResidualToken):
		return ClassMapping
	default:
		return ClassInternal
	}
}
