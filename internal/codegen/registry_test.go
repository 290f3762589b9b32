package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/request"
)

// mockGenerator is a test generator
type mockGenerator struct {
	kind artifact.Kind
}

func (m *mockGenerator) Generate(req *request.Request) ([]byte, error) {
	return []byte("mock output"), nil
}

func (m *mockGenerator) Kind() artifact.Kind {
	return m.kind
}

func TestRegistry_NewRegistry(t *testing.T) {
	// Test: New registry is empty by default
	r := NewRegistry()
	assert.NotNil(t, r)
	assert.Empty(t, r.Kinds())

	_, err := r.Get(artifact.KindModel, Options{})
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestRegistry_Register(t *testing.T) {
	// Test: Register custom generator
	r := NewRegistry()

	r.Register(artifact.KindRoute, func(opts Options) Generator {
		return &mockGenerator{kind: artifact.KindRoute}
	})

	gen, err := r.Get(artifact.KindRoute, Options{})
	require.NoError(t, err)
	assert.Equal(t, artifact.KindRoute, gen.Kind())

	out, err := gen.Generate(nil)
	require.NoError(t, err)
	assert.Equal(t, "mock output", string(out))
}

func TestRegistry_UnsupportedKind(t *testing.T) {
	// Test: Error for unsupported kind
	r := NewRegistry()

	gen, err := r.Get("unknown", Options{})
	assert.Error(t, err)
	assert.Nil(t, gen)
	assert.Contains(t, err.Error(), "unsupported artifact kind: unknown")
}

func TestRegistry_KindsInGenerationOrder(t *testing.T) {
	// Test: Kinds follows artifact.Kinds order, not registration order
	r := NewRegistry()
	for _, k := range []artifact.Kind{artifact.KindSSRLoader, artifact.KindModel, artifact.KindStore} {
		r.Register(k, func(opts Options) Generator { return &mockGenerator{kind: k} })
	}

	assert.Equal(t, []artifact.Kind{artifact.KindModel, artifact.KindStore, artifact.KindSSRLoader}, r.Kinds())
}

func TestDefaultRegistry_CoversEveryKind(t *testing.T) {
	// Test: every artifact kind has a generator reporting that kind
	assert.Equal(t, artifact.Kinds, DefaultRegistry.Kinds())

	for _, k := range artifact.Kinds {
		gen, err := DefaultRegistry.Get(k, Options{})
		require.NoError(t, err)
		assert.Equal(t, k, gen.Kind())
	}
}
