package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		seed      string
		overrides Overrides
		want      func(c Convention)
		wantErr   error
	}{
		{
			name:      "seed from pascal singular token",
			overrides: Overrides{PascalSingular: "Product", CamelPlural: "products"},
			want: func(c Convention) {
				assert.Equal(t, "Product", c.PascalSingular)
				assert.Equal(t, "product", c.CamelSingular)
				assert.Equal(t, "Products", c.PascalPlural)
				assert.Equal(t, "products", c.CamelPlural)
			},
		},
		{
			name:      "seed from camel plural only",
			overrides: Overrides{CamelPlural: "accessories"},
			want: func(c Convention) {
				assert.Equal(t, "Accessory", c.PascalSingular)
				assert.Equal(t, "Accessories", c.PascalPlural)
			},
		},
		{
			name:      "explicit irregular plural wins",
			seed:      "Person",
			overrides: Overrides{PascalPlural: "People", CamelPlural: "people"},
			want: func(c Convention) {
				assert.Equal(t, "Person", c.PascalSingular)
				assert.Equal(t, "People", c.PascalPlural)
				assert.Equal(t, "people", c.KebabPlural)
				assert.Equal(t, "People", c.TitlePlural)
			},
		},
		{
			name:      "disagreeing overrides",
			overrides: Overrides{PascalSingular: "Product", CamelSingular: "item"},
			wantErr:   ErrInconsistent,
		},
		{
			name:    "nothing to derive from",
			wantErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.seed, tt.overrides)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.want(got)
		})
	}
}

func TestReplacer_LongestTokenFirst(t *testing.T) {
	// Test: a token that is a prefix of another never corrupts the longer one
	r := NewReplacer(map[string]string{
		"ENTITY":        "Product",
		"ENTITY_PLURAL": "Products",
		"ENT":           "X",
	})

	got := r.Replace("ENTITY_PLURAL ENTITY ENT ENTITY_PLURALS")
	assert.Equal(t, "Products Product X ProductsS", got)
}

func TestReplacer_OrderIndependent(t *testing.T) {
	// Test: the result does not depend on map iteration order
	pairs := map[string]string{"ab": "1", "abc": "2", "a": "3", "bc": "4"}
	want := NewReplacer(pairs).Replace("abcabca")
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, NewReplacer(pairs).Replace("abcabca"))
	}
	assert.Equal(t, "223", want)
}

func TestSubstitute(t *testing.T) {
	// Test: sentinel skeletons expand into the convention's variants
	c := MustDerive("Product")
	skeleton := "export const use" + TokenPascalSingular + "Store = create(() => ({ " +
		TokenCamelPlural + ": [], selected" + TokenPascalSingular + ": null }));"

	got := Substitute(skeleton, c)
	assert.Equal(t, "export const useProductStore = create(() => ({ products: [], selectedProduct: null }));", got)
	assert.Empty(t, Residual(got))
}

func TestResidual(t *testing.T) {
	// Test: residual sentinel tokens are reported in a stable order
	text := "a " + TokenCamelPlural + " b " + TokenPascalSingular
	assert.Equal(t, []string{TokenPascalSingular, TokenCamelPlural}, Residual(text))
	assert.Empty(t, Residual("clean output"))
}
