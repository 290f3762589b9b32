package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/crudgen/internal/codegen/render"
	"github.com/okra-platform/crudgen/internal/naming"
	"github.com/okra-platform/crudgen/internal/schema"
	"github.com/okra-platform/crudgen/internal/testutil"
)

func TestStoreGenerator_Product(t *testing.T) {
	out, err := NewStoreGenerator(render.Options{}).Generate(testutil.Product(t))
	require.NoError(t, err)
	store := string(out)

	assert.Contains(t, store, "import type { Product } from '@/store/product/types';")
	assert.Contains(t, store, "export const useProductStore = create<ProductState>((set) => ({")
	assert.Contains(t, store, "  products: [],\n")
	assert.Contains(t, store, "  selectedProduct: null,\n")
	assert.Contains(t, store, "setSelectedProduct: (product) => set({ selectedProduct: product }),")
	assert.NotContains(t, store, naming.TokenPascalSingular)
	assert.Empty(t, naming.Residual(store))
}

func TestStoreGenerator_TokenOrderSafety(t *testing.T) {
	// Test: variants that contain each other never bleed into one another
	tests := []struct {
		entity   string
		contains []string
		absent   []string
	}{
		{"Status", []string{"useStatusStore", "  statuses: [],", "selectedStatus: null"}, []string{"Statuseses", "statuseses"}},
		{"Media_s", []string{"useMediaStore", "  medias: [],", "setMedias:"}, []string{"Mediass", "mediass"}},
		{"Accessory", []string{"useAccessoryStore", "  accessories: [],"}, []string{"Accessorys"}},
	}

	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			req := testutil.Request(t, `{"entityName": "`+tt.entity+`", "schema": {"name": "STRING"}, "namingConvention": {}}`)
			out, err := NewStoreGenerator(render.Options{}).Generate(req)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, string(out), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, string(out), s)
			}
		})
	}
}

func TestStoreTypeGenerator_Product(t *testing.T) {
	out, err := NewStoreTypeGenerator(render.Options{}).Generate(testutil.Product(t))
	require.NoError(t, err)
	types := string(out)

	assert.Contains(t, types, "export interface Product {\n  _id: string;\n  title: string;\n")
	assert.Contains(t, types, "  quantity: number;\n")
	assert.Contains(t, types, "  inStock: boolean;\n")
	assert.Contains(t, types, "  size: \"S\" | \"M\" | \"L\";\n")
	assert.Contains(t, types, "  gallery: string[];\n  createdAt: string;\n  updatedAt: string;\n}")
	assert.Contains(t, types, "export type ProductInput = Omit<Product, '_id' | 'createdAt' | 'updatedAt'>;")
	assert.Contains(t, types, "  size: \"S\",\n")
	assert.Contains(t, types, "  inStock: false,\n")
	assert.Contains(t, types, "    products: Product[];\n")
}

func TestSliceGenerator_FollowsFolderFamily(t *testing.T) {
	tests := []struct {
		name     string
		shared   bool
		expected []string
	}{
		{"dashboard", false, []string{
			"} from '@/store/product/types';",
			"const API_URL = '/api/v1/products';",
			"const SUMMARY_URL = '/api/v1/products/summary';",
		}},
		{"shared", true, []string{
			"} from '@/app/generate/products/store/types';",
			"const API_URL = '/generate/products/api';",
			"const SUMMARY_URL = '/generate/products/api/summary';",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewSliceGenerator(render.Options{}).Generate(testutil.Product(t).WithSharedFolder(tt.shared))
			require.NoError(t, err)
			for _, want := range tt.expected {
				assert.Contains(t, string(out), want)
			}
			assert.Contains(t, string(out), "export const productsApi = createApi({")
			assert.Contains(t, string(out), "  useGetProductsQuery,\n")
			assert.Contains(t, string(out), "  useDeleteProductsMutation,\n")
		})
	}
}

func TestGenerators_UnknownTag(t *testing.T) {
	// Test: slice and store never read fields; store-type does
	req := testutil.Request(t, testutil.UnknownTagRequest)

	_, err := NewSliceGenerator(render.Options{}).Generate(req)
	assert.NoError(t, err)
	_, err = NewStoreGenerator(render.Options{}).Generate(req)
	assert.NoError(t, err)
	_, err = NewStoreTypeGenerator(render.Options{}).Generate(req)
	assert.ErrorIs(t, err, schema.ErrUnmappedFieldType)
}

func TestGenerators_Idempotent(t *testing.T) {
	for _, g := range []*render.TemplateGenerator{
		NewSliceGenerator(render.Options{}),
		NewStoreGenerator(render.Options{}),
		NewStoreTypeGenerator(render.Options{}),
	} {
		t.Run(string(g.Kind()), func(t *testing.T) {
			first, err := g.Generate(testutil.Product(t))
			require.NoError(t, err)
			second, err := g.Generate(testutil.Product(t))
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}
