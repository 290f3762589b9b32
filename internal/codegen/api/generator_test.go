package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/crudgen/internal/codegen/render"
	"github.com/okra-platform/crudgen/internal/naming"
	"github.com/okra-platform/crudgen/internal/request"
	"github.com/okra-platform/crudgen/internal/schema"
	"github.com/okra-platform/crudgen/internal/testutil"
)

type generator interface {
	Generate(req *request.Request) ([]byte, error)
}

func generate(t *testing.T, g generator, req *request.Request) string {
	t.Helper()
	out, err := g.Generate(req)
	require.NoError(t, err)
	return string(out)
}

func TestModelGenerator_Product(t *testing.T) {
	out := generate(t, NewModelGenerator(render.Options{}), testutil.Product(t))

	assert.Contains(t, out, "import mongoose, { Schema } from 'mongoose';\n\n")
	assert.Contains(t, out, "const productSchema = new Schema(\n  {\n    title: {\n      type: String,\n      trim: true,\n    },\n")
	assert.Contains(t, out, "    size: {\n      type: String,\n      enum: [\"S\",\"M\",\"L\"],\n      trim: true,\n    },\n")
	assert.Contains(t, out, "    quantity: {\n      type: Number,\n      validate: {\n        validator: Number.isInteger,\n")
	assert.Contains(t, out, "    inStock: {\n      type: Boolean,\n      default: false,\n    },\n")
	assert.Contains(t, out, "    gallery: {\n      type: [String],\n    },\n")
	assert.Contains(t, out, "  { timestamps: true },\n);")
	assert.Contains(t, out, "productSchema.index({ title: 'text', email: 'text', size: 'text', description: 'text' });")
	assert.Contains(t, out, `export const productSearchFields: string[] = ["title","email","size","description"];`)
	assert.Contains(t, out, "const Product = mongoose.models.Product || mongoose.model('Product', productSchema);")
	assert.Contains(t, out, "export default Product;\n")

	// price is a float: no integer validator
	assert.NotContains(t, out, "price: {\n      type: Number,\n      validate")
}

func TestGenerators_NoSearchableFields(t *testing.T) {
	// Test: without searchable fields the model exports an empty list and the
	// controller guards its filter instead of sending an empty $or
	req := testutil.Request(t, `{
		"entityName": "Counter",
		"schema": { "count": "INTNUMBER", "active": "BOOLEAN" },
		"namingConvention": {}
	}`)

	model := generate(t, NewModelGenerator(render.Options{}), req)
	assert.NotContains(t, model, ".index(")
	assert.Contains(t, model, "export const counterSearchFields: string[] = [];")

	ctrl := generate(t, NewControllerGenerator(render.Options{}), req)
	assert.Contains(t, ctrl, "import Counter, { counterSearchFields } from '@/app/api/v1/counters/model';")
	assert.Contains(t, ctrl, "const filter = q && counterSearchFields.length > 0\n")
	assert.NotContains(t, ctrl, "$text")
}

func TestGenerators_Idempotent(t *testing.T) {
	// Test: the same request always yields byte-identical output
	opts := render.Options{}
	gens := map[string]generator{
		"model":              NewModelGenerator(opts),
		"controller":         NewControllerGenerator(opts),
		"route":              NewRouteGenerator(opts),
		"summary-controller": NewSummaryControllerGenerator(opts),
		"summary-route":      NewSummaryRouteGenerator(opts),
	}

	for name, g := range gens {
		t.Run(name, func(t *testing.T) {
			first := generate(t, g, testutil.Product(t))
			second := generate(t, g, testutil.Product(t))
			assert.Equal(t, first, second)
			assert.Empty(t, naming.Residual(first))
		})
	}
}

func TestControllerGenerator(t *testing.T) {
	out := generate(t, NewControllerGenerator(render.Options{}), testutil.Product(t))

	assert.Contains(t, out, "import Product, { productSearchFields } from '@/app/api/v1/products/model';")
	assert.Contains(t, out, "{ $or: productSearchFields.map((field) => ({ [field]: { $regex: q, $options: 'i' } })) }")
	assert.Contains(t, out, "export async function getProducts(req: Request) {")
	assert.Contains(t, out, "const [products, total] = await Promise.all([")
	assert.Contains(t, out, "export async function createProduct(req: Request) {")
	assert.Contains(t, out, "export async function updateProduct(req: Request) {")
	assert.Contains(t, out, "export async function bulkUpdateProducts(req: Request) {")
	assert.Contains(t, out, "export async function deleteProducts(req: Request) {")
	assert.Contains(t, out, "'Product not found'")
}

func TestRouteGenerator_FollowsFolderFamily(t *testing.T) {
	tests := []struct {
		name     string
		shared   bool
		expected []string
	}{
		{"dashboard", false, []string{"} from '@/app/api/v1/products/controller';", "// /api/v1/products\n"}},
		{"shared", true, []string{"} from '@/app/generate/products/api/controller';", "// /generate/products/api\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.Product(t).WithSharedFolder(tt.shared)
			out := generate(t, NewRouteGenerator(render.Options{}), req)
			for _, want := range tt.expected {
				assert.Contains(t, out, want)
			}
			for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
				assert.Contains(t, out, "export async function "+method+"(")
			}
		})
	}
}

func TestSummaryGenerators(t *testing.T) {
	req := testutil.Product(t)

	ctrl := generate(t, NewSummaryControllerGenerator(render.Options{}), req)
	assert.Contains(t, ctrl, "export async function getProductSummary() {")
	assert.Contains(t, ctrl, "const [total, last7Days, last30Days, inStockBreakdown, sizeBreakdown] = await Promise.all([")
	assert.Contains(t, ctrl, "Product.aggregate([{ $group: { _id: '$size', count: { $sum: 1 } } }]),")
	assert.Contains(t, ctrl, "breakdown.inStock = Object.fromEntries(")

	route := generate(t, NewSummaryRouteGenerator(render.Options{}), req)
	assert.Contains(t, route, "import { getProductSummary } from '@/app/api/v1/products/summary/controller';")
	assert.Contains(t, route, "// /api/v1/products/summary\n")
}

func TestGenerators_UnknownTag(t *testing.T) {
	// Test: only field-aware generators fail on an unmapped tag
	req := testutil.Request(t, testutil.UnknownTagRequest)
	opts := render.Options{}

	for name, g := range map[string]generator{
		"model":              NewModelGenerator(opts),
		"summary-controller": NewSummaryControllerGenerator(opts),
	} {
		_, err := g.Generate(req)
		assert.ErrorIs(t, err, schema.ErrUnmappedFieldType, name)
	}

	_, err := NewControllerGenerator(opts).Generate(req)
	assert.NoError(t, err)
	_, err = NewRouteGenerator(opts).Generate(req)
	assert.NoError(t, err)
	_, err = NewSummaryRouteGenerator(opts).Generate(req)
	assert.NoError(t, err)
}
