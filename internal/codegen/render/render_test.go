package render

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/naming"
	"github.com/okra-platform/crudgen/internal/placement"
	"github.com/okra-platform/crudgen/internal/request"
	"github.com/okra-platform/crudgen/internal/schema"
	"github.com/okra-platform/crudgen/internal/testutil"
)

func TestNewData_FieldsOnlyWhenRequested(t *testing.T) {
	// Test: an unknown tag only fails data that needs the field catalog
	req := testutil.Request(t, testutil.UnknownTagRequest)

	d, err := NewData(req, nil, false)
	require.NoError(t, err)
	assert.Empty(t, d.Fields)

	_, err = NewData(req, nil, true)
	assert.ErrorIs(t, err, schema.ErrUnmappedFieldType)
	assert.True(t, IsMapping(err))
}

func TestNewData_BulkFields(t *testing.T) {
	d, err := NewData(testutil.Product(t), nil, true)
	require.NoError(t, err)

	require.Len(t, d.Bulk, 2)
	assert.Equal(t, "size", d.Bulk[0].Name)
	assert.Equal(t, []BulkValue{{`"S"`, "S"}, {`"M"`, "M"}, {`"L"`, "L"}}, d.Bulk[0].Values)
	assert.Equal(t, "inStock", d.Bulk[1].Name)
	assert.Equal(t, "In Stock", d.Bulk[1].Label)
	assert.Equal(t, []BulkValue{{"true", "Yes"}, {"false", "No"}}, d.Bulk[1].Values)
	assert.True(t, d.HasBulk())
}

func TestNewData_BulkFieldMustBeEnumerable(t *testing.T) {
	// Test: an unvalidated bulk action on a free-text field is still an input error
	req := testutil.Product(t)
	req.Naming.BulkActionFields = []string{"title"}

	_, err := NewData(req, nil, true)
	assert.ErrorIs(t, err, request.ErrBulkFieldType)
	assert.ErrorIs(t, err, request.ErrInvalidRequest)
	assert.False(t, IsMapping(err))
}

func TestData_ImportFollowsFamily(t *testing.T) {
	req := testutil.Product(t)

	d, err := NewData(req, placement.Default, false)
	require.NoError(t, err)
	imp, err := d.Import("store")
	require.NoError(t, err)
	assert.Equal(t, "@/store/product/useProductStore", imp)

	shared, err := NewData(req.WithSharedFolder(true), placement.Default, false)
	require.NoError(t, err)
	imp, err = shared.Import("store")
	require.NoError(t, err)
	assert.Equal(t, "@/app/generate/products/store/useProductStore", imp)

	url, err := shared.URL("route")
	require.NoError(t, err)
	assert.Equal(t, "/generate/products/api", url)

	_, err = d.Import("nope")
	assert.Error(t, err)
}

func TestData_FieldViews(t *testing.T) {
	d, err := NewData(testutil.Product(t), nil, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "email", "size", "description"}, d.SearchFields())
	assert.Equal(t, []string{
		"DatePickerField", "EmailField", "InputField", "MultiImageUploadField",
		"NumberField", "SelectField", "SwitchField", "TextareaField",
	}, d.Widgets())

	var breakdown []string
	for _, f := range d.Breakdown() {
		breakdown = append(breakdown, f.Name)
	}
	assert.Equal(t, []string{"inStock", "size"}, breakdown)

	require.Len(t, d.SelectFields(), 1)
	assert.Equal(t, `["S","M","L"]`, d.SelectFields()[0].OptionsLiteral())
}

func TestData_SearchFieldsNeverNil(t *testing.T) {
	d := &Data{}
	assert.NotNil(t, d.SearchFields())
}

func TestEngine_Render(t *testing.T) {
	fsys := fstest.MapFS{
		"t/name.tmpl":   {Data: []byte(`{{.Naming.PascalPlural}} {{quote .Naming.TitleSingular}} {{kebab "CourseBatch"}}`)},
		"t/broken.tmpl": {Data: []byte(`{{.Import "nope"}}`)},
	}
	e, err := NewEngine(fsys, "t/*.tmpl")
	require.NoError(t, err)
	assert.True(t, e.Has("name.tmpl"))

	d := &Data{Naming: naming.MustDerive("Product"), resolver: placement.Default}
	out, err := e.Render("name.tmpl", d)
	require.NoError(t, err)
	assert.Equal(t, `Products "Product" course-batch`, string(out))

	_, err = e.Render("broken.tmpl", d)
	assert.ErrorIs(t, err, ErrTemplate)

	_, err = e.Render("missing.tmpl", d)
	assert.ErrorIs(t, err, ErrTemplate)
}

func TestNewEngine_ParseError(t *testing.T) {
	_, err := NewEngine(fstest.MapFS{"bad.tmpl": {Data: []byte(`{{if}}`)}}, "*.tmpl")
	assert.ErrorIs(t, err, ErrTemplate)

	assert.Panics(t, func() {
		MustEngine(fstest.MapFS{"bad.tmpl": {Data: []byte(`{{if}}`)}}, "*.tmpl")
	})
}

func TestFinish_RejectsResidualTokens(t *testing.T) {
	out, err := Finish(artifact.KindStore, []byte("export const useProductStore = 1;"))
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = Finish(artifact.KindStore, []byte("export const use"+naming.TokenPascalSingular+"Store = 1;"))
	assert.ErrorIs(t, err, ErrResidualToken)
	assert.Contains(t, err.Error(), naming.TokenPascalSingular)
}

func TestLoadOverrides(t *testing.T) {
	fsys := fstest.MapFS{
		"custom/store.skel":  {Data: []byte("export const use" + naming.TokenPascalSingular + "Store = " + naming.TokenCamelPlural + ";")},
		"custom/route.tmpl":  {Data: []byte("// {{.Naming.KebabPlural}}")},
		"custom/README.md":   {Data: []byte("ignored")},
		"other/model.tmpl":   {Data: []byte("model")},
		"top-level.tmpl":     {Data: []byte("ignored, not in a template set")},
	}

	set, err := LoadOverrides(fsys)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	o, ok := set.Lookup("custom", artifact.KindStore)
	require.True(t, ok)
	assert.True(t, o.Skeleton)

	_, ok = set.Lookup("custom", artifact.KindModel)
	assert.False(t, ok)
	_, ok = OverrideSet(nil).Lookup("custom", artifact.KindStore)
	assert.False(t, ok)
}

func TestLoadOverrides_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"unknown kind", fstest.MapFS{"custom/widget.tmpl": {Data: []byte("x")}}},
		{"parse error", fstest.MapFS{"custom/route.tmpl": {Data: []byte("{{end}}")}}},
		{"template and skeleton", fstest.MapFS{
			"custom/route.tmpl": {Data: []byte("a")},
			"custom/route.skel": {Data: []byte("b")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOverrides(tt.fsys)
			assert.ErrorIs(t, err, ErrOverride)
		})
	}
}

func TestGenerate_UsesOverrideForTemplateName(t *testing.T) {
	set, err := LoadOverrides(fstest.MapFS{
		"custom/store.skel": {Data: []byte("use" + naming.TokenPascalSingular + "Store/" + naming.TokenCamelPlural)},
		"leaky/store.tmpl":  {Data: []byte(`{{"` + naming.TokenCamelSingular + `"}}`)},
	})
	require.NoError(t, err)
	opts := Options{Overrides: set}
	builtin := func(d *Data) ([]byte, error) { return []byte("builtin " + d.Naming.CamelPlural), nil }

	req := testutil.Product(t)
	out, err := Generate(artifact.KindStore, opts, req, false, builtin)
	require.NoError(t, err)
	assert.Equal(t, "builtin products", string(out))

	req.TemplateName = "custom"
	out, err = Generate(artifact.KindStore, opts, req, false, builtin)
	require.NoError(t, err)
	assert.Equal(t, "useProductStore/products", string(out))

	req.TemplateName = "leaky"
	_, err = Generate(artifact.KindStore, opts, req, false, builtin)
	assert.ErrorIs(t, err, ErrResidualToken)
}
