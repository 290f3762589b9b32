package naming

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Convention
	}{
		{
			name: "simple singular",
			raw:  "Product",
			want: Convention{
				PascalSingular: "Product", CamelSingular: "product",
				PascalPlural: "Products", CamelPlural: "products",
				KebabPlural: "products", SnakePlural: "products",
				TitleSingular: "Product", TitlePlural: "Products",
			},
		},
		{
			name: "plural lower-case input",
			raw:  "products",
			want: Convention{
				PascalSingular: "Product", CamelSingular: "product",
				PascalPlural: "Products", CamelPlural: "products",
				KebabPlural: "products", SnakePlural: "products",
				TitleSingular: "Product", TitlePlural: "Products",
			},
		},
		{
			name: "y to ies",
			raw:  "Accessory",
			want: Convention{
				PascalSingular: "Accessory", CamelSingular: "accessory",
				PascalPlural: "Accessories", CamelPlural: "accessories",
				KebabPlural: "accessories", SnakePlural: "accessories",
				TitleSingular: "Accessory", TitlePlural: "Accessories",
			},
		},
		{
			name: "word already ending in s",
			raw:  "Status",
			want: Convention{
				PascalSingular: "Status", CamelSingular: "status",
				PascalPlural: "Statuses", CamelPlural: "statuses",
				KebabPlural: "statuses", SnakePlural: "statuses",
				TitleSingular: "Status", TitlePlural: "Statuses",
			},
		},
		{
			name: "explicit plural marker",
			raw:  "Media_s",
			want: Convention{
				PascalSingular: "Media", CamelSingular: "media",
				PascalPlural: "Medias", CamelPlural: "medias",
				KebabPlural: "medias", SnakePlural: "medias",
				TitleSingular: "Media", TitlePlural: "Medias",
			},
		},
		{
			name: "multi word with underscores",
			raw:  "course_batch",
			want: Convention{
				PascalSingular: "CourseBatch", CamelSingular: "courseBatch",
				PascalPlural: "CourseBatches", CamelPlural: "courseBatches",
				KebabPlural: "course-batches", SnakePlural: "course_batches",
				TitleSingular: "Course Batch", TitlePlural: "Course Batches",
			},
		},
		{
			name: "spaces and surrounding whitespace",
			raw:  "  course batch ",
			want: Convention{
				PascalSingular: "CourseBatch", CamelSingular: "courseBatch",
				PascalPlural: "CourseBatches", CamelPlural: "courseBatches",
				KebabPlural: "course-batches", SnakePlural: "course_batches",
				TitleSingular: "Course Batch", TitlePlural: "Course Batches",
			},
		},
		{
			name: "singular noun ending in s",
			raw:  "Gas",
			want: Convention{
				PascalSingular: "Gas", CamelSingular: "gas",
				PascalPlural: "Gases", CamelPlural: "gases",
				KebabPlural: "gases", SnakePlural: "gases",
				TitleSingular: "Gas", TitlePlural: "Gases",
			},
		},
		{
			name: "plural of a singular noun ending in s",
			raw:  "canvases",
			want: Convention{
				PascalSingular: "Canvas", CamelSingular: "canvas",
				PascalPlural: "Canvases", CamelPlural: "canvases",
				KebabPlural: "canvases", SnakePlural: "canvases",
				TitleSingular: "Canvas", TitlePlural: "Canvases",
			},
		},
		{
			name: "multi word ending in alias",
			raw:  "email alias",
			want: Convention{
				PascalSingular: "EmailAlias", CamelSingular: "emailAlias",
				PascalPlural: "EmailAliases", CamelPlural: "emailAliases",
				KebabPlural: "email-aliases", SnakePlural: "email_aliases",
				TitleSingular: "Email Alias", TitlePlural: "Email Aliases",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Derive(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestDerive_EmptyName(t *testing.T) {
	// Test: empty and whitespace-only names are rejected
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := Derive(raw)
		assert.ErrorIs(t, err, ErrEmptyName, "raw=%q", raw)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	// Test: independent derivations of the same name are identical
	for _, raw := range []string{"Media_s", "Status", "Accessory", "course_batch", "Payment", "people"} {
		first, err := Derive(raw)
		require.NoError(t, err)
		second, err := Derive(raw)
		require.NoError(t, err)
		assert.Equal(t, first, second, "raw=%q", raw)
	}
}

func TestDerive_NoDoublePluralization(t *testing.T) {
	// Test: re-deriving from an already derived singular or plural is a fixed point
	for _, raw := range []string{"Status", "Accessory", "CourseBatch", "Product", "Gas", "Canvas", "Atlas", "Alias", "Lens", "people"} {
		first := MustDerive(raw)

		assert.Equal(t, first, MustDerive(first.PascalSingular), "raw=%q", raw)
		assert.Equal(t, first, MustDerive(first.CamelPlural), "raw=%q", raw)
	}

	media := MustDerive("Media_s")
	assert.Equal(t, "Medias", media.PascalPlural)
	assert.False(t, strings.HasSuffix(media.PascalPlural, "ss"))
}

func TestConvention_Validate(t *testing.T) {
	valid := MustDerive("Product")

	tests := []struct {
		name    string
		mutate  func(c *Convention)
		wantErr error
	}{
		{"valid", func(c *Convention) {}, nil},
		{"missing camel plural", func(c *Convention) { c.CamelPlural = "" }, ErrInvalidFormat},
		{"lower-case pascal", func(c *Convention) { c.PascalSingular = "product" }, ErrInvalidFormat},
		{"upper-case camel", func(c *Convention) { c.CamelPlural = "Products" }, ErrInvalidFormat},
		{"not an identifier", func(c *Convention) { c.PascalPlural = "Pro-ducts" }, ErrInvalidFormat},
		{"singular mismatch", func(c *Convention) { c.CamelSingular = "item" }, ErrInconsistent},
		{"plural mismatch", func(c *Convention) { c.PascalPlural = "Items" }, ErrInconsistent},
		{"singular equals plural", func(c *Convention) {
			c.PascalPlural = c.PascalSingular
			c.CamelPlural = c.CamelSingular
		}, ErrInconsistent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDerive_SingularNounsEndingInS(t *testing.T) {
	// Test: the final s of a singular noun is never stripped
	for raw, plural := range map[string]string{
		"Gas": "Gases", "Canvas": "Canvases", "Atlas": "Atlases", "Alias": "Aliases", "Lens": "Lenses",
	} {
		c := MustDerive(raw)
		assert.Equal(t, raw, c.PascalSingular)
		assert.Equal(t, plural, c.PascalPlural)
		assert.Equal(t, c, MustDerive(plural), "raw=%q", plural)
	}
}

func TestDerive_NonASCIITitle(t *testing.T) {
	// Test: title variants capitalise the first rune, not the first byte
	c, err := Derive("équipe")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(c.TitleSingular))
	assert.True(t, utf8.ValidString(c.TitlePlural))
	assert.Equal(t, "Équipe", c.TitleSingular)
}

func TestUpperFirst(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"product", "Product"},
		{"Product", "Product"},
		{"ärger", "Ärger"},
		{"x", "X"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UpperFirst(tt.in), "in=%q", tt.in)
	}
}
