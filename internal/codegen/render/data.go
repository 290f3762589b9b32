package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/naming"
	"github.com/okra-platform/crudgen/internal/placement"
	"github.com/okra-platform/crudgen/internal/request"
	"github.com/okra-platform/crudgen/internal/schema"
)

// Data is what templates see. Field mappings are only resolved for kinds that
// render fields, so a bad tag never fails a kind that does not use it.
type Data struct {
	Naming naming.Convention
	Shared bool
	Fields []schema.FieldMapping
	Bulk   []BulkField

	resolver *placement.Resolver
}

// BulkField is a field that can be set on many records at once.
type BulkField struct {
	Name   string
	Label  string
	Values []BulkValue
}

// BulkValue is one choice of a bulk action menu.
type BulkValue struct {
	// Literal is the TypeScript literal sent to the API.
	Literal string
	// Text is the menu label.
	Text string
}

// NewData builds the template data for req. withFields resolves the field
// catalog; it fails with schema.ErrUnmappedFieldType on the first unmapped tag.
func NewData(req *request.Request, resolver *placement.Resolver, withFields bool) (*Data, error) {
	if resolver == nil {
		resolver = placement.Default
	}
	d := &Data{
		Naming:   req.Naming,
		Shared:   req.Naming.UseSharedFolder,
		resolver: resolver,
	}
	if !withFields {
		return d, nil
	}

	fields, err := req.Schema.Map()
	if err != nil {
		return nil, err
	}
	d.Fields = fields

	for _, name := range req.Naming.BulkActionFields {
		bf, err := bulkField(fields, name)
		if err != nil {
			return nil, err
		}
		d.Bulk = append(d.Bulk, bf)
	}
	return d, nil
}

// bulkField relies on Request.Validate having checked the field's type; a
// request that skipped validation still fails as an input error.
func bulkField(fields []schema.FieldMapping, name string) (BulkField, error) {
	for _, f := range fields {
		if f.Name != name {
			continue
		}
		bf := BulkField{Name: f.Name, Label: f.Label()}
		switch t := f.Type.(type) {
		case schema.Select:
			for _, o := range t.Options {
				lit, _ := json.Marshal(o)
				bf.Values = append(bf.Values, BulkValue{Literal: string(lit), Text: o})
			}
		case schema.Primitive:
			if t.Tag != schema.TagBoolean {
				return BulkField{}, fmt.Errorf("%w: %w: %q is %s", request.ErrInvalidRequest, request.ErrBulkFieldType, name, t.Tag)
			}
			bf.Values = []BulkValue{{Literal: "true", Text: "Yes"}, {Literal: "false", Text: "No"}}
		default:
			return BulkField{}, fmt.Errorf("%w: %w: %q is %s", request.ErrInvalidRequest, request.ErrBulkFieldType, name, f.Type)
		}
		return bf, nil
	}
	return BulkField{}, fmt.Errorf("%w: %w: %q", request.ErrInvalidRequest, request.ErrBulkField, name)
}

// Import returns the "@/..." specifier of another generated artifact, so
// generated files reference each other within the same folder family.
func (d *Data) Import(kind string) (string, error) {
	k, err := artifact.Parse(kind)
	if err != nil {
		return "", err
	}
	return d.resolver.ImportPath(k, d.Naming, d.Shared)
}

// URL returns the URL path served by a route or page artifact.
func (d *Data) URL(kind string) (string, error) {
	k, err := artifact.Parse(kind)
	if err != nil {
		return "", err
	}
	return d.resolver.URLPath(k, d.Naming, d.Shared)
}

// Widgets returns the distinct form widgets used by the fields, sorted.
func (d *Data) Widgets() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range d.Fields {
		if !seen[f.Widget] {
			seen[f.Widget] = true
			out = append(out, f.Widget)
		}
	}
	sort.Strings(out)
	return out
}

// SearchFields returns the names of the fields taking part in text search.
// It is never nil so it renders as a JSON array.
func (d *Data) SearchFields() []string {
	out := []string{}
	for _, f := range d.Fields {
		if f.Searchable {
			out = append(out, f.Name)
		}
	}
	return out
}

// SelectFields returns the SELECT fields in schema order.
func (d *Data) SelectFields() []schema.FieldMapping {
	var out []schema.FieldMapping
	for _, f := range d.Fields {
		if f.Options != nil {
			out = append(out, f)
		}
	}
	return out
}

// Breakdown returns the fields a summary groups counts by.
func (d *Data) Breakdown() []schema.FieldMapping {
	var out []schema.FieldMapping
	for _, f := range d.Fields {
		if _, ok := f.Type.(schema.Select); ok {
			out = append(out, f)
			continue
		}
		if p, ok := f.Type.(schema.Primitive); ok && p.Tag == schema.TagBoolean {
			out = append(out, f)
		}
	}
	return out
}

// HasBulk reports whether any bulk update action is configured.
func (d *Data) HasBulk() bool {
	return len(d.Bulk) > 0
}

// IsMapping reports whether err is a field mapping failure.
func IsMapping(err error) bool {
	return errors.Is(err, schema.ErrUnmappedFieldType)
}
