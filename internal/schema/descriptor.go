// Package schema models the authored field-name to field-type mapping of an entity
// and maps each field type to its storage, validation and UI representation.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/okra-platform/crudgen/internal/naming"
)

// Reserved fields are implicit in every generated model and view.
const (
	FieldID        = "_id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// ReservedFields lists the implicit fields in the order views render them.
var ReservedFields = []string{FieldID, FieldCreatedAt, FieldUpdatedAt}

var fieldName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Field is one authored field.
type Field struct {
	Name string
	Type FieldType
}

// Label is the human readable form of the field name, e.g. "inStock" -> "In Stock".
func (f Field) Label() string {
	words := strings.Fields(strcase.ToDelimited(f.Name, ' '))
	for i, w := range words {
		words[i] = naming.UpperFirst(w)
	}
	return strings.Join(words, " ")
}

// Descriptor is the ordered list of authored fields. JSON object order is kept.
type Descriptor struct {
	Fields []Field
}

// Field returns the field named name.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Len returns the number of authored fields.
func (d Descriptor) Len() int {
	return len(d.Fields)
}

// Unknown returns the fields whose type is outside the closed tag set.
func (d Descriptor) Unknown() []Field {
	var out []Field
	for _, f := range d.Fields {
		if _, ok := f.Type.(Unknown); ok {
			out = append(out, f)
		}
	}
	return out
}

// WithUnknownAs returns a copy where every Unknown type is replaced by fallback.
func (d Descriptor) WithUnknownAs(fallback FieldType) Descriptor {
	out := Descriptor{Fields: make([]Field, len(d.Fields))}
	for i, f := range d.Fields {
		if _, ok := f.Type.(Unknown); ok {
			f.Type = fallback
		}
		out.Fields[i] = f
	}
	return out
}

// Add appends a field after checking its name.
func (d *Descriptor) Add(name string, ft FieldType) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, exists := d.Field(name); exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, name)
	}
	d.Fields = append(d.Fields, Field{Name: name, Type: ft})
	return nil
}

func checkName(name string) error {
	for _, r := range ReservedFields {
		if name == r {
			return fmt.Errorf("%w: %q is implicit in every entity", ErrReservedField, name)
		}
	}
	if !fieldName.MatchString(name) {
		return fmt.Errorf("%w: field name %q must be an identifier", ErrInvalidField, name)
	}
	return nil
}

// UnmarshalJSON decodes {"field": "TYPE", ...} keeping the authored field order.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: schema must be a JSON object", ErrInvalidDescriptor)
	}

	var out Descriptor
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
		}
		name := keyTok.(string)

		var raw string
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: type of field %q must be a string", ErrInvalidDescriptor, name)
		}

		ft, err := ParseFieldType(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if err := out.Add(name, ft); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	*d = out
	return nil
}

// MarshalJSON encodes the descriptor back to its authored object form.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(f.Name)
		v, _ := json.Marshal(f.Type.String())
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
