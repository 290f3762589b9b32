package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackWidget is used for tags without a dedicated widget.
const FallbackWidget = "InputField"

// Mapping is how one field type is represented in each generated layer.
type Mapping struct {
	// Storage is the Mongoose schema type expression.
	Storage string
	// TSType is the TypeScript type of the field in store types.
	TSType string
	// Widget is the form component id.
	Widget string
	// Validation is the zod expression used by forms.
	Validation string
	// Cell is the list-view cell renderer id.
	Cell string
	// Default is the TypeScript literal used as the empty form value.
	Default string
	// Integer adds an integer-validity constraint to numeric storage.
	Integer bool
	// Searchable fields take part in the controller's text search.
	Searchable bool
	// Options is set for SELECT fields only.
	Options []string
}

// OptionsLiteral renders the option list as a JSON/TypeScript array literal.
func (m Mapping) OptionsLiteral() string {
	if m.Options == nil {
		return "[]"
	}
	b, _ := json.Marshal(m.Options)
	return string(b)
}

var primitives = map[Tag]Mapping{
	TagString:      {Storage: "String", TSType: "string", Validation: "z.string()", Cell: "text", Default: "''", Searchable: true},
	TagEmail:       {Storage: "String", TSType: "string", Validation: "z.string().email()", Cell: "email", Default: "''", Searchable: true},
	TagPassword:    {Storage: "String", TSType: "string", Validation: "z.string().min(8)", Cell: "masked", Default: "''"},
	TagPasscode:    {Storage: "String", TSType: "string", Validation: `z.string().regex(/^\d{4,8}$/)`, Cell: "masked", Default: "''"},
	TagIntNumber:   {Storage: "Number", TSType: "number", Validation: "z.coerce.number().int()", Cell: "number", Default: "0", Integer: true},
	TagFloatNumber: {Storage: "Number", TSType: "number", Validation: "z.coerce.number()", Cell: "number", Default: "0"},
	TagBoolean:     {Storage: "Boolean", TSType: "boolean", Validation: "z.boolean()", Cell: "boolean", Default: "false"},
	TagDate:        {Storage: "Date", TSType: "string", Validation: "z.string().date()", Cell: "date", Default: "''"},
	TagTime:        {Storage: "String", TSType: "string", Validation: `z.string().regex(/^\d{2}:\d{2}$/)`, Cell: "text", Default: "''"},
	TagDateRange:   {Storage: "{ from: Date, to: Date }", TSType: "{ from: string; to: string }", Validation: "z.object({ from: z.coerce.date(), to: z.coerce.date() })", Cell: "dateRange", Default: "{ from: '', to: '' }"},
	TagTimeRange:   {Storage: "{ from: String, to: String }", TSType: "{ from: string; to: string }", Validation: "z.object({ from: z.string(), to: z.string() })", Cell: "timeRange", Default: "{ from: '', to: '' }"},
	TagColorPicker: {Storage: "String", TSType: "string", Validation: `z.string().regex(/^#[0-9a-fA-F]{6}$/)`, Cell: "color", Default: "'#000000'"},
	TagPhone:       {Storage: "String", TSType: "string", Validation: "z.string().min(7)", Cell: "text", Default: "''", Searchable: true},
	TagURL:         {Storage: "String", TSType: "string", Validation: "z.string().url()", Cell: "link", Default: "''", Searchable: true},
	TagRichText:    {Storage: "String", TSType: "string", Validation: "z.string()", Cell: "html", Default: "''"},
	TagDescription: {Storage: "String", TSType: "string", Validation: "z.string()", Cell: "text", Default: "''", Searchable: true},
	TagImage:       {Storage: "String", TSType: "string", Validation: "z.string().url()", Cell: "image", Default: "''"},
	TagImages:      {Storage: "[String]", TSType: "string[]", Validation: "z.array(z.string().url())", Cell: "images", Default: "[]"},
	TagJSONValue:   {Storage: "Schema.Types.Mixed", TSType: "Record<string, unknown>", Validation: "z.record(z.unknown())", Cell: "json", Default: "{}"},
}

// widgets is keyed by tag; tags missing here render with FallbackWidget.
var widgets = map[Tag]string{
	TagEmail:       "EmailField",
	TagPassword:    "PasswordField",
	TagPasscode:    "PasscodeField",
	TagIntNumber:   "NumberField",
	TagFloatNumber: "NumberField",
	TagBoolean:     "SwitchField",
	TagDate:        "DatePickerField",
	TagTime:        "TimePickerField",
	TagDateRange:   "DateRangeField",
	TagTimeRange:   "TimeRangeField",
	TagColorPicker: "ColorPickerField",
	TagPhone:       "PhoneField",
	TagURL:         "UrlField",
	TagRichText:    "RichTextEditorField",
	TagDescription: "TextareaField",
	TagImage:       "ImageUploadField",
	TagImages:      "MultiImageUploadField",
	TagJSONValue:   "JsonEditorField",
	TagSelect:      "SelectField",
}

// WidgetFor returns the widget id for tag, or FallbackWidget.
func WidgetFor(tag Tag) string {
	if w, ok := widgets[tag]; ok {
		return w
	}
	return FallbackWidget
}

// MappingFor returns the representation of ft in every generated layer.
func MappingFor(ft FieldType) (Mapping, error) {
	switch t := ft.(type) {
	case Primitive:
		m, ok := primitives[t.Tag]
		if !ok {
			return Mapping{}, fmt.Errorf("%w: %s", ErrUnmappedFieldType, t.Tag)
		}
		m.Widget = WidgetFor(t.Tag)
		return m, nil
	case Select:
		if len(t.Options) == 0 {
			return Mapping{}, fmt.Errorf("%w: SELECT without options", ErrUnmappedFieldType)
		}
		quoted := make([]string, len(t.Options))
		for i, o := range t.Options {
			b, _ := json.Marshal(o)
			quoted[i] = string(b)
		}
		return Mapping{
			Storage:    "String",
			TSType:     strings.Join(quoted, " | "),
			Widget:     WidgetFor(TagSelect),
			Validation: "z.enum([" + strings.Join(quoted, ", ") + "])",
			Cell:       "badge",
			Default:    quoted[0],
			Searchable: true,
			Options:    append([]string(nil), t.Options...),
		}, nil
	case Unknown:
		return Mapping{}, fmt.Errorf("%w: %q", ErrUnmappedFieldType, t.Raw)
	default:
		return Mapping{}, fmt.Errorf("%w: %v", ErrUnmappedFieldType, ft)
	}
}

// FieldMapping pairs a field with its mapping.
type FieldMapping struct {
	Field
	Mapping
}

// Map resolves the mapping of every field, failing on the first unmapped type.
func (d Descriptor) Map() ([]FieldMapping, error) {
	out := make([]FieldMapping, 0, len(d.Fields))
	for _, f := range d.Fields {
		m, err := MappingFor(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		out = append(out, FieldMapping{Field: f, Mapping: m})
	}
	return out, nil
}
