// Package request decodes and validates a generation request.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/okra-platform/crudgen/internal/naming"
	"github.com/okra-platform/crudgen/internal/schema"
)

var (
	ErrInvalidRequest = errors.New("invalid generation request")
	ErrMissingSchema  = errors.New("schema is required")
	ErrMissingNaming  = errors.New("namingConvention is required")
	ErrBulkField      = errors.New("bulk action field is not declared in the schema")
	ErrBulkFieldType  = errors.New("bulk action field must be SELECT or BOOLEAN")
)

// DefaultTemplateName is used when the request names no template set.
const DefaultTemplateName = "default"

// Request is a validated generation request. Generators treat it as read-only.
type Request struct {
	UID          string
	TemplateName string
	EntityName   string
	Schema       schema.Descriptor
	Naming       naming.Convention
}

// rawRequest is the wire form.
type rawRequest struct {
	UID              string                     `json:"uid"`
	TemplateName     string                     `json:"templateName"`
	EntityName       string                     `json:"entityName"`
	Schema           *schema.Descriptor         `json:"schema"`
	NamingConvention map[string]json.RawMessage `json:"namingConvention"`
}

// Naming convention keys besides the sentinel tokens.
const (
	keyUseGenerateFolder = "use_generate_folder"
	keyBulkAction        = "bulk_action"
)

type options struct {
	strictFieldTypes bool
	newUID           func() string
	logger           zerolog.Logger
}

// Option configures Decode.
type Option func(*options)

// WithStrictFieldTypes controls whether unknown field tags are kept (strict, the
// default) or replaced by STRING with a warning.
func WithStrictFieldTypes(strict bool) Option {
	return func(o *options) { o.strictFieldTypes = strict }
}

// WithUIDGenerator sets the function that fills a missing uid.
func WithUIDGenerator(fn func() string) Option {
	return func(o *options) { o.newUID = fn }
}

// WithLogger sets the logger used for non-fatal decoding warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Decode parses and validates a JSON request. The naming convention is derived
// here, exactly once; nothing downstream re-derives it.
func Decode(data []byte, opts ...Option) (*Request, error) {
	o := options{
		strictFieldTypes: true,
		newUID:           func() string { return uuid.NewString() },
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var raw rawRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if raw.Schema == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, ErrMissingSchema)
	}
	if raw.NamingConvention == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, ErrMissingNaming)
	}

	conv, err := decodeNaming(raw.EntityName, raw.NamingConvention)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	req := &Request{
		UID:          strings.TrimSpace(raw.UID),
		TemplateName: strings.TrimSpace(raw.TemplateName),
		EntityName:   strings.TrimSpace(raw.EntityName),
		Schema:       *raw.Schema,
		Naming:       conv,
	}
	if req.UID == "" {
		req.UID = o.newUID()
	}
	if req.TemplateName == "" {
		req.TemplateName = DefaultTemplateName
	}

	if unknown := req.Schema.Unknown(); len(unknown) > 0 && !o.strictFieldTypes {
		for _, f := range unknown {
			o.logger.Warn().
				Str("field", f.Name).
				Str("type", f.Type.String()).
				Msg("unknown field type, generating it as STRING")
		}
		req.Schema = req.Schema.WithUnknownAs(schema.Primitive{Tag: schema.TagString})
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeNaming(entityName string, fields map[string]json.RawMessage) (naming.Convention, error) {
	str := func(key string) (string, error) {
		v, ok := fields[key]
		if !ok {
			return "", nil
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", fmt.Errorf("namingConvention.%s must be a string", key)
		}
		return s, nil
	}

	var o naming.Overrides
	var err error
	if o.PascalSingular, err = str(naming.TokenPascalSingular); err != nil {
		return naming.Convention{}, err
	}
	if o.CamelSingular, err = str(naming.TokenCamelSingular); err != nil {
		return naming.Convention{}, err
	}
	if o.PascalPlural, err = str(naming.TokenPascalPlural); err != nil {
		return naming.Convention{}, err
	}
	if o.CamelPlural, err = str(naming.TokenCamelPlural); err != nil {
		return naming.Convention{}, err
	}
	if o.Empty() && strings.TrimSpace(entityName) == "" {
		return naming.Convention{}, fmt.Errorf("%w: no entity name or naming tokens given", naming.ErrEmptyName)
	}

	conv, err := naming.Resolve(entityName, o)
	if err != nil {
		return naming.Convention{}, err
	}

	if v, ok := fields[keyUseGenerateFolder]; ok {
		if err := json.Unmarshal(v, &conv.UseSharedFolder); err != nil {
			return naming.Convention{}, fmt.Errorf("namingConvention.%s must be a boolean", keyUseGenerateFolder)
		}
	}
	if v, ok := fields[keyBulkAction]; ok {
		if err := json.Unmarshal(v, &conv.BulkActionFields); err != nil {
			return naming.Convention{}, fmt.Errorf("namingConvention.%s must be a list of field names", keyBulkAction)
		}
	}
	return conv, nil
}

// Validate checks the request as a whole. Decode calls it; callers that build a
// Request by hand should call it before generating.
func (r *Request) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}
	if r.Schema.Len() == 0 {
		return fmt.Errorf("%w: %w: declare at least one field", ErrInvalidRequest, ErrMissingSchema)
	}
	if err := r.Naming.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	seen := make(map[string]bool, len(r.Naming.BulkActionFields))
	for _, name := range r.Naming.BulkActionFields {
		f, ok := r.Schema.Field(name)
		if !ok {
			return fmt.Errorf("%w: %w: %q", ErrInvalidRequest, ErrBulkField, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %w: %q listed twice", ErrInvalidRequest, ErrBulkField, name)
		}
		if !enumerable(f.Type) {
			return fmt.Errorf("%w: %w: %q is %s", ErrInvalidRequest, ErrBulkFieldType, name, f.Type)
		}
		seen[name] = true
	}
	return nil
}

// enumerable reports whether every value of ft can be listed in a bulk action menu.
func enumerable(ft schema.FieldType) bool {
	switch t := ft.(type) {
	case schema.Select:
		return true
	case schema.Primitive:
		return t.Tag == schema.TagBoolean
	default:
		return false
	}
}

// Clone returns a deep copy, so concurrent orchestrators never share slices.
func (r *Request) Clone() *Request {
	out := *r
	out.Schema = schema.Descriptor{Fields: make([]schema.Field, len(r.Schema.Fields))}
	for i, f := range r.Schema.Fields {
		if s, ok := f.Type.(schema.Select); ok {
			f.Type = schema.Select{Options: append([]string(nil), s.Options...)}
		}
		out.Schema.Fields[i] = f
	}
	out.Naming.BulkActionFields = append([]string(nil), r.Naming.BulkActionFields...)
	return &out
}

// WithSharedFolder returns a copy with the folder family overridden.
func (r *Request) WithSharedFolder(shared bool) *Request {
	out := r.Clone()
	out.Naming.UseSharedFolder = shared
	return out
}
