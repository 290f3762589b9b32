package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidField      = errors.New("invalid field")
	ErrUnmappedFieldType = errors.New("field type has no mapping")
	ErrReservedField     = errors.New("field name is reserved")
	ErrDuplicateField    = errors.New("duplicate field name")
	ErrInvalidDescriptor = errors.New("invalid schema descriptor")
)

// Tag is a primitive field type tag.
type Tag string

const (
	TagString      Tag = "STRING"
	TagEmail       Tag = "EMAIL"
	TagPassword    Tag = "PASSWORD"
	TagPasscode    Tag = "PASSCODE"
	TagIntNumber   Tag = "INTNUMBER"
	TagFloatNumber Tag = "FLOATNUMBER"
	TagBoolean     Tag = "BOOLEAN"
	TagDate        Tag = "DATE"
	TagTime        Tag = "TIME"
	TagDateRange   Tag = "DATERANGE"
	TagTimeRange   Tag = "TIMERANGE"
	TagColorPicker Tag = "COLORPICKER"
	TagPhone       Tag = "PHONE"
	TagURL         Tag = "URL"
	TagRichText    Tag = "RICHTEXT"
	TagDescription Tag = "DESCRIPTION"
	TagImage       Tag = "IMAGE"
	TagImages      Tag = "IMAGES"
	TagJSONValue   Tag = "JSONVALUE"

	// TagSelect is the parameterized tag, written "SELECT#a, b, c".
	TagSelect Tag = "SELECT"
)

// selectSeparator splits the SELECT tag from its option list.
const selectSeparator = "#"

// Tags is the closed set of primitive tags, in documentation order.
var Tags = []Tag{
	TagString, TagEmail, TagPassword, TagPasscode, TagIntNumber, TagFloatNumber,
	TagBoolean, TagDate, TagTime, TagDateRange, TagTimeRange, TagColorPicker,
	TagPhone, TagURL, TagRichText, TagDescription, TagImage, TagImages, TagJSONValue,
}

func knownTag(s string) (Tag, bool) {
	for _, t := range Tags {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// FieldType is one of Primitive, Select or Unknown.
type FieldType interface {
	// String returns the authored encoding of the type.
	String() string
	isFieldType()
}

// Primitive is a field type from the closed tag set.
type Primitive struct {
	Tag Tag
}

// Select is an enumerated field with a fixed option list.
type Select struct {
	Options []string
}

// Unknown is a tag outside the closed set. It parses, but every generator that
// needs a mapping for it fails with ErrUnmappedFieldType.
type Unknown struct {
	Raw string
}

func (Primitive) isFieldType() {}
func (Select) isFieldType()    {}
func (Unknown) isFieldType()   {}

func (p Primitive) String() string { return string(p.Tag) }

func (s Select) String() string {
	return string(TagSelect) + selectSeparator + strings.Join(s.Options, ", ")
}

func (u Unknown) String() string { return u.Raw }

// ParseFieldType parses an authored type such as "EMAIL" or "SELECT#S, M, L".
// Tags are matched case-insensitively. Options keep their order and duplicates.
func ParseFieldType(raw string) (FieldType, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty field type", ErrInvalidField)
	}

	head, payload, parameterized := strings.Cut(trimmed, selectSeparator)
	head = strings.ToUpper(strings.TrimSpace(head))

	if head == string(TagSelect) {
		if !parameterized {
			return nil, fmt.Errorf("%w: %q needs an option list, e.g. SELECT#A, B", ErrInvalidField, raw)
		}
		parts := strings.Split(payload, ",")
		options := make([]string, 0, len(parts))
		for _, p := range parts {
			opt := strings.TrimSpace(p)
			if opt == "" {
				return nil, fmt.Errorf("%w: %q has an empty option", ErrInvalidField, raw)
			}
			options = append(options, opt)
		}
		return Select{Options: options}, nil
	}

	if parameterized {
		return Unknown{Raw: trimmed}, nil
	}
	if tag, ok := knownTag(head); ok {
		return Primitive{Tag: tag}, nil
	}
	return Unknown{Raw: trimmed}, nil
}
