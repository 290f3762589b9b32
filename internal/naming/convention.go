// Package naming derives every casing and pluralization variant of an entity name
// that generated files refer to.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
)

var (
	ErrEmptyName     = errors.New("entity name cannot be empty")
	ErrInconsistent  = errors.New("naming convention variants disagree")
	ErrInvalidFormat = errors.New("naming convention variant is not a valid identifier")
)

var identifier = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// Convention is the set of name variants shared by every artifact of one entity.
// It is derived once per generation request and passed around by value.
type Convention struct {
	PascalSingular string `json:"pascalSingular"`
	CamelSingular  string `json:"camelSingular"`
	PascalPlural   string `json:"pascalPlural"`
	CamelPlural    string `json:"camelPlural"`

	// KebabPlural is the URL slug, e.g. "course-batches".
	KebabPlural string `json:"kebabPlural"`
	// SnakePlural is the route folder name, e.g. "course_batches".
	SnakePlural string `json:"snakePlural"`

	TitleSingular string `json:"titleSingular"`
	TitlePlural   string `json:"titlePlural"`

	UseSharedFolder  bool     `json:"useSharedFolder"`
	BulkActionFields []string `json:"bulkActionFields,omitempty"`
}

// Derive builds a Convention from a single human-entered name such as
// "Product", "course batch", "Media_s" or "statuses".
//
// A trailing lone "s" word marks the plural explicitly ("Media_s" -> Media/Medias).
// Otherwise the last word is singularized and then pluralized again, so singular
// and plural input yield the same result.
func Derive(raw string) (Convention, error) {
	words := splitWords(raw)
	if len(words) == 0 {
		return Convention{}, ErrEmptyName
	}

	last := len(words) - 1
	if words[last] == "s" && last > 0 {
		singular := words[:last]
		plural := append(append([]string{}, singular[:len(singular)-1]...), singular[len(singular)-1]+"s")
		return fromWords(singular, plural), nil
	}

	base := singularOf(words[last])
	singular := append(append([]string{}, words[:last]...), base)
	plural := append(append([]string{}, words[:last]...), pluralOf(base))

	return fromWords(singular, plural), nil
}

// MustDerive is like Derive but panics on error. Intended for tests and constants.
func MustDerive(raw string) Convention {
	c, err := Derive(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks that every variant is present, well formed and spelled the same.
func (c Convention) Validate() error {
	variants := []struct {
		name  string
		value string
		upper bool
	}{
		{"PascalSingular", c.PascalSingular, true},
		{"CamelSingular", c.CamelSingular, false},
		{"PascalPlural", c.PascalPlural, true},
		{"CamelPlural", c.CamelPlural, false},
	}
	for _, v := range variants {
		if v.value == "" {
			return fmt.Errorf("%w: %s is missing", ErrInvalidFormat, v.name)
		}
		if !identifier.MatchString(v.value) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidFormat, v.name, v.value)
		}
		first := v.value[:1]
		if v.upper && first != strings.ToUpper(first) {
			return fmt.Errorf("%w: %s=%q must start with an upper-case letter", ErrInvalidFormat, v.name, v.value)
		}
		if !v.upper && first != strings.ToLower(first) {
			return fmt.Errorf("%w: %s=%q must start with a lower-case letter", ErrInvalidFormat, v.name, v.value)
		}
	}

	if !strings.EqualFold(c.PascalSingular, c.CamelSingular) {
		return fmt.Errorf("%w: singular %q vs %q", ErrInconsistent, c.PascalSingular, c.CamelSingular)
	}
	if !strings.EqualFold(c.PascalPlural, c.CamelPlural) {
		return fmt.Errorf("%w: plural %q vs %q", ErrInconsistent, c.PascalPlural, c.CamelPlural)
	}
	if c.PascalSingular == c.PascalPlural {
		return fmt.Errorf("%w: singular and plural are both %q", ErrInconsistent, c.PascalSingular)
	}
	return nil
}

func fromWords(singular, plural []string) Convention {
	s := strings.Join(singular, " ")
	p := strings.Join(plural, " ")
	return Convention{
		PascalSingular: strcase.ToCamel(s),
		CamelSingular:  strcase.ToLowerCamel(s),
		PascalPlural:   strcase.ToCamel(p),
		CamelPlural:    strcase.ToLowerCamel(p),
		KebabPlural:    strcase.ToKebab(p),
		SnakePlural:    strcase.ToSnake(p),
		TitleSingular:  title(singular),
		TitlePlural:    title(plural),
	}
}

// singularNounsInS are singular nouns inflect would strip a final "s" from,
// mapped to their plural.
var singularNounsInS = map[string]string{
	"alias":  "aliases",
	"atlas":  "atlases",
	"bias":   "biases",
	"canvas": "canvases",
	"chaos":  "chaoses",
	"cosmos": "cosmoses",
	"gas":    "gases",
	"lens":   "lenses",
}

// singularOf treats words ending in -us, -ss and -is, and the nouns above, as
// already singular ("status", "address", "analysis", "gas"). Everything else
// goes through inflect, whose result is kept only if it pluralizes back to word.
func singularOf(word string) string {
	if _, ok := singularNounsInS[word]; ok {
		return word
	}
	for singular, plural := range singularNounsInS {
		if word == plural {
			return singular
		}
	}
	for _, suffix := range []string{"us", "ss", "is"} {
		if strings.HasSuffix(word, suffix) {
			return word
		}
	}
	if s := inflect.Singularize(word); s != "" && s != word && inflect.Pluralize(s) == word {
		return s
	}
	return word
}

// pluralOf never returns word itself: uncountable words get a regular suffix so
// that singular and plural identifiers stay distinct.
func pluralOf(word string) string {
	if p, ok := singularNounsInS[word]; ok {
		return p
	}
	if p := inflect.Pluralize(word); p != "" && p != word {
		return p
	}
	for _, suffix := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(word, suffix) {
			return word + "es"
		}
	}
	return word + "s"
}

// splitWords lower-cases raw and splits it on separators and case boundaries.
func splitWords(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return strings.Fields(strcase.ToDelimited(raw, ' '))
}

func title(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = UpperFirst(w)
	}
	return strings.Join(out, " ")
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// rederive recomputes the secondary variants after a Pascal form was overridden.
func (c *Convention) rederive() {
	singular := splitWords(c.PascalSingular)
	plural := splitWords(c.PascalPlural)
	c.KebabPlural = strcase.ToKebab(c.PascalPlural)
	c.SnakePlural = strcase.ToSnake(c.PascalPlural)
	if len(singular) > 0 {
		c.TitleSingular = title(singular)
	}
	if len(plural) > 0 {
		c.TitlePlural = title(plural)
	}
}
