package naming

import (
	"sort"
	"strings"
)

// Sentinel tokens used as keys of the raw "namingConvention" object and as
// placeholders inside ".skel" template skeletons.
const (
	TokenPascalSingular = "Users_1_000___"
	TokenCamelSingular  = "users_1_000___"
	TokenPascalPlural   = "Users_2_000___"
	TokenCamelPlural    = "users_2_000___"
)

// Sentinels lists every sentinel token.
var Sentinels = []string{TokenPascalSingular, TokenCamelSingular, TokenPascalPlural, TokenCamelPlural}

// Overrides carries variants the author spelled out explicitly.
type Overrides struct {
	PascalSingular string
	CamelSingular  string
	PascalPlural   string
	CamelPlural    string
}

// Empty reports whether no variant was supplied.
func (o Overrides) Empty() bool {
	return o.PascalSingular == "" && o.CamelSingular == "" && o.PascalPlural == "" && o.CamelPlural == ""
}

// Resolve derives a Convention from seed, or from the first supplied override when
// seed is empty, then applies the overrides on top and validates the result.
func Resolve(seed string, o Overrides) (Convention, error) {
	if strings.TrimSpace(seed) == "" {
		for _, v := range []string{o.PascalSingular, o.CamelSingular, o.PascalPlural, o.CamelPlural} {
			if strings.TrimSpace(v) != "" {
				seed = v
				break
			}
		}
	}

	c, err := Derive(seed)
	if err != nil {
		return Convention{}, err
	}

	if v := strings.TrimSpace(o.PascalSingular); v != "" {
		c.PascalSingular = v
	}
	if v := strings.TrimSpace(o.CamelSingular); v != "" {
		c.CamelSingular = v
	}
	if v := strings.TrimSpace(o.PascalPlural); v != "" {
		c.PascalPlural = v
	}
	if v := strings.TrimSpace(o.CamelPlural); v != "" {
		c.CamelPlural = v
	}
	c.rederive()

	if err := c.Validate(); err != nil {
		return Convention{}, err
	}
	return c, nil
}

// Tokens maps each sentinel token to its value in c.
func (c Convention) Tokens() map[string]string {
	return map[string]string{
		TokenPascalSingular: c.PascalSingular,
		TokenCamelSingular:  c.CamelSingular,
		TokenPascalPlural:   c.PascalPlural,
		TokenCamelPlural:    c.CamelPlural,
	}
}

// Replacer substitutes a set of tokens in one pass. At any position the longest
// matching token wins, so a token that is a prefix of another never fires early.
type Replacer struct {
	r *strings.Replacer
}

// NewReplacer builds a Replacer from token -> value pairs. Empty tokens are ignored.
func NewReplacer(pairs map[string]string) *Replacer {
	olds := make([]string, 0, len(pairs))
	for old := range pairs {
		if old != "" {
			olds = append(olds, old)
		}
	}
	sort.Slice(olds, func(i, j int) bool {
		if len(olds[i]) != len(olds[j]) {
			return len(olds[i]) > len(olds[j])
		}
		return olds[i] < olds[j]
	})

	args := make([]string, 0, len(olds)*2)
	for _, old := range olds {
		args = append(args, old, pairs[old])
	}
	return &Replacer{r: strings.NewReplacer(args...)}
}

// Replace returns s with every token substituted.
func (r *Replacer) Replace(s string) string {
	return r.r.Replace(s)
}

// Substitute expands the sentinel tokens of a template skeleton with c.
func Substitute(skeleton string, c Convention) string {
	return NewReplacer(c.Tokens()).Replace(skeleton)
}

// Residual returns the sentinel tokens still present in text, in Sentinels order.
func Residual(text string) []string {
	var found []string
	for _, tok := range Sentinels {
		if strings.Contains(text, tok) {
			found = append(found, tok)
		}
	}
	return found
}
