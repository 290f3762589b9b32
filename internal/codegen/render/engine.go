// Package render turns a generation request into file content. Templates use
// named placeholders, so the order in which values are filled in never matters.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/naming"
)

var (
	ErrResidualToken = errors.New("generated output still contains a naming token")
	ErrTemplate      = errors.New("template error")
)

// Funcs are available to every template, embedded or override.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"quote": func(s string) string {
			b, _ := json.Marshal(s)
			return string(b)
		},
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
		"join":   strings.Join,
		"pascal": strcase.ToCamel,
		"camel":  strcase.ToLowerCamel,
		"kebab":  strcase.ToKebab,
		"last": func(i, n int) bool {
			return i == n-1
		},
	}
}

// Engine renders the embedded templates of one generator package.
type Engine struct {
	root *template.Template
}

// NewEngine parses every template matching patterns in fsys.
func NewEngine(fsys fs.FS, patterns ...string) (*Engine, error) {
	root, err := template.New("").Funcs(Funcs()).Option("missingkey=error").ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	return &Engine{root: root}, nil
}

// MustEngine is NewEngine for package-level embedded templates.
func MustEngine(fsys fs.FS, patterns ...string) *Engine {
	e, err := NewEngine(fsys, patterns...)
	if err != nil {
		panic(err)
	}
	return e
}

// Render executes the named template.
func (e *Engine) Render(name string, data *Data) ([]byte, error) {
	return execute(e.root.Lookup(name), name, data)
}

// Has reports whether the engine knows the named template.
func (e *Engine) Has(name string) bool {
	return e.root.Lookup(name) != nil
}

func execute(t *template.Template, name string, data *Data) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: template %q not found", ErrTemplate, name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// Errors returned by Data methods (mapping, placement) stay matchable.
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, name, unwrapExec(err))
	}
	return buf.Bytes(), nil
}

func unwrapExec(err error) error {
	var execErr template.ExecError
	if errors.As(err, &execErr) && execErr.Err != nil {
		return execErr.Err
	}
	return err
}

// Finish rejects output that still carries a sentinel token.
func Finish(kind artifact.Kind, out []byte) ([]byte, error) {
	if found := naming.Residual(string(out)); len(found) > 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrResidualToken, strings.Join(found, ", "), kind)
	}
	return out, nil
}
