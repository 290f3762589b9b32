package render

import (
	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/placement"
	"github.com/okra-platform/crudgen/internal/request"
)

// Options are shared by every generator built from a registry.
type Options struct {
	// Resolver computes cross-artifact import paths. Nil means placement.Default.
	Resolver *placement.Resolver
	// Overrides replace built-in templates per template name.
	Overrides OverrideSet
}

// Builtin renders a kind without overrides.
type Builtin func(data *Data) ([]byte, error)

// Generate renders kind for req: the request's template override when one is
// loaded, otherwise builtin. The output is checked for residual tokens.
func Generate(kind artifact.Kind, opts Options, req *request.Request, withFields bool, builtin Builtin) ([]byte, error) {
	data, err := NewData(req, opts.Resolver, withFields)
	if err != nil {
		return nil, err
	}

	var out []byte
	if o, ok := opts.Overrides.Lookup(req.TemplateName, kind); ok {
		out, err = o.Render(data)
	} else {
		out, err = builtin(data)
	}
	if err != nil {
		return nil, err
	}
	return Finish(kind, out)
}

// TemplateGenerator renders one embedded template.
type TemplateGenerator struct {
	kind       artifact.Kind
	engine     *Engine
	name       string
	withFields bool
	opts       Options
}

// NewTemplateGenerator returns a generator for kind backed by the named template.
func NewTemplateGenerator(kind artifact.Kind, engine *Engine, name string, withFields bool, opts Options) *TemplateGenerator {
	return &TemplateGenerator{kind: kind, engine: engine, name: name, withFields: withFields, opts: opts}
}

// Kind returns the artifact kind produced.
func (g *TemplateGenerator) Kind() artifact.Kind {
	return g.kind
}

// Generate renders the artifact content for req.
func (g *TemplateGenerator) Generate(req *request.Request) ([]byte, error) {
	return Generate(g.kind, g.opts, req, g.withFields, func(data *Data) ([]byte, error) {
		return g.engine.Render(g.name, data)
	})
}
