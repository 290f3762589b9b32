// Package api generates the server side of a feature: the Mongoose model,
// the CRUD controller and route handlers, and the summary endpoint.
package api

import (
	"encoding/json"
	"strings"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/codegen/render"
	"github.com/okra-platform/crudgen/internal/codegen/writer"
	"github.com/okra-platform/crudgen/internal/request"
	"github.com/okra-platform/crudgen/internal/schema"
)

// ModelGenerator writes the Mongoose schema and model of the entity.
type ModelGenerator struct {
	opts render.Options
}

// NewModelGenerator creates a model generator.
func NewModelGenerator(opts render.Options) *ModelGenerator {
	return &ModelGenerator{opts: opts}
}

// Kind returns artifact.KindModel.
func (g *ModelGenerator) Kind() artifact.Kind {
	return artifact.KindModel
}

// Generate writes the model file for req.
func (g *ModelGenerator) Generate(req *request.Request) ([]byte, error) {
	return render.Generate(artifact.KindModel, g.opts, req, true, g.write)
}

func (g *ModelGenerator) write(d *render.Data) ([]byte, error) {
	w := writer.NewWriter("  ")
	n := d.Naming
	schemaVar := n.CamelSingular + "Schema"

	w.WriteLine("import mongoose, { Schema } from 'mongoose';")
	w.BlankLine()
	w.WriteDocComment(n.TitleSingular + " documents. _id, createdAt and updatedAt are managed by Mongoose.")
	w.WriteLinef("const %s = new Schema(", schemaVar)
	w.Indent()
	w.WriteBlock("{", "},", func() {
		for _, f := range d.Fields {
			writeField(w, f)
		}
	})
	w.WriteLine("{ timestamps: true },")
	w.Dedent()
	w.WriteLine(");")

	search := d.SearchFields()
	if len(search) > 0 {
		w.BlankLine()
		w.WriteLinef("%s.index({ %s });", schemaVar, textIndex(search))
	}
	w.BlankLine()
	w.WriteDocComment("Fields matched by the q parameter of list queries. Empty means q is ignored.")
	w.WriteLinef("export const %sSearchFields: string[] = %s;", n.CamelSingular, jsonList(search))
	w.BlankLine()
	w.WriteLinef("const %s = mongoose.models.%s || mongoose.model('%s', %s);", n.PascalSingular, n.PascalSingular, n.PascalSingular, schemaVar)
	w.BlankLine()
	w.WriteLinef("export default %s;", n.PascalSingular)

	return w.Bytes(), nil
}

func writeField(w *writer.Writer, f schema.FieldMapping) {
	w.WriteBlock(f.Name+": {", "},", func() {
		w.WriteProperty("type", f.Storage)
		if f.Options != nil {
			w.WriteProperty("enum", f.OptionsLiteral())
		}
		if f.Integer {
			w.WriteBlock("validate: {", "},", func() {
				w.WriteProperty("validator", "Number.isInteger")
				w.WriteProperty("message", "'{VALUE} is not an integer value'")
			})
		}
		if p, ok := f.Type.(schema.Primitive); ok && p.Tag == schema.TagBoolean {
			w.WriteProperty("default", "false")
		}
		if f.Storage == "String" {
			w.WriteProperty("trim", "true")
		}
	})
}

func jsonList(items []string) string {
	b, _ := json.Marshal(items)
	return string(b)
}

func textIndex(fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": 'text'"
	}
	return strings.Join(parts, ", ")
}
