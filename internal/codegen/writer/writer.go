// Package writer builds indented source text line by line.
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates generated source with indentation tracking.
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
}

// NewWriter creates a writer that indents with indentString ("  " for TypeScript).
func NewWriter(indentString string) *Writer {
	return &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.updatePrefix()
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.updatePrefix()
	}
}

// Write writes s, indenting it if it starts a line.
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef is Write with formatting.
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes s followed by a newline.
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef is WriteLine with formatting.
func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine adds an empty line unless the output already ends with one.
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		w.Newline()
	}
}

// IndentLevel returns the current indentation level
func (w *Writer) IndentLevel() int {
	return w.indentLevel
}

// String returns the generated text.
func (w *Writer) String() string {
	return w.sb.String()
}

// Bytes returns the generated text as bytes.
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// WriteBlock writes opener, the indented content, then closer.
// Example: WriteBlock("const schema = new Schema({", "});", func() { ... })
func (w *Writer) WriteBlock(opener, closer string, content func()) {
	w.WriteLine(opener)
	w.Indent()
	content()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteProperty writes `key: value,` as one object-literal line.
func (w *Writer) WriteProperty(key, value string) {
	w.WriteLinef("%s: %s,", key, value)
}

// WriteComment writes a single-line comment
func (w *Writer) WriteComment(comment string) {
	w.WriteLinef("// %s", comment)
}

// WriteDocComment writes a JSDoc block; a single line collapses to /** ... */.
func (w *Writer) WriteDocComment(doc string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}
	lines := strings.Split(doc, "\n")
	if len(lines) == 1 {
		w.WriteLinef("/** %s */", lines[0])
		return
	}
	w.WriteLine("/**")
	for _, line := range lines {
		w.WriteLinef(" * %s", strings.TrimSpace(line))
	}
	w.WriteLine(" */")
}
