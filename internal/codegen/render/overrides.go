package render

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/naming"
)

var ErrOverride = errors.New("invalid template override")

const (
	extTemplate = ".tmpl"
	extSkeleton = ".skel"
)

// Override replaces the built-in template of one kind. A template override is
// text/template source; a skeleton override is plain text with sentinel tokens.
type Override struct {
	Kind     artifact.Kind
	Skeleton bool
	Source   string

	tmpl *template.Template
}

// Render produces the override's output for data.
func (o *Override) Render(data *Data) ([]byte, error) {
	if o.Skeleton {
		return []byte(naming.Substitute(o.Source, data.Naming)), nil
	}
	return execute(o.tmpl, string(o.Kind)+extTemplate, data)
}

// OverrideSet holds overrides by template name and kind. It is read fully at
// load time so generators never touch the filesystem.
type OverrideSet map[string]map[artifact.Kind]*Override

// Lookup returns the override for kind within the named template set.
func (s OverrideSet) Lookup(templateName string, kind artifact.Kind) (*Override, bool) {
	if s == nil {
		return nil, false
	}
	o, ok := s[templateName][kind]
	return o, ok
}

// Len returns the total number of overrides.
func (s OverrideSet) Len() int {
	n := 0
	for _, byKind := range s {
		n += len(byKind)
	}
	return n
}

// LoadOverrides reads <templateName>/<kind>.tmpl and <templateName>/<kind>.skel
// files from fsys. Files with other extensions are ignored; an unknown kind or a
// template that does not parse is an error.
func LoadOverrides(fsys fs.FS) (OverrideSet, error) {
	set := OverrideSet{}
	dirs, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOverride, err)
	}
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		files, err := fs.ReadDir(fsys, dir.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOverride, err)
		}
		for _, f := range files {
			ext := path.Ext(f.Name())
			if f.IsDir() || (ext != extTemplate && ext != extSkeleton) {
				continue
			}
			o, err := loadOverride(fsys, path.Join(dir.Name(), f.Name()))
			if err != nil {
				return nil, err
			}
			if set[dir.Name()] == nil {
				set[dir.Name()] = map[artifact.Kind]*Override{}
			}
			if _, dup := set[dir.Name()][o.Kind]; dup {
				return nil, fmt.Errorf("%w: %s has both %s and %s for %s", ErrOverride, dir.Name(), extTemplate, extSkeleton, o.Kind)
			}
			set[dir.Name()][o.Kind] = o
		}
	}
	return set, nil
}

func loadOverride(fsys fs.FS, name string) (*Override, error) {
	ext := path.Ext(name)
	kind, err := artifact.Parse(strings.TrimSuffix(path.Base(name), ext))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOverride, name, err)
	}
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOverride, err)
	}
	o := &Override{Kind: kind, Skeleton: ext == extSkeleton, Source: string(src)}
	if !o.Skeleton {
		o.tmpl, err = template.New(path.Base(name)).Funcs(Funcs()).Option("missingkey=error").Parse(o.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrOverride, name, err)
		}
	}
	return o, nil
}
