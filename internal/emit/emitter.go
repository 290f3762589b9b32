// Package emit writes generated artifacts to disk. It is the only part of a
// generation run with side effects.
package emit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/okra-platform/crudgen/internal/artifact"
)

var (
	ErrEmit       = errors.New("failed to emit artifact")
	ErrUnsafePath = errors.New("artifact path escapes the output directory")
)

const tempSuffix = ".crudgen-tmp"

// FileSystem defines the file system operations the emitter needs
type FileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(path string, data []byte, perm os.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(path string) error
}

// OSFileSystem is the real file system.
type OSFileSystem struct{}

func (OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OSFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}

// Emitter writes artifacts below a root directory.
type Emitter struct {
	root   string
	fs     FileSystem
	logger zerolog.Logger
	dryRun bool
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithFileSystem replaces the OS file system, mainly for tests.
func WithFileSystem(fs FileSystem) Option {
	return func(e *Emitter) { e.fs = fs }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Emitter) { e.logger = logger.With().Str("component", "emit").Logger() }
}

// WithDryRun makes Emit report the paths it would write without writing.
func WithDryRun(dryRun bool) Option {
	return func(e *Emitter) { e.dryRun = dryRun }
}

// New creates an emitter rooted at root.
func New(root string, opts ...Option) *Emitter {
	e := &Emitter{
		root:   root,
		fs:     OSFileSystem{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the output directory.
func (e *Emitter) Root() string {
	return e.root
}

// Result lists what an Emit call wrote, as relative paths.
type Result struct {
	Written []string `json:"written"`
	DryRun  bool     `json:"dryRun,omitempty"`
}

// Emit writes artifacts in order. Each file is replaced atomically. The first
// failure stops the remaining writes; files already written stay in place and
// are listed in the returned Result.
func (e *Emitter) Emit(ctx context.Context, artifacts []artifact.Artifact) (Result, error) {
	res := Result{DryRun: e.dryRun}

	// Validate every path up front so a bad one never leaves a partial area.
	targets := make([]string, len(artifacts))
	for i, a := range artifacts {
		target, err := e.target(a.RelativePath)
		if err != nil {
			return res, fmt.Errorf("%w: %s: %w", ErrEmit, a.RelativePath, err)
		}
		targets[i] = target
	}

	for i, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("%w: %w", ErrEmit, err)
		}
		if !e.dryRun {
			if err := e.writeAtomic(targets[i], a.Content); err != nil {
				e.logger.Error().Err(err).Str("path", a.RelativePath).Msg("write failed, aborting remaining writes")
				return res, fmt.Errorf("%w: %s: %w", ErrEmit, a.RelativePath, err)
			}
		}
		e.logger.Debug().
			Str("kind", string(a.Kind)).
			Str("path", a.RelativePath).
			Int("bytes", len(a.Content)).
			Bool("dry_run", e.dryRun).
			Msg("emitted artifact")
		res.Written = append(res.Written, a.RelativePath)
	}
	return res, nil
}

func (e *Emitter) target(rel string) (string, error) {
	if rel == "" || path.IsAbs(rel) || strings.Contains(rel, `\`) {
		return "", ErrUnsafePath
	}
	clean := path.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrUnsafePath
	}
	return filepath.Join(e.root, filepath.FromSlash(clean)), nil
}

func (e *Emitter) writeAtomic(target string, content []byte) error {
	if err := e.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp := target + tempSuffix
	if err := e.fs.WriteFile(tmp, content, 0644); err != nil {
		_ = e.fs.Remove(tmp)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := e.fs.Rename(tmp, target); err != nil {
		_ = e.fs.Remove(tmp)
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}
