// Package orchestrator runs generation areas: it decodes a request once,
// generates every artifact of the area, and only then hands them to the emitter.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/crudgen/internal/artifact"
	"github.com/okra-platform/crudgen/internal/codegen"
	"github.com/okra-platform/crudgen/internal/emit"
	"github.com/okra-platform/crudgen/internal/placement"
	"github.com/okra-platform/crudgen/internal/request"
)

// Orchestrator generates and emits areas.
type Orchestrator struct {
	registry   *codegen.Registry
	genOpts    codegen.Options
	emitter    *emit.Emitter
	decodeOpts []request.Option
	logger     zerolog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRegistry replaces codegen.DefaultRegistry.
func WithRegistry(r *codegen.Registry) Option {
	return func(o *Orchestrator) { o.registry = r }
}

// WithGeneratorOptions sets the options every generator is built with.
func WithGeneratorOptions(opts codegen.Options) Option {
	return func(o *Orchestrator) { o.genOpts = opts }
}

// WithEmitter sets where artifacts are written. Without one, runs only generate.
func WithEmitter(e *emit.Emitter) Option {
	return func(o *Orchestrator) { o.emitter = e }
}

// WithDecodeOptions sets the options used to decode raw requests.
func WithDecodeOptions(opts ...request.Option) Option {
	return func(o *Orchestrator) { o.decodeOpts = opts }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger.With().Str("component", "orchestrator").Logger() }
}

// New creates an orchestrator.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: codegen.DefaultRegistry,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.genOpts.Resolver == nil {
		o.genOpts.Resolver = placement.Default
	}
	return o
}

// Report is the outcome of one area.
type Report struct {
	Area      Area                `json:"area"`
	Artifacts []artifact.Artifact `json:"artifacts"`
	Written   []string            `json:"written"`
	DryRun    bool                `json:"dryRun,omitempty"`
	Err       error               `json:"-"`
}

// Generate renders every artifact of area for req without touching the file
// system. The request is validated before any template runs, and any failure
// returns no artifacts at all.
func (o *Orchestrator) Generate(area Area, req *request.Request) ([]artifact.Artifact, error) {
	if area == AreaAll {
		return nil, fmt.Errorf("%w: generate areas one at a time or use RunAll", ErrUnknownArea)
	}
	if _, ok := areaKinds[area]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArea, area)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", area, err)
	}

	kinds := area.Kinds()
	out := make([]artifact.Artifact, 0, len(kinds))
	for _, kind := range kinds {
		gen, err := o.registry.Get(kind, o.genOpts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", area, err)
		}
		content, err := gen.Generate(req)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", area, kind, err)
		}
		rel, err := o.genOpts.Resolver.Resolve(kind, req.Naming, req.Naming.UseSharedFolder)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", area, kind, err)
		}
		o.logger.Debug().Str("area", string(area)).Str("kind", string(kind)).Str("path", rel).Msg("generated artifact")
		out = append(out, artifact.Artifact{Kind: kind, RelativePath: rel, Content: content})
	}
	return out, nil
}

// Run decodes raw and runs area; AreaAll runs every area concurrently.
// The returned reports are in Areas order.
func (o *Orchestrator) Run(ctx context.Context, area Area, raw []byte) ([]Report, error) {
	req, err := request.Decode(raw, o.decodeOpts...)
	if err != nil {
		return nil, err
	}
	return o.RunRequest(ctx, area, req)
}

// RunRequest runs area for an already decoded request.
func (o *Orchestrator) RunRequest(ctx context.Context, area Area, req *request.Request) ([]Report, error) {
	if area == AreaAll {
		return o.RunAll(ctx, req)
	}
	rep := o.runArea(ctx, area, req)
	return []Report{rep}, rep.Err
}

// RunAll runs every area in parallel, each on its own copy of req. A failing
// area does not stop the others, and areas that completed are not rolled back.
func (o *Orchestrator) RunAll(ctx context.Context, req *request.Request) ([]Report, error) {
	reports := make([]Report, len(Areas))

	// Each area reports its own error; the group does not cancel siblings.
	var g errgroup.Group
	for i, area := range Areas {
		areaReq := req.Clone()
		g.Go(func() error {
			reports[i] = o.runArea(ctx, area, areaReq)
			return reports[i].Err
		})
	}
	if err := g.Wait(); err == nil {
		return reports, nil
	}

	var errs []error
	for _, rep := range reports {
		if rep.Err != nil {
			errs = append(errs, rep.Err)
		}
	}
	return reports, errors.Join(errs...)
}

func (o *Orchestrator) runArea(ctx context.Context, area Area, req *request.Request) Report {
	start := time.Now()
	rep := Report{Area: area}
	logger := o.logger.With().Str("area", string(area)).Str("uid", req.UID).Logger()

	artifacts, err := o.Generate(area, req)
	if err != nil {
		logger.Error().Err(err).Msg("generation failed, nothing written")
		rep.Err = err
		return rep
	}
	rep.Artifacts = artifacts

	if o.emitter != nil {
		res, err := o.emitter.Emit(ctx, artifacts)
		rep.Written = res.Written
		rep.DryRun = res.DryRun
		if err != nil {
			logger.Error().Err(err).Int("written", len(res.Written)).Msg("emission failed")
			rep.Err = fmt.Errorf("%s: %w", area, err)
			return rep
		}
	}

	logger.Info().
		Int("artifacts", len(artifacts)).
		Int("written", len(rep.Written)).
		Dur("duration", time.Since(start)).
		Msg("area generated")
	return rep
}
