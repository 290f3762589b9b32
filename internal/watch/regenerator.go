package watch

import (
	"context"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/okra-platform/crudgen/internal/orchestrator"
)

// Runner runs one generation area for a raw request.
type Runner interface {
	Run(ctx context.Context, area orchestrator.Area, raw []byte) ([]orchestrator.Report, error)
}

// Regenerator reruns an area whenever a request file is written.
type Regenerator struct {
	runner   Runner
	area     orchestrator.Area
	logger   zerolog.Logger
	readFile func(string) ([]byte, error)
}

// NewRegenerator creates a regenerator for area.
func NewRegenerator(runner Runner, area orchestrator.Area, logger zerolog.Logger) *Regenerator {
	return &Regenerator{
		runner:   runner,
		area:     area,
		logger:   logger.With().Str("component", "watch").Logger(),
		readFile: os.ReadFile,
	}
}

// HandleChange regenerates for a create or write of path. It never returns an
// error: a bad request file is logged and watching continues.
func (r *Regenerator) HandleChange(ctx context.Context, path string, op fsnotify.Op) {
	if !op.Has(fsnotify.Write) && !op.Has(fsnotify.Create) {
		return
	}

	raw, err := r.readFile(path)
	if err != nil {
		r.logger.Warn().Err(err).Str("file", path).Msg("failed to read request file")
		return
	}

	r.logger.Info().Str("file", path).Str("area", string(r.area)).Msg("request changed, regenerating")
	reports, err := r.runner.Run(ctx, r.area, raw)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("file", path).
			Str("class", orchestrator.Classify(err).String()).
			Msg("regeneration failed")
		return
	}

	written := 0
	for _, rep := range reports {
		written += len(rep.Written)
	}
	r.logger.Info().Str("file", path).Int("written", written).Msg("regeneration complete")
}
