// Package commands contains the CLI commands for the application
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/okra-platform/crudgen/internal/codegen"
	"github.com/okra-platform/crudgen/internal/codegen/render"
	"github.com/okra-platform/crudgen/internal/config"
	"github.com/okra-platform/crudgen/internal/emit"
	"github.com/okra-platform/crudgen/internal/orchestrator"
	"github.com/okra-platform/crudgen/internal/request"
)

type Flags struct {
	LogLevel   string
	ConfigPath string
}

type Controller struct {
	Flags  *Flags
	Logger zerolog.Logger
	Out    io.Writer
	In     io.Reader

	// loadConfig is replaced in tests.
	loadConfig func() (*config.Config, string, error)
}

// NewController creates a controller writing to stdout.
func NewController(flags *Flags, logger zerolog.Logger) *Controller {
	return &Controller{
		Flags:  flags,
		Logger: logger,
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

var (
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
	faint   = color.New(color.Faint)
)

// config loads the configuration from --config, or by searching upwards from
// the working directory. It returns the project root alongside.
func (c *Controller) config() (*config.Config, string, error) {
	if c.loadConfig != nil {
		return c.loadConfig()
	}
	if c.Flags != nil && c.Flags.ConfigPath != "" {
		path, err := filepath.Abs(c.Flags.ConfigPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
		}
		cfg, err := config.LoadConfigFromPath(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, filepath.Dir(path), nil
	}
	return config.LoadConfig()
}

func (c *Controller) decodeOptions(cfg *config.Config) []request.Option {
	return []request.Option{
		request.WithStrictFieldTypes(cfg.StrictFieldTypes),
		request.WithLogger(c.Logger),
	}
}

// newOrchestrator wires template overrides and decoding from cfg. A nil
// emitter gives an orchestrator that only generates.
func (c *Controller) newOrchestrator(cfg *config.Config, emitter *emit.Emitter) (*orchestrator.Orchestrator, error) {
	var genOpts codegen.Options
	if cfg.TemplatesDir != "" {
		overrides, err := render.LoadOverrides(os.DirFS(cfg.TemplatesDir))
		if err != nil {
			return nil, fmt.Errorf("failed to load templates from %s: %w", cfg.TemplatesDir, err)
		}
		c.Logger.Debug().Str("dir", cfg.TemplatesDir).Int("overrides", overrides.Len()).Msg("loaded template overrides")
		genOpts.Overrides = overrides
	}

	opts := []orchestrator.Option{
		orchestrator.WithGeneratorOptions(genOpts),
		orchestrator.WithDecodeOptions(c.decodeOptions(cfg)...),
		orchestrator.WithLogger(c.Logger),
	}
	if emitter != nil {
		opts = append(opts, orchestrator.WithEmitter(emitter))
	}
	return orchestrator.New(opts...), nil
}

func (c *Controller) printReports(reports []orchestrator.Report, outDir string) {
	for _, rep := range reports {
		if rep.Err != nil {
			failure.Fprintf(c.Out, "✗ %s", rep.Area)
			fmt.Fprintf(c.Out, ": %v\n", rep.Err)
			for _, p := range rep.Written {
				faint.Fprintf(c.Out, "    written before failure: %s\n", p)
			}
			continue
		}

		success.Fprintf(c.Out, "✓ %s", rep.Area)
		if rep.DryRun {
			fmt.Fprintf(c.Out, " (dry run, %d files)\n", len(rep.Written))
		} else {
			fmt.Fprintf(c.Out, " (%d files in %s)\n", len(rep.Written), outDir)
		}
		for _, p := range rep.Written {
			fmt.Fprintf(c.Out, "    %s\n", p)
		}
	}
}
