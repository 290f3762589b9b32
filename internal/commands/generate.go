package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okra-platform/crudgen/internal/emit"
	"github.com/okra-platform/crudgen/internal/orchestrator"
	"github.com/okra-platform/crudgen/internal/request"
)

// GenerateOptions are the flags of the generate command.
type GenerateOptions struct {
	Area string
	// RequestPath is a JSON request file, or "-" for stdin.
	RequestPath string
	// OutDir overrides output_dir from the configuration.
	OutDir string
	DryRun bool
	// Shared, when set, overrides use_generate_folder from the request.
	Shared *bool
}

// Generate runs one area (or all of them) for a request file.
func (c *Controller) Generate(ctx context.Context, opts GenerateOptions) error {
	area, err := orchestrator.ParseArea(opts.Area)
	if err != nil {
		return err
	}
	if opts.RequestPath == "" {
		return fmt.Errorf("a request file is required")
	}

	cfg, _, err := c.config()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	raw, err := c.readRequest(opts.RequestPath)
	if err != nil {
		return err
	}
	req, err := request.Decode(raw, c.decodeOptions(cfg)...)
	if err != nil {
		failure.Fprintf(c.Out, "✗ invalid request: %v\n", err)
		return err
	}
	if opts.Shared != nil {
		req = req.WithSharedFolder(*opts.Shared)
	}

	outDir := cfg.OutputDir
	if opts.OutDir != "" {
		outDir = opts.OutDir
	}
	emitter := emit.New(outDir, emit.WithLogger(c.Logger), emit.WithDryRun(opts.DryRun))
	orch, err := c.newOrchestrator(cfg, emitter)
	if err != nil {
		return err
	}

	reports, err := orch.RunRequest(ctx, area, req)
	c.printReports(reports, outDir)
	if err != nil {
		return fmt.Errorf("generation failed (%s error): %w", orchestrator.Classify(err), err)
	}
	return nil
}

func (c *Controller) readRequest(path string) ([]byte, error) {
	if path == "-" {
		raw, err := io.ReadAll(c.In)
		if err != nil {
			return nil, fmt.Errorf("failed to read request from stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	return raw, nil
}
