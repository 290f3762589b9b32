package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okra-platform/crudgen/internal/emit"
	"github.com/okra-platform/crudgen/internal/serve"
)

// ServeOptions contains options for the serve command
type ServeOptions struct {
	Port   int
	OutDir string
}

// Serve exposes generation over HTTP until interrupted.
func (c *Controller) Serve(ctx context.Context, opts ServeOptions) error {
	cfg, _, err := c.config()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Port > 0 {
		cfg.Serve.Port = opts.Port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	outDir := cfg.OutputDir
	if opts.OutDir != "" {
		outDir = opts.OutDir
	}

	live, err := c.newOrchestrator(cfg, emit.New(outDir, emit.WithLogger(c.Logger)))
	if err != nil {
		return err
	}
	dryRun, err := c.newOrchestrator(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Serve.Addr()
	success.Fprintf(c.Out, "🚀 Serving on http://%s/api/v1", addr)
	fmt.Fprintf(c.Out, " (writing into %s)\n", outDir)

	if err := serve.NewServer(live, dryRun, c.Logger).Start(ctx, addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	fmt.Fprintln(c.Out, "Serve shutdown complete")
	return nil
}
