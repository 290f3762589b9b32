package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/okra-platform/crudgen/internal/emit"
	"github.com/okra-platform/crudgen/internal/orchestrator"
	"github.com/okra-platform/crudgen/internal/watch"
)

// WatchOptions are the flags of the watch command.
type WatchOptions struct {
	Area string
	// Dir is watched recursively. Defaults to the project root.
	Dir    string
	OutDir string
}

// Watch regenerates whenever a request file matching watch.patterns changes.
func (c *Controller) Watch(ctx context.Context, opts WatchOptions) error {
	if opts.Area == "" {
		opts.Area = string(orchestrator.AreaAll)
	}
	area, err := orchestrator.ParseArea(opts.Area)
	if err != nil {
		return err
	}

	cfg, root, err := c.config()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dir := opts.Dir
	if dir == "" {
		dir = root
	}
	outDir := cfg.OutputDir
	if opts.OutDir != "" {
		outDir = opts.OutDir
	}

	orch, err := c.newOrchestrator(cfg, emit.New(outDir, emit.WithLogger(c.Logger)))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	regen := watch.NewRegenerator(orch, area, c.Logger)
	fw, err := watch.NewFileWatcher(cfg.Watch.Patterns, cfg.Watch.Exclude, func(path string, op fsnotify.Op) {
		regen.HandleChange(ctx, path, op)
	}, c.Logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.AddDirectory(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	success.Fprintf(c.Out, "👀 Watching %s", dir)
	fmt.Fprintf(c.Out, " for %v, generating %s into %s\n", cfg.Watch.Patterns, area, outDir)

	if err := fw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintln(c.Out, "Watch stopped")
	return nil
}
