package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/crudgen/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func areaFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "area",
		Aliases: []string{"a"},
		Usage:   "area to generate (api, redux, store, client-view, ssr-view, all)",
		Value:   "all",
	}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "output directory, overrides output_dir",
	}
}

func main() {
	flags := &commands.Flags{}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	ctrl := commands.NewController(flags, log.Logger)

	app := &cli.Command{
		Name:    "crudgen",
		Usage:   "Generate a complete CRUD feature from a schema and a naming convention",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("CRUDGEN_LOG_LEVEL"),
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to crudgen.json or crudgen.yaml; searched upwards by default",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			flags.LogLevel = level.String()
			flags.ConfigPath = c.String("config")
			ctrl.Logger = log.Logger

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate an area from a request file",
				Flags: []cli.Flag{
					areaFlag(),
					&cli.StringFlag{
						Name:     "request",
						Aliases:  []string{"r"},
						Usage:    "request JSON file, or - for stdin",
						Required: true,
					},
					outFlag(),
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "list the files that would be written",
					},
					&cli.BoolFlag{
						Name:  "shared",
						Usage: "override use_generate_folder from the request",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					opts := commands.GenerateOptions{
						Area:        c.String("area"),
						RequestPath: c.String("request"),
						OutDir:      c.String("out"),
						DryRun:      c.Bool("dry-run"),
					}
					if c.IsSet("shared") {
						shared := c.Bool("shared")
						opts.Shared = &shared
					}
					return ctrl.Generate(ctx, opts)
				},
			},
			{
				Name:  "init",
				Usage: "Author a new request file interactively",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate whenever a request file changes",
				Flags: []cli.Flag{
					areaFlag(),
					outFlag(),
					&cli.StringFlag{
						Name:  "dir",
						Usage: "directory to watch, defaults to the project root",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx, commands.WatchOptions{
						Area:   c.String("area"),
						Dir:    c.String("dir"),
						OutDir: c.String("out"),
					})
				},
			},
			{
				Name:  "serve",
				Usage: "Serve the generation API over HTTP",
				Flags: []cli.Flag{
					outFlag(),
					&cli.IntFlag{
						Name:  "port",
						Usage: "port to listen on, overrides serve.port",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Serve(ctx, commands.ServeOptions{
						Port:   int(c.Int("port")),
						OutDir: c.String("out"),
					})
				},
			},
			{
				Name:  "kinds",
				Usage: "List artifact kinds, field tags and areas",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "entity",
						Usage: "entity used for the example paths",
						Value: commands.DefaultKindsEntity,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Kinds(c.String("entity"))
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run crudgen")
	}
}
