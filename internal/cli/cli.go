// Package cli provides the command-line interface for agentsync.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/config"
	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/report"
	"github.com/klauern/agentsync/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "agentsync",
		Usage:   "Distribute and validate framework agent definitions",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Emit logs as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a config file (default: ~/.agentsync/config.yaml)",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"C"},
				Value:   ".",
				Usage:   "Repository root that mapping paths and patterns are relative to",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return ctx, err
			}
			if err := configureColors(cmd, cfg); err != nil {
				return ctx, err
			}
			ctx = logging.NewContext(ctx, configureLogging(cmd, cfg))

			baseDir, err := filepath.Abs(cmd.String("dir"))
			if err != nil {
				return ctx, fmt.Errorf("invalid --dir: %w", err)
			}
			return withState(ctx, &state{cfg: cfg, baseDir: baseDir}), nil
		},
		Commands: []*cli.Command{
			versionCommand(),
			configCommand(),
			syncCommand(),
			validateCommand(),
			mappingsCommand(),
		},
	}
	return app.Run(ctx, args)
}

// state carries what the root command resolved to its subcommands.
type state struct {
	cfg     *config.Config
	baseDir string
}

type stateKey struct{}

func withState(ctx context.Context, s *state) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

// stateFrom returns the resolved state, falling back to defaults when a
// command runs without the root Before hook.
func stateFrom(ctx context.Context) *state {
	if s, ok := ctx.Value(stateKey{}).(*state); ok {
		return s
	}
	return &state{cfg: config.Default(), baseDir: "."}
}

// loadConfig reads the --config file or the user config file.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// configureColors sets up color output from the --no-color flag or the
// output.color setting.
func configureColors(cmd *cli.Command, cfg *config.Config) error {
	if cmd.Bool("no-color") {
		ui.DisableColors()
		return nil
	}
	return ui.SetColorMode(cfg.Output.Color)
}

// configureLogging sets the logging level from CLI flags, falling back to
// the logging section of the config.
func configureLogging(cmd *cli.Command, cfg *config.Config) *slog.Logger {
	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(cfg.Logging.Level)
	opts.JSON = cfg.Logging.JSON || cmd.Bool("log-json")

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") {
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))
	return logger
}

// outputFormat resolves --format against output.format.
func outputFormat(cmd *cli.Command, cfg *config.Config) (report.Format, error) {
	if cmd.IsSet("format") {
		return report.ParseFormat(cmd.String("format"))
	}
	return report.ParseFormat(cfg.Output.Format)
}
