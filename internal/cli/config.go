package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/klauern/agentsync/internal/config"
	"github.com/klauern/agentsync/internal/ui"
)

func configCommand() *cli.Command {
	// bare "config" behaves like "config show"
	show := configShowCommand()
	return &cli.Command{
		Name:  "config",
		Usage: "Display or initialize configuration",
		Description: `Manage the agentsync configuration file.

   Settings are layered: built-in defaults, then ~/.agentsync/config.yaml
   (or --config), then AGENTSYNC_<SECTION>_<KEY> environment variables.`,
		Flags:  show.Flags,
		Action: show.Action,
		Commands: []*cli.Command{
			configShowCommand(),
			configPathCommand(),
			configInitCommand(),
		},
	}
}

func configShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the effective configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "yaml",
				Usage:   "Output format: yaml, json",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := stateFrom(ctx).cfg

			switch format := cmd.String("format"); format {
			case "yaml", "text":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to encode config: %w", err)
				}
				fmt.Println("# agentsync configuration")
				fmt.Printf("# file: %s\n", config.FilePath())
				fmt.Print(string(data))
				return nil
			case "json":
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(cfg)
			default:
				return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
			}
		},
	}
}

func configPathCommand() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Show where configuration is read from",
		Action: func(ctx context.Context, _ *cli.Command) error {
			st := stateFrom(ctx)

			status := "not found"
			if config.Exists() {
				status = "exists"
			}
			fmt.Println("Configuration paths:")
			fmt.Printf("  config file: %s (%s)\n", config.FilePath(), status)
			if st.cfg.MappingFile != "" {
				fmt.Printf("  mapping file: %s\n", st.cfg.MappingFile)
			}
			fmt.Printf("  base directory: %s\n", st.baseDir)
			return nil
		},
	}
}

func configInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a config file populated with the defaults",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := config.FilePath()
			if config.Exists() && !cmd.Bool("force") {
				return errors.New("config file already exists at " + path + " (use --force to overwrite)")
			}
			if err := config.Default().Save(); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			fmt.Println(ui.StatusSuccess("Created config file: " + path))
			return nil
		},
	}
}
