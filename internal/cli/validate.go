package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/report"
	"github.com/klauern/agentsync/internal/validation"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check agent definitions against the document schema",
		UsageText: "agentsync validate [options] [pattern...]",
		Description: `Validate every document matching the given glob patterns (default:
   validation.patterns from config). Patterns support ** and are relative to
   --dir. The command prints every error and warning and exits non-zero when
   any error was found.

   Examples:
     agentsync validate
     agentsync validate 'agents/vue/*.md'
     agentsync validate --strict --format json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail on warnings as well as errors",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, yaml",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Number of documents validated concurrently",
			},
		},
		Action: runValidate,
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	st := stateFrom(ctx)

	format, err := outputFormat(cmd, st.cfg)
	if err != nil {
		return err
	}

	patterns := cmd.Args().Slice()
	if len(patterns) == 0 {
		patterns = st.cfg.Validation.Patterns
	}

	opts := validation.Options{BaseDir: st.baseDir, Workers: st.cfg.Validation.Workers}
	if cmd.IsSet("workers") {
		opts.Workers = cmd.Int("workers")
	}

	v := validation.New(st.cfg.Schema(), opts)
	if err := v.ValidateMany(ctx, patterns); err != nil {
		return err
	}

	strict := st.cfg.Validation.Strict || cmd.Bool("strict")
	outcome, err := report.Validation(os.Stdout, v.Report(), strict, format)
	if err != nil {
		return err
	}
	if outcome == validation.Fail {
		return validation.ErrValidationFailed
	}
	return nil
}
