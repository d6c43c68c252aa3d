package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/progress"
	"github.com/klauern/agentsync/internal/report"
	"github.com/klauern/agentsync/internal/sync"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Mirror agent definitions into each framework's distribution directory",
		UsageText: "agentsync sync [options]",
		Description: `Copy every document from each mapping's source directory into its
   target directory. Targets are emptied first, so documents deleted from a
   source disappear from its target. Mappings whose source is missing are
   skipped.

   Examples:
     agentsync sync
     agentsync sync --dry-run
     agentsync sync --only vue --only react --verify`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Preview changes without modifying files",
			},
			&cli.StringSliceFlag{
				Name:  "only",
				Usage: "Sync only the named mapping entries (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "Count the documents in every target after syncing",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Sync mode: replace, incremental (default from config)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, yaml",
			},
		},
		Action: runSync,
	}
}

func runSync(ctx context.Context, cmd *cli.Command) error {
	st := stateFrom(ctx)

	format, err := outputFormat(cmd, st.cfg)
	if err != nil {
		return err
	}

	table, err := st.cfg.MappingTable(st.baseDir)
	if err != nil {
		return err
	}
	if only := cmd.StringSlice("only"); len(only) > 0 {
		if table, err = table.Filter(only...); err != nil {
			return err
		}
	}

	opts := st.cfg.SyncOptions()
	if cmd.IsSet("mode") {
		if opts.Mode, err = sync.ParseMode(cmd.String("mode")); err != nil {
			return err
		}
	}
	opts.DryRun = cmd.Bool("dry-run")

	bar := progress.New(progress.Options{Max: len(table), Description: "Syncing"})
	opts.OnEntry = func(e sync.EntryResult) {
		if err := bar.Step(e.Mapping.Name); err != nil {
			logging.Debug("progress update failed", logging.Err(err))
		}
	}

	engine := sync.New(table.Entries(), opts)
	res, syncErr := engine.SyncAll(ctx)
	if err := bar.Finish(); err != nil {
		logging.Debug("progress finish failed", logging.Err(err))
	}

	if res != nil {
		if err := report.Sync(os.Stdout, res, format); err != nil {
			return err
		}
	}
	if syncErr != nil {
		return syncErr
	}

	if cmd.Bool("verify") || st.cfg.Sync.Verify {
		if format == report.Text {
			fmt.Println()
		}
		return report.Verify(os.Stdout, engine.VerifyTargets(), format)
	}
	return nil
}
