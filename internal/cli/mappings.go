package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/report"
)

func mappingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "mappings",
		Usage: "Show the effective framework mapping table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, yaml",
			},
			&cli.BoolFlag{
				Name:  "absolute",
				Usage: "Show paths resolved against --dir",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st := stateFrom(ctx)

			format, err := outputFormat(cmd, st.cfg)
			if err != nil {
				return err
			}

			table, err := st.cfg.MappingTable(st.baseDir)
			if err != nil {
				return err
			}
			if !cmd.Bool("absolute") {
				table = table.Relative(st.baseDir)
			}

			return report.Mappings(os.Stdout, table.Entries(), format)
		},
	}
}

