package cli

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/urfave/cli/v3"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Display version, build information and the effective agent setup",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st := stateFrom(ctx)
			fmt.Printf("agentsync version %s (commit %s, built %s, %s)\n", Version, Commit, BuildDate, runtime.Version())

			// an unusable mapping setup is reported here, not treated as a failure
			if table, err := st.cfg.MappingTable(st.baseDir); err != nil {
				fmt.Printf("  mappings:   unavailable (%v)\n", err)
			} else {
				fmt.Printf("  mappings:   %d\n", len(table.Entries()))
			}
			s := st.cfg.Schema()
			fmt.Printf("  categories: %s\n", strings.Join(s.Categories.Values(), ", "))
			fmt.Printf("  frameworks: %d known\n", len(s.Frameworks.Values()))
			return nil
		},
	}
}
