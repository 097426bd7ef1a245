package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/valveflow/search"
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [input]",
		Short: "Run one search and print the flow and plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings(cmd, args)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			g, err := loadGraph(cfg, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts, err := cfg.Search()
			if err != nil {
				return err
			}
			logger.Debug("solving",
				"valves", g.Len(), "entry", g.EntryID(),
				"agents", opts.Agents, "minutes", opts.Minutes, "seed", opts.Seed)

			res, err := search.Solve(g, opts)
			if err != nil {
				return err
			}
			logger.Debug("search finished",
				"nodes", res.Nodes, "pruned", res.Pruned, "bounded", res.Bounded)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "flow: %d\n", res.Flow)
			if len(res.Path) > 0 {
				fmt.Fprintf(out, "path: %s\n", res.Path)
			}

			return nil
		},
	}
	addSearchFlags(cmd.Flags())

	return cmd
}
