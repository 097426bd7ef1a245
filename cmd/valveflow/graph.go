package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/valveflow/valve"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [input]",
		Short: "Print the parsed valve network",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings(cmd, args)
			if err != nil {
				return err
			}
			g, err := loadGraph(cfg, cmd.InOrStdin())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VALVE\tFLOW\tHOPS\tTUNNELS")
			var names []string
			for i, v := range g.Valves() {
				names = names[:0]
				for _, t := range v.Tunnels {
					names = append(names, g.ID(t))
				}
				hops := "-"
				if d := g.Distance(g.Entry(), i); d != valve.Unreachable {
					hops = fmt.Sprint(d)
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", v.ID, v.Flow, hops, strings.Join(names, ","))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "entry %s, %d valves, %d reachable\n", g.EntryID(), g.Len(), len(g.Reachable()))

			return nil
		},
	}
}
