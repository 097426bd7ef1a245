package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd assembles the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "valveflow",
		Short: "valveflow finds the best pressure release in a valve network",
		Long: `valveflow reads valve definitions such as

  Valve AA has flow rate=0; tunnels lead to valves DD, II, BB

and searches for the most pressure one or two agents can release by opening
valves before time runs out.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "YAML configuration file")
	root.PersistentFlags().String("entry", "", "starting valve (default AA)")
	root.PersistentFlags().String("log-level", "", "debug|info|warn|error")
	root.PersistentFlags().String("log-format", "", "text|json")

	root.AddCommand(newSolveCmd(), newRunCmd(), newGraphCmd())

	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
