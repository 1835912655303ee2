package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Show shape statistics",
		Long: `The stats command counts nodes, leaves and branches and reports the
deepest level, the widest node and how many nodes each storage strategy holds.

Example:
  treectl stats tree.yaml
  treectl stats tree.yaml --piled --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
}

func runStats(args []string) error {
	l, err := load(args[0])
	if err != nil {
		return err
	}
	defer l.Drop()

	s := l.Stats()
	if jsonOut {
		return printJSON(s)
	}

	printInfo("Nodes:      %d\n", s.Nodes)
	printInfo("Leaves:     %d\n", s.Leaves)
	printInfo("Branches:   %d\n", s.Branches)
	printInfo("Max depth:  %d\n", s.MaxDepth)
	printInfo("Max degree: %d\n", s.MaxDegree)
	printInfo("Scattered:  %d\n", s.Scattered)
	printInfo("Piled:      %d\n", s.Piled)
	return nil
}
