package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPrintCmd())
}

func newPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print <file>",
		Short: "Print a document in bracket notation",
		Long: `The print command renders a tree as "0( 1( 2 3 ) 4 )" and a forest
as "( 1 2 )".

Example:
  treectl print tree.yaml
  treectl print forest.json --piled`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(args)
		},
	}
}

func runPrint(args []string) error {
	l, err := load(args[0])
	if err != nil {
		return err
	}
	defer l.Drop()

	if jsonOut {
		return printJSON(map[string]any{
			"text":     l.String(),
			"forest":   l.forest != nil,
			"strategy": l.Strategy().String(),
		})
	}
	printInfo("%s\n", l.String())
	return nil
}
