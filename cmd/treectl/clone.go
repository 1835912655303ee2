package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/treekit/trees"
)

var cloneSuffix string

func init() {
	cmd := newCloneCmd()
	cmd.Flags().StringVar(&cloneSuffix, "suffix", "'", "Appended to every payload of the clone")
	rootCmd.AddCommand(cmd)
}

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <file>",
		Short: "Deep clone a document and compare",
		Long: `The clone command copies the loaded structure into a new arena,
checks that the copy is equal to the source, then rewrites every payload of
the copy and shows that the source is untouched.

Example:
  treectl clone tree.yaml
  treectl clone tree.yaml --suffix _copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClone(args)
		},
	}
}

type cloneResult struct {
	Source   string `json:"source"`
	Clone    string `json:"clone"`
	Strategy string `json:"strategy"`
	Equal    bool   `json:"equal"`
}

func runClone(args []string) error {
	l, err := load(args[0])
	if err != nil {
		return err
	}
	defer l.Drop()

	var cp *loaded
	if l.forest != nil {
		cp = &loaded{forest: l.forest.DeepClone()}
	} else {
		cp = &loaded{tree: l.tree.DeepClone()}
	}
	defer cp.Drop()

	res := cloneResult{Strategy: cp.Strategy().String()}
	if l.forest != nil {
		res.Equal = trees.ForestEqual(l.forest, cp.forest)
		for v := range cp.forest.BFSMut().Visits {
			*v.Data += cloneSuffix
		}
	} else {
		res.Equal = trees.Equal(l.tree, cp.tree)
		for v := range cp.tree.BFSMut().Visits {
			*v.Data += cloneSuffix
		}
	}
	res.Source, res.Clone = l.String(), cp.String()

	if jsonOut {
		return printJSON(res)
	}
	printInfo("source:   %s\n", res.Source)
	printInfo("clone:    %s\n", res.Clone)
	printInfo("strategy: %s\n", res.Strategy)
	printInfo("equal:    %t\n", res.Equal)
	return nil
}
