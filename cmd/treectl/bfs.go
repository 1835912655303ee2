package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/treekit/trees"
)

func init() {
	rootCmd.AddCommand(newBFSCmd())
}

func newBFSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bfs <file>",
		Short: "List level-order visits with their sizes",
		Long: `The bfs command prints one line per node in level order with the
node's degree and descendant count, the form trees are rebuilt from.

Example:
  treectl bfs tree.yaml
  treectl bfs tree.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBFS(args)
		},
	}
}

type visitJSON struct {
	Data        string `json:"data"`
	Degree      int    `json:"degree"`
	Descendants int    `json:"descendants"`
}

func runBFS(args []string) error {
	l, err := load(args[0])
	if err != nil {
		return err
	}
	defer l.Drop()

	var (
		visits []trees.Visit[string]
		size   trees.Size
	)
	if l.forest != nil {
		b := l.forest.BFS()
		visits, size = b.Collect(), b.Size
	} else {
		b := l.tree.BFS()
		visits, size = b.Collect(), b.Size
	}

	if jsonOut {
		out := make([]visitJSON, len(visits))
		for i, v := range visits {
			out[i] = visitJSON{Data: v.Data, Degree: v.Size.Degree, Descendants: v.Size.Descendants}
		}
		return printJSON(map[string]any{
			"degree":      size.Degree,
			"descendants": size.Descendants,
			"visits":      out,
		})
	}

	printInfo("size: degree=%d descendants=%d\n", size.Degree, size.Descendants)
	for _, v := range visits {
		printInfo("%s\t%d\t%d\n", v.Data, v.Size.Degree, v.Size.Descendants)
	}
	return nil
}
