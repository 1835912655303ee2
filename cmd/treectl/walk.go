package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/treekit/trees"
)

func init() {
	rootCmd.AddCommand(newWalkCmd())
}

func newWalkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "walk <file>",
		Short: "List depth-first Begin/End/Leaf events",
		Long: `The walk command drives the depth-first cursor over a document and
prints every event, indented by depth.

Example:
  treectl walk tree.yaml
  treectl walk forest.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalk(args)
		},
	}
}

type walkEvent struct {
	Kind  string `json:"kind"`
	Data  string `json:"data"`
	Depth int    `json:"depth"`
}

// cursor is what TreeWalk and ForestWalk have in common.
type cursor interface {
	Get() (trees.WalkVisit[string], bool)
	Next() (trees.WalkVisit[string], bool)
	Depth() int
}

func runWalk(args []string) error {
	l, err := load(args[0])
	if err != nil {
		return err
	}

	var events []walkEvent
	if l.forest != nil {
		w := trees.NewForestWalk(l.forest)
		events = walkEvents(w)
		l.forest = w.Finish()
	} else {
		w := trees.NewTreeWalk(l.tree)
		events = walkEvents(w)
		l.tree = w.Finish()
	}
	l.Drop()

	if jsonOut {
		return printJSON(events)
	}
	for _, e := range events {
		printInfo("%s%s %s\n", strings.Repeat("  ", e.Depth-1), e.Kind, e.Data)
	}
	return nil
}

func walkEvents(c cursor) []walkEvent {
	var events []walkEvent
	for v, ok := c.Get(); ok; v, ok = c.Next() {
		events = append(events, walkEvent{Kind: v.Kind.String(), Data: v.Node.Data(), Depth: c.Depth()})
	}
	return events
}
