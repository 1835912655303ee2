package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/treekit/trees"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Verify size bookkeeping and the level-order round trip",
		Long: `The check command verifies every node's degree and descendant count,
then linearizes the document in level order, rebuilds it with validation and
compares the result with the loaded structure.

Example:
  treectl check tree.yaml
  treectl check big.yaml --limits strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
}

type checkResult struct {
	Sizes     string `json:"sizes"`
	RoundTrip string `json:"round_trip"`
}

var errCheckFailed = errors.New("check failed")

func runCheck(args []string) error {
	limits, err := parseLimits(limitsName)
	if err != nil {
		return err
	}
	doc, err := loadDocument(args[0], limits)
	if err != nil {
		return err
	}
	l, err := buildDocument(doc, piled, limits)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	defer l.Drop()

	res := checkResult{Sizes: "ok", RoundTrip: "ok"}
	if err := l.Check(); err != nil {
		res.Sizes = err.Error()
	}

	opts := trees.DecodeOptions{Limits: limits}
	visits := docVisits(doc.roots)
	if l.forest != nil {
		degree, nodes := doc.size()
		b := trees.BFSForest[string]{Visits: visits.All(), Size: trees.Size{Degree: degree, Descendants: nodes}}
		rebuilt, err := trees.DecodeForest(b, opts)
		switch {
		case err != nil:
			res.RoundTrip = err.Error()
		case !trees.ForestEqual(l.forest, rebuilt):
			res.RoundTrip = "rebuilt forest differs"
		}
		if rebuilt != nil {
			rebuilt.Drop()
		}
	} else {
		b := trees.BFSTree[string]{Visits: visits.All(), Size: trees.Size{Degree: 1, Descendants: doc.roots[0].desc}}
		rebuilt, err := trees.DecodeTree(b, opts)
		switch {
		case err != nil:
			res.RoundTrip = err.Error()
		case !trees.Equal(l.tree, rebuilt):
			res.RoundTrip = "rebuilt tree differs"
		}
		if rebuilt != nil {
			rebuilt.Drop()
		}
	}

	if jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printInfo("sizes:      %s\n", res.Sizes)
		printInfo("round trip: %s\n", res.RoundTrip)
	}
	if res.Sizes != "ok" || res.RoundTrip != "ok" {
		return errCheckFailed
	}
	return nil
}
