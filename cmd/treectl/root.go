package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/treekit/internal/logger"
	"github.com/joshuapare/treekit/pkg/types"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	piled      bool
	limitsName string
	logDir     string
)

var rootCmd = &cobra.Command{
	Use:   "treectl",
	Short: "Inspect tree documents with the treekit engine",
	Long: `treectl loads trees and forests from YAML or JSON documents and runs
treekit operations over them: printing, level-order and depth-first
traversal, statistics, size verification and deep cloning.

A node is either a scalar (a leaf) or a mapping with a "value" and a
"children" list. A document whose top level is a list is a forest.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&piled, "piled", false, "Build into one arena instead of separate heap nodes")
	rootCmd.PersistentFlags().
		StringVar(&limitsName, "limits", "default", "Input limits: default, relaxed, strict or none")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write debug logs to a dated file in this directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(*cobra.Command, []string) error {
	switch {
	case logDir != "":
		return logger.Init(logger.Options{Enabled: true, LogDir: logDir, Level: slog.LevelDebug})
	case verbose && !quiet:
		return logger.Init(logger.Options{Enabled: true, Writer: os.Stderr, Level: slog.LevelDebug})
	default:
		return logger.Init(logger.Options{})
	}
}

// parseLimits maps a --limits name to a preset.
func parseLimits(name string) (types.Limits, error) {
	switch name {
	case "", "default":
		return types.DefaultLimits(), nil
	case "relaxed":
		return types.RelaxedLimits(), nil
	case "strict":
		return types.StrictLimits(), nil
	case "none":
		return types.Unlimited(), nil
	default:
		return types.Limits{}, fmt.Errorf("unknown limits %q (want default, relaxed, strict or none)", name)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
