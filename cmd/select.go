package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/msalah0e/cxgraph/internal/activity"
	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/msalah0e/cxgraph/internal/view"
	"github.com/spf13/cobra"
)

func selectCmd() *cobra.Command {
	var (
		format string
		depth  int
	)

	cmd := &cobra.Command{
		Use:               "select <id>",
		Short:             "Show the neighborhood of a construction",
		Aliases:           []string{"show", "sel"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: constructionCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			ctrl := mustController(cmd.Context(), depth)
			id := graph.NodeID(strings.TrimSpace(args[0]))

			if _, err := ctrl.Select(id); err != nil {
				if errors.Is(err, view.ErrNotFound) {
					record(activity.ActionNotFound, id, "")
					ui.Bad.Printf("  Construction %s not found\n", id)
					suggestLine(os.Stdout, ctrl.Store(), string(id), cfg.View.Suggestions)
					os.Exit(1)
				}
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			record(activity.ActionSelect, id, "")

			if err := renderFrame(cmd.OutOrStdout(), format, ctrl.Frame()); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTree, "Output format: tree, json, dot, html")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Hop limit (default from config; negative shows the construction alone)")
	_ = cmd.RegisterFlagCompletionFunc("format", formatCompletionFunc)
	return cmd
}

func randomCmd() *cobra.Command {
	var (
		format string
		depth  int
	)

	cmd := &cobra.Command{
		Use:     "random",
		Short:   "Select a random connected construction",
		Aliases: []string{"rand"},
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctrl := mustController(cmd.Context(), depth)

			id, _, err := ctrl.SelectRandomConnected()
			if err != nil {
				if errors.Is(err, view.ErrEmptyGraph) {
					ui.Warn.Println("  Graph is empty, nothing to select")
					os.Exit(1)
				}
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			record(activity.ActionRandom, id, "")

			if err := renderFrame(cmd.OutOrStdout(), format, ctrl.Frame()); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTree, "Output format: tree, json, dot, html")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Hop limit (default from config; negative shows the construction alone)")
	_ = cmd.RegisterFlagCompletionFunc("format", formatCompletionFunc)
	return cmd
}
