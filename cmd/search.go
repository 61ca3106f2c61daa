package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/msalah0e/cxgraph/internal/activity"
	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Find constructions by id or form",
		Aliases: []string{"find"},
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			query := strings.Join(args, " ")
			if limit <= 0 {
				limit = cfg.View.Suggestions
			}

			ctrl := mustController(cmd.Context(), 0)
			store := ctrl.Store()

			best, ok := store.FindByText(query)
			if !ok {
				record(activity.ActionNotFound, "", query)
				ui.Bad.Printf("  No construction matches %q\n", query)
				os.Exit(1)
			}
			record(activity.ActionSearch, best, query)

			ui.Banner(fmt.Sprintf("search %q", query))
			ui.Table([]string{"ID", "Form", "Links"}, suggestionRows(store, store.Suggest(query, limit)))

			n, _ := store.Node(best)
			fmt.Printf("\n  %s %s  %s\n", ui.Subtle.Sprint("best match:"), ui.Brand.Sprint(string(best)), graph.FormatName(n.Name))
			fmt.Printf("  %s\n", ui.Subtle.Sprintf("cxgraph select %s", best))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum suggestions (default from config)")
	return cmd
}

func suggestionRows(store *graph.Store, hits []graph.Suggestion) [][]string {
	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, []string{string(h.ID), h.Name, strconv.Itoa(store.Degree(h.ID))})
	}
	return rows
}
