package cmd

import (
	"fmt"

	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		from  string
		limit int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List constructions sorted by id",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			store := mustController(cmd.Context(), 0).Store()

			ids := store.Range(graph.NodeID(from), limit)
			if len(ids) == 0 {
				fmt.Println("  No constructions to list.")
				return
			}

			ui.Banner("constructions")
			ui.Table([]string{"ID", "Form", "Links", "Examples"}, listRows(store, ids))

			fmt.Printf("\n  Showing %d of %d constructions\n", len(ids), store.Len())
			if limit > 0 && len(ids) == limit {
				if next := store.Range(ids[len(ids)-1], 2); len(next) == 2 {
					fmt.Printf("  %s\n", ui.Subtle.Sprintf("Next page: cxgraph list --from %s --limit %d", next[1], limit))
				}
			}
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start listing at this id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows (0 = all)")
	return cmd
}

func listRows(store *graph.Store, ids []graph.NodeID) [][]string {
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		n, _ := store.Node(id)
		rows = append(rows, []string{
			string(id),
			graph.FormatName(n.Name),
			fmt.Sprint(store.Degree(id)),
			fmt.Sprint(len(n.Examples)),
		})
	}
	return rows
}
