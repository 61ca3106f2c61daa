package cmd

import (
	"fmt"
	"strings"

	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show construction graph statistics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			store := mustController(cmd.Context(), 0).Store()
			st := store.Stats()

			ui.Banner("graph stats")
			if st.Nodes == 0 {
				fmt.Println("  Empty graph. Check the data directory:")
				ui.Info.Printf("  %s\n", source(cfg).Constructions)
				return
			}

			row := func(label string, v int) {
				fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-16s", label), v)
			}
			row("Constructions", st.Nodes)
			row("Relations", st.Edges)
			row("Connected", st.Connected)
			row("Isolated", st.Isolated)
			row("Components", st.Components)
			if st.Dangling > 0 {
				row("Dangling", st.Dangling)
			}

			fmt.Println()
			for _, r := range graph.Relations {
				pad := strings.Repeat(" ", max(0, 16-len(r)))
				fmt.Printf("  %s%s  %d\n", ui.Relation(string(r)), pad, st.ByRelation[r])
			}
		},
	}
}
