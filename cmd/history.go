package cmd

import (
	"fmt"
	"os"

	"github.com/msalah0e/cxgraph/internal/activity"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"log"},
		Short:   "Show recent selections",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ui.Banner("history")

			entries, err := activity.Read(count)
			if err != nil || len(entries) == 0 {
				fmt.Println("  No activity recorded yet.")
				fmt.Println("  Selections are logged by `cxgraph select`, `random` and `explore`")
				return
			}

			ui.Table([]string{"Time", "Session", "Action", "Construction", "Details"}, historyRows(entries))
			fmt.Printf("\n  Showing %d most recent entries\n", len(entries))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of entries (0 = all)")
	cmd.AddCommand(
		historySearchCmd(),
		historyClearCmd(),
	)
	return cmd
}

func historySearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			results, err := activity.Search(args[0], 50)
			if err != nil || len(results) == 0 {
				fmt.Printf("  No entries matching %q\n", args[0])
				return
			}

			ui.Banner("history search")
			ui.Table([]string{"Time", "Session", "Action", "Construction", "Details"}, historyRows(results))
			fmt.Printf("\n  %d results\n", len(results))
		},
	}
}

func historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the history",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := activity.Clear(); err != nil {
				ui.Bad.Printf("  Failed to clear: %v\n", err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s History cleared\n", ui.StatusIcon(true))
		},
	}
}

func historyRows(entries []activity.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.Format("Jan 02 15:04"),
			shortSession(e.Session),
			e.Action,
			orDash(e.Node),
			truncate(e.Details, 40),
		})
	}
	return rows
}

func shortSession(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return orDash(s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
