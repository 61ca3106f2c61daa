package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/msalah0e/cxgraph/internal/activity"
	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/render"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/msalah0e/cxgraph/internal/view"
	"github.com/spf13/cobra"
)

func viewCmd() *cobra.Command {
	var (
		depth  int
		output string
		noOpen bool
	)

	cmd := &cobra.Command{
		Use:               "view [id]",
		Short:             "Open the neighborhood of a construction in the browser",
		Long:              "Writes a self-contained HTML page for the neighborhood of id and opens it.\nWithout id a random connected construction is shown.",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: constructionCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			ctrl := mustController(cmd.Context(), depth)

			var id graph.NodeID
			if len(args) == 1 {
				id = graph.NodeID(args[0])
				if _, err := ctrl.Select(id); err != nil {
					if errors.Is(err, view.ErrNotFound) {
						record(activity.ActionNotFound, id, "")
					}
					ui.Bad.Printf("  %v\n", err)
					os.Exit(1)
				}
				record(activity.ActionSelect, id, "view")
			} else {
				var err error
				id, _, err = ctrl.SelectRandomConnected()
				if err != nil {
					ui.Bad.Printf("  %v\n", err)
					os.Exit(1)
				}
				record(activity.ActionRandom, id, "view")
			}

			if output == "" {
				output = filepath.Join(os.TempDir(), fmt.Sprintf("cxgraph-%s.html", safeName(string(id))))
			}
			f, err := os.Create(output)
			if err != nil {
				ui.Bad.Printf("  Failed to write HTML: %v\n", err)
				os.Exit(1)
			}
			frame := ctrl.Frame()
			err = render.HTML(f, frame)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				ui.Bad.Printf("  Failed to write HTML: %v\n", err)
				os.Exit(1)
			}

			if noOpen || openBrowser(output) != nil {
				fmt.Printf("  HTML written to: %s\n", output)
				fmt.Println("  Open it in your browser to see the graph")
				return
			}

			ui.Good.Printf("  %s Opened %s (%d constructions, %d links)\n",
				ui.StatusIcon(true), id, len(frame.Displayed.Nodes), len(frame.Displayed.Edges))
			ui.Subtle.Printf("  %s\n", output)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Hop limit (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the page here instead of the temp directory")
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Only write the page")
	return cmd
}

func openBrowser(path string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", path)
	case "linux":
		c = exec.Command("xdg-open", path)
	default:
		c = exec.Command("cmd", "/c", "start", path)
	}
	return c.Start()
}

// safeName keeps ids usable as file name fragments.
func safeName(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			b[i] = '_'
		}
	}
	if len(b) == 0 {
		return "none"
	}
	return string(b)
}
