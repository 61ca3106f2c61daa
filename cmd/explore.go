package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/msalah0e/cxgraph/internal/activity"
	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/metrics"
	"github.com/msalah0e/cxgraph/internal/render"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/msalah0e/cxgraph/internal/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func exploreCmd() *cobra.Command {
	var (
		depth   int
		verbose bool
		start   string
	)

	cmd := &cobra.Command{
		Use:     "explore",
		Short:   "Interactive session: select, search and drag constructions",
		Aliases: []string{"repl", "x"},
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctrl := mustController(cmd.Context(), depth)
			out := cmd.OutOrStdout()
			ctrl.Subscribe(&render.Terminal{W: out, Verbose: verbose})

			ui.Banner(fmt.Sprintf("explore %d constructions", ctrl.Store().Len()))
			fmt.Fprintln(out, ui.Subtle.Sprint("  Type `help` for commands, `quit` to leave"))

			x := &explorer{ctrl: ctrl, out: out, suggestions: cfg.View.Suggestions}
			if start != "" {
				x.exec("select " + start)
			}
			if err := x.run(cmd.InOrStdin()); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Hop limit (default from config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the full tree after every change")
	cmd.Flags().StringVar(&start, "start", "", "Construction to select first")
	return cmd
}

const exploreHelp = `  select <id>        re-center on a construction
  find <text>        select the first construction matching text
  suggest <text>     list matching constructions
  random             select a random connected construction
  deselect           clear the selection
  drag <id> <x> <y>  pin a displayed construction at a position
  release <id>       unpin a displayed construction
  show               print the current neighborhood
  metrics            print session metrics
  quit               leave`

// explorer drives a controller from text commands, one per line.
type explorer struct {
	ctrl        *view.Controller
	out         io.Writer
	suggestions int
}

func (x *explorer) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(x.out, ui.Brand.Sprint("cx> "))
		if !sc.Scan() {
			fmt.Fprintln(x.out)
			return sc.Err()
		}
		if quit := x.exec(sc.Text()); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session should end.
func (x *explorer) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(x.out, exploreHelp)
	case "select", "s":
		if len(args) != 1 {
			x.usage("select <id>")
			return false
		}
		x.selectID(graph.NodeID(args[0]))
	case "find", "f":
		if len(args) == 0 {
			x.usage("find <text>")
			return false
		}
		query := strings.Join(args, " ")
		id, ok := x.ctrl.Store().FindByText(query)
		if !ok {
			record(activity.ActionNotFound, "", query)
			fmt.Fprintf(x.out, "  %s No construction matches %q\n", ui.WarnIcon(), query)
			return false
		}
		record(activity.ActionSearch, id, query)
		x.selectID(id)
	case "suggest":
		if len(args) == 0 {
			x.usage("suggest <text>")
			return false
		}
		x.suggest(strings.Join(args, " "))
	case "random", "r":
		id, _, err := x.ctrl.SelectRandomConnected()
		if errors.Is(err, view.ErrEmptyGraph) {
			fmt.Fprintf(x.out, "  %s Graph is empty, nothing to select\n", ui.WarnIcon())
			return false
		}
		record(activity.ActionRandom, id, "")
	case "deselect", "d":
		x.ctrl.Deselect()
		record(activity.ActionDeselect, "", "")
	case "drag":
		if len(args) != 3 {
			x.usage("drag <id> <x> <y>")
			return false
		}
		px, errX := strconv.ParseFloat(args[1], 64)
		py, errY := strconv.ParseFloat(args[2], 64)
		if errX != nil || errY != nil {
			x.usage("drag <id> <x> <y>")
			return false
		}
		if err := x.ctrl.Drag(graph.NodeID(args[0]), px, py); err != nil {
			x.fail(err)
			return false
		}
		fmt.Fprintf(x.out, "  %s pinned %s at (%g, %g)\n", ui.StatusIcon(true), args[0], px, py)
	case "release":
		if len(args) != 1 {
			x.usage("release <id>")
			return false
		}
		if err := x.ctrl.Release(graph.NodeID(args[0])); err != nil {
			x.fail(err)
			return false
		}
		fmt.Fprintf(x.out, "  %s released %s\n", ui.StatusIcon(true), args[0])
	case "show":
		_ = render.Tree(x.out, x.ctrl.Frame())
	case "metrics":
		lines, err := metrics.Snapshot(prometheus.DefaultGatherer)
		if err != nil {
			x.fail(err)
			return false
		}
		for _, l := range lines {
			fmt.Fprintf(x.out, "  %s\n", l)
		}
	default:
		fmt.Fprintf(x.out, "  %s unknown command %q, try `help`\n", ui.WarnIcon(), verb)
	}
	return false
}

func (x *explorer) selectID(id graph.NodeID) {
	if _, err := x.ctrl.Select(id); err != nil {
		if errors.Is(err, view.ErrNotFound) {
			record(activity.ActionNotFound, id, "")
			fmt.Fprintf(x.out, "  %s Construction %s not found\n", ui.StatusIcon(false), id)
			suggestLine(x.out, x.ctrl.Store(), string(id), x.suggestions)
			return
		}
		x.fail(err)
		return
	}
	record(activity.ActionSelect, id, "")
}

func (x *explorer) suggest(query string) {
	hits := x.ctrl.Store().Suggest(query, x.suggestions)
	if len(hits) == 0 {
		fmt.Fprintf(x.out, "  %s\n", ui.Subtle.Sprint("No suggestions"))
		return
	}
	for _, h := range hits {
		fmt.Fprintf(x.out, "  %s  %s\n", ui.Brand.Sprint(string(h.ID)), h.Name)
	}
}

func (x *explorer) usage(u string) {
	fmt.Fprintf(x.out, "  %s usage: %s\n", ui.WarnIcon(), u)
}

func (x *explorer) fail(err error) {
	fmt.Fprintf(x.out, "  %s %v\n", ui.StatusIcon(false), err)
}
