package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/msalah0e/cxgraph/internal/activity"
	"github.com/msalah0e/cxgraph/internal/config"
	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/loader"
	"github.com/msalah0e/cxgraph/internal/render"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/msalah0e/cxgraph/internal/view"
)

// Output formats accepted by --format.
const (
	formatTree = "tree"
	formatJSON = "json"
	formatDOT  = "dot"
	formatHTML = "html"
)

var formats = []string{formatTree, formatJSON, formatDOT, formatHTML}

// source resolves the input files from the config.
func source(c *config.Config) loader.Source {
	src := loader.DirSource(c.Data.Dir)
	if c.Data.Constructions != "" {
		src.Constructions = c.Data.Constructions
	}
	if c.Data.Relations != "" {
		src.Relations = c.Data.Relations
	}
	return src
}

func newRand(c *config.Config) *rand.Rand {
	seed := c.Random.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// loadStore reads both tables and builds the store. Malformed rows are
// reported on warnings and skipped.
func loadStore(ctx context.Context, c *config.Config, rnd *rand.Rand, warnings io.Writer) (*graph.Store, error) {
	tables, err := loader.Load(ctx, source(c))
	if err != nil {
		return nil, err
	}
	store, problems := graph.Build(tables.Constructions, tables.Relations, rnd)
	for _, p := range problems {
		fmt.Fprintf(warnings, "  %s %s\n", ui.WarnIcon(), ui.Warn.Sprint(p.Error()))
	}
	return store, nil
}

// openController loads the graph and returns a controller over it. depth 0
// falls back to the configured depth.
func openController(ctx context.Context, depth int) (*view.Controller, error) {
	rnd := newRand(cfg)
	store, err := loadStore(ctx, cfg, rnd, os.Stderr)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		depth = cfg.View.Depth
	}
	return view.NewController(store, view.Options{
		Depth:  depth,
		Canvas: view.Canvas{Width: cfg.View.Width, Height: cfg.View.Height},
		Rand:   rnd,
	}), nil
}

// mustController is openController for commands that cannot continue
// without data.
func mustController(ctx context.Context, depth int) *view.Controller {
	ctrl, err := openController(ctx, depth)
	if err != nil {
		ui.Bad.Printf("  Failed to load graph: %v\n", err)
		os.Exit(1)
	}
	return ctrl
}

// renderFrame writes f in the given format.
func renderFrame(w io.Writer, format string, f view.Frame) error {
	switch format {
	case formatTree, "":
		return render.Tree(w, f)
	case formatJSON:
		return render.JSON(w, f)
	case formatDOT:
		return render.DOT(w, f)
	case formatHTML:
		return render.HTML(w, f)
	}
	return fmt.Errorf("unknown format %q (want one of %v)", format, formats)
}

// record appends to the activity log when it is enabled. Failures to write
// the log never interrupt the command.
func record(action string, node graph.NodeID, details string) {
	if cfg == nil || !cfg.Activity.Enabled {
		return
	}
	_ = activity.Log(action, string(node), details)
}

// suggestLine prints up to limit "did you mean" candidates for query.
func suggestLine(w io.Writer, store *graph.Store, query string, limit int) {
	hits := store.Suggest(query, limit)
	if len(hits) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s", ui.Subtle.Sprint("Did you mean:"))
	for _, h := range hits {
		fmt.Fprintf(w, " %s", ui.Brand.Sprint(string(h.ID)))
	}
	fmt.Fprintln(w)
}
