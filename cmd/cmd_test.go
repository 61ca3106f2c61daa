package cmd

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msalah0e/cxgraph/internal/config"
	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/msalah0e/cxgraph/internal/view"
)

func init() {
	ui.SetColor(false)
}

// quietConfig keeps tests away from the user's activity log.
func quietConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	prev := cfg
	cfg = config.Default()
	cfg.Activity.Enabled = false
	t.Cleanup(func() { cfg = prev })
}

func testController(t *testing.T) *view.Controller {
	t.Helper()
	s, _ := graph.Build([]graph.ConstructionRow{
		{ID: "A", Form: "X--is--<ADJ>"},
		{ID: "B", Form: "let alone"},
		{ID: "C", Form: "the more"},
		{ID: "D", Form: "what about"},
	}, []graph.RelationRow{
		{Source: "A", Target: "B", Relation: "instantiation"},
		{Source: "B", Target: "C", Relation: "subpart", Direction: "bi-directional"},
		{Source: "C", Target: "D", Relation: "polysemi"},
	}, rand.New(rand.NewSource(1)))
	return view.NewController(s, view.Options{Rand: rand.New(rand.NewSource(1))})
}

func writeData(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"constructions.json": `{"A": {"form": "a"}, "B": {"form": "b"}}`,
		"relations.json":     `{"A": {"B": {"relation": "subpart"}, "Z": {"relation": "bogus"}}}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadStoreReportsWarnings(t *testing.T) {
	dir := t.TempDir()
	writeData(t, dir)

	c := config.Default()
	c.Data.Dir = dir
	var warnings bytes.Buffer
	store, err := loadStore(context.Background(), c, rand.New(rand.NewSource(1)), &warnings)
	if err != nil {
		t.Fatalf("loadStore failed: %v", err)
	}
	if store.Len() != 2 || len(store.Edges()) != 1 {
		t.Errorf("expected 2 nodes and 1 edge, got %d and %d", store.Len(), len(store.Edges()))
	}
	if !strings.Contains(warnings.String(), "bogus") {
		t.Errorf("expected a warning for the bogus relation, got %q", warnings.String())
	}
}

func TestLoadStoreMissingData(t *testing.T) {
	c := config.Default()
	c.Data.Dir = t.TempDir()
	if _, err := loadStore(context.Background(), c, nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for missing data files")
	}
}

func TestSourceOverrides(t *testing.T) {
	c := config.Default()
	c.Data.Dir = "/data"
	c.Data.Relations = "/elsewhere/rel.yaml"

	src := source(c)
	if src.Constructions != filepath.Join("/data", "constructions.json") {
		t.Errorf("unexpected constructions path %q", src.Constructions)
	}
	if src.Relations != "/elsewhere/rel.yaml" {
		t.Errorf("expected relations override, got %q", src.Relations)
	}
}

func TestRenderFrameFormats(t *testing.T) {
	ctrl := testController(t)
	if _, err := ctrl.Select("B"); err != nil {
		t.Fatal(err)
	}

	for _, format := range formats {
		var buf bytes.Buffer
		if err := renderFrame(&buf, format, ctrl.Frame()); err != nil {
			t.Errorf("%s: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: empty output", format)
		}
	}

	if err := renderFrame(&bytes.Buffer{}, "svg", ctrl.Frame()); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExplorerSession(t *testing.T) {
	quietConfig(t)
	ctrl := testController(t)
	var out bytes.Buffer
	x := &explorer{ctrl: ctrl, out: &out, suggestions: 5}

	script := strings.Join([]string{
		"select A",
		"select nope",
		"find more",
		"drag C 10 20",
		"release C",
		"drag D 1 1",
		"deselect",
		"bogus",
		"quit",
		"select A",
	}, "\n")
	if err := x.run(strings.NewReader(script)); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if id, ok := ctrl.Selected(); ok {
		t.Errorf("expected no selection after deselect, got %s", id)
	}
	if !ctrl.Displayed().Has("D") {
		t.Error("deselect should keep the displayed subgraph")
	}

	text := out.String()
	for _, want := range []string{
		"Construction nope not found",
		"pinned C at (10, 20)",
		"released C",
		"unknown command \"bogus\"",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, text)
		}
	}
	if strings.Count(text, "cx> ") != 9 {
		t.Errorf("expected the session to stop at quit, got %d prompts", strings.Count(text, "cx> "))
	}
}

func TestExplorerFindSelects(t *testing.T) {
	quietConfig(t)
	ctrl := testController(t)
	x := &explorer{ctrl: ctrl, out: &bytes.Buffer{}, suggestions: 5}

	x.exec("find ALONE")
	if id, _ := ctrl.Selected(); id != "B" {
		t.Errorf("expected B selected, got %q", id)
	}
	x.exec("find zzz")
	if id, _ := ctrl.Selected(); id != "B" {
		t.Errorf("a failed find must not change the selection, got %q", id)
	}
}

func TestExplorerRandomAndUsage(t *testing.T) {
	quietConfig(t)
	ctrl := testController(t)
	var out bytes.Buffer
	x := &explorer{ctrl: ctrl, out: &out, suggestions: 5}

	x.exec("random")
	if _, ok := ctrl.Selected(); !ok {
		t.Error("expected a selection after random")
	}
	x.exec("drag C ten 20")
	x.exec("select")
	if strings.Count(out.String(), "usage:") != 2 {
		t.Errorf("expected two usage notices, got:\n%s", out.String())
	}
}

func TestExplorerSuggest(t *testing.T) {
	quietConfig(t)
	var out bytes.Buffer
	x := &explorer{ctrl: testController(t), out: &out, suggestions: 5}

	x.exec("suggest is-ADJ")
	if !strings.Contains(out.String(), "A  X-is-ADJ") {
		t.Errorf("expected suggestion for A, got %q", out.String())
	}
}

func TestCompletions(t *testing.T) {
	s, _ := graph.Build([]graph.ConstructionRow{
		{ID: "10", Form: "ten"}, {ID: "11", Form: "eleven"}, {ID: "2", Form: "two"},
	}, nil, nil)

	got := completions(s, "1")
	if len(got) != 2 || got[0] != "10\tten" || got[1] != "11\televen" {
		t.Errorf("unexpected completions %q", got)
	}
	if got := completions(s, "3"); len(got) != 0 {
		t.Errorf("expected no completions, got %q", got)
	}
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"12":      "12",
		"a/b c":   "a_b_c",
		"":        "none",
		"x-y_z.1": "x-y_z_1",
	}
	for in, want := range tests {
		if got := safeName(in); got != want {
			t.Errorf("safeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("expected truncated string, got %q", got)
	}
}
