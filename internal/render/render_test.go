package render

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/msalah0e/cxgraph/internal/view"
)

func init() {
	ui.SetColor(false)
}

// frame selects B in A->B (instantiation), B<->C (subpart), C->D (polysemi).
func frame(t *testing.T) view.Frame {
	t.Helper()
	s, warnings := graph.Build([]graph.ConstructionRow{
		{ID: "A", Form: "X--is--<ADJ>", Examples: []string{"it is red"}},
		{ID: "B", Form: "let alone"},
		{ID: "C", Form: "the more"},
		{ID: "D", Form: "what about"},
	}, []graph.RelationRow{
		{Source: "A", Target: "B", Relation: "instantiation"},
		{Source: "B", Target: "C", Relation: "subpart", Direction: "bi-directional"},
		{Source: "C", Target: "D", Relation: "polysemi"},
	}, rand.New(rand.NewSource(1)))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	c := view.NewController(s, view.Options{Rand: rand.New(rand.NewSource(2))})
	if _, err := c.Select("B"); err != nil {
		t.Fatalf("select B: %v", err)
	}
	return c.Frame()
}

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	if err := Tree(&buf, frame(t)); err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"B  let alone",
		"No examples",
		"instantiation <── A",
		"(incoming)",
		"subpart <─> C",
		"(bi-directional)",
		"4 constructions, 4 links",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "D  what about") {
		t.Error("D is not adjacent to B and should not be listed")
	}
}

func TestTreeNoSelection(t *testing.T) {
	var buf bytes.Buffer
	if err := Tree(&buf, view.Frame{}); err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No construction selected") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestTreeExamples(t *testing.T) {
	f := frame(t)
	f.Selected = "A"

	var buf bytes.Buffer
	if err := Tree(&buf, f); err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"it is red"`) {
		t.Errorf("expected example in output, got:\n%s", out)
	}
	if !strings.Contains(out, "X-is-ADJ") {
		t.Errorf("expected formatted name, got:\n%s", out)
	}
}

func TestLinesCollapsesBidirectional(t *testing.T) {
	lines := Lines(frame(t).Displayed.Edges)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(lines), lines)
	}
	var bi int
	for _, e := range lines {
		if e.Direction == graph.Bi {
			bi++
		}
	}
	if bi != 1 {
		t.Errorf("expected the subpart pair as a single line, got %d", bi)
	}
}

func TestDOT(t *testing.T) {
	var buf bytes.Buffer
	if err := DOT(&buf, frame(t)); err != nil {
		t.Fatalf("DOT failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "digraph constructions {") {
		t.Errorf("expected digraph header, got %q", out)
	}
	if !strings.Contains(out, `"B" [label="B\nlet alone"`) {
		t.Errorf("expected B node with label, got:\n%s", out)
	}
	if !strings.Contains(out, `fillcolor="#e74c3c"`) {
		t.Error("expected selected node highlight")
	}
	if !strings.Contains(out, `"A" -> "B" [label="instantiation", color="#3498db"]`) {
		t.Errorf("expected A -> B edge, got:\n%s", out)
	}
	if strings.Count(out, "dir=both") != 1 {
		t.Errorf("expected one double-headed edge, got:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, frame(t)); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded struct {
		Selected  string `json:"selected"`
		Displayed struct {
			Nodes []struct {
				ID string `json:"id"`
			} `json:"nodes"`
			Links []struct {
				Source string `json:"source"`
				Target string `json:"target"`
			} `json:"links"`
		} `json:"displayed"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Selected != "B" {
		t.Errorf("expected selected B, got %q", decoded.Selected)
	}
	if len(decoded.Displayed.Nodes) != 4 || len(decoded.Displayed.Links) != 4 {
		t.Errorf("expected 4 nodes and 4 links, got %d and %d",
			len(decoded.Displayed.Nodes), len(decoded.Displayed.Links))
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, frame(t)); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("expected a complete HTML document")
	}
	if strings.Contains(out, "%!") {
		t.Error("page has a formatting verb error")
	}
	for _, want := range []string{
		`const TITLE="B: let alone";`,
		`"label":"bi-directional"`,
		`"polysemi":"#e67e22"`,
		"width:100%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestHTMLEscapesMarkup(t *testing.T) {
	f := frame(t)
	n, _ := f.Displayed.Node("B")
	n.Examples = []string{"</script><b>"}

	var buf bytes.Buffer
	if err := HTML(&buf, f); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if strings.Contains(buf.String(), "</script><b>") {
		t.Error("example text must not close the script element")
	}
}

func TestDeltaLine(t *testing.T) {
	if got := DeltaLine(view.Delta{}); got != "" {
		t.Errorf("expected empty line for empty delta, got %q", got)
	}
	d := view.Delta{NodesAdded: []graph.NodeID{"A", "B"}, EdgesRemoved: []graph.LinkKey{{Source: "A", Target: "B"}}}
	want := "nodes +2 ~0 -0, links +0 ~0 -1"
	if got := DeltaLine(d); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{W: &buf}
	term.Render(view.Frame{})
	if !strings.Contains(buf.String(), "selected none  unchanged") {
		t.Errorf("unexpected compact line: %q", buf.String())
	}
}
