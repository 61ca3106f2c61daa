package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/ui"
	"github.com/msalah0e/cxgraph/internal/view"
)

// Tree writes a terminal view of a frame: the selected construction, its
// examples and its connections, followed by a neighborhood summary.
func Tree(w io.Writer, f view.Frame) error {
	var b strings.Builder

	if !f.HasSelection() {
		b.WriteString(ui.Subtle.Sprint("  No construction selected") + "\n")
		summary(&b, f)
		_, err := io.WriteString(w, b.String())
		return err
	}

	center, ok := f.Displayed.Node(f.Selected)
	if !ok {
		return fmt.Errorf("selected construction %s is not displayed", f.Selected)
	}

	fmt.Fprintf(&b, "  %s %s  %s\n", ui.Selected.Sprint(ui.Glyph), ui.Brand.Sprint(string(center.ID)), graph.FormatName(center.Name))
	if len(center.Examples) == 0 {
		fmt.Fprintf(&b, "  │  %s\n", ui.Subtle.Sprint("No examples"))
	}
	for _, ex := range center.Examples {
		fmt.Fprintf(&b, "  │  %s\n", ui.Info.Sprint("\""+ex+"\""))
	}

	conns := view.Connections(f.Displayed, f.Selected)
	b.WriteString("  │\n")
	if len(conns) == 0 {
		fmt.Fprintf(&b, "  └── %s\n", ui.Subtle.Sprint("No connected constructions"))
	}
	for i, c := range conns {
		prefix := "  ├── "
		if i == len(conns)-1 {
			prefix = "  └── "
		}
		fmt.Fprintf(&b, "%s%s %s %s  %s %s\n", prefix,
			ui.Relation(string(c.Relation)), ui.Subtle.Sprint(arrow(c)),
			ui.Brand.Sprint(string(c.NodeID)), c.Name, ui.Subtle.Sprint("("+c.Label()+")"))
	}

	b.WriteString("\n")
	summary(&b, f)
	_, err := io.WriteString(w, b.String())
	return err
}

func arrow(c view.Connection) string {
	switch {
	case c.Direction == graph.Bi:
		return "<─>"
	case c.Outgoing:
		return "──>"
	default:
		return "<──"
	}
}

func summary(b *strings.Builder, f view.Frame) {
	fmt.Fprintf(b, "  %s %d constructions, %d links",
		ui.Subtle.Sprint("neighborhood:"), len(f.Displayed.Nodes), len(f.Displayed.Edges))
	if d := DeltaLine(f.Delta); d != "" {
		fmt.Fprintf(b, "  %s", ui.Subtle.Sprint(d))
	}
	b.WriteString("\n")
}

// DeltaLine summarizes a delta, or returns "" when nothing changed.
func DeltaLine(d view.Delta) string {
	if d.Empty() && len(d.NodesUpdated) == 0 {
		return ""
	}
	return fmt.Sprintf("nodes +%d ~%d -%d, links +%d ~%d -%d",
		len(d.NodesAdded), len(d.NodesUpdated), len(d.NodesRemoved),
		len(d.EdgesAdded), len(d.EdgesUpdated), len(d.EdgesRemoved))
}

// Terminal is a view.Renderer that prints every frame it receives.
type Terminal struct {
	W       io.Writer
	Verbose bool
}

// Render implements view.Renderer.
func (t *Terminal) Render(f view.Frame) {
	if t.Verbose {
		_ = Tree(t.W, f)
		return
	}
	sel := ui.Subtle.Sprint("none")
	if f.HasSelection() {
		sel = ui.Brand.Sprint(string(f.Selected))
	}
	line := DeltaLine(f.Delta)
	if line == "" {
		line = "unchanged"
	}
	fmt.Fprintf(t.W, "  selected %s  %s\n", sel, ui.Subtle.Sprint(line))
}
