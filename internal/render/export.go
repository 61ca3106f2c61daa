package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/view"
)

// RelationColors are the legend colors shared by the DOT and HTML exports.
var RelationColors = map[graph.Relation]string{
	graph.Polysemi:      "#e67e22",
	graph.Instantiation: "#3498db",
	graph.Subpart:       "#2ecc71",
}

const selectedColor = "#e74c3c"

// JSON writes the frame as pretty-printed JSON.
func JSON(w io.Writer, f view.Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// Lines collapses each bi-directional pair into a single line so a renderer
// can draw one double-headed edge.
func Lines(edges []graph.Edge) []graph.Edge {
	type pair struct {
		a, b graph.NodeID
		rel  graph.Relation
	}
	seen := make(map[pair]bool)
	var out []graph.Edge
	for _, e := range edges {
		if e.Direction != graph.Bi {
			out = append(out, e)
			continue
		}
		a, b := e.Source, e.Target
		if b < a {
			a, b = b, a
		}
		p := pair{a: a, b: b, rel: e.Relation}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, e)
	}
	return out
}

// DOT writes the displayed subgraph in Graphviz DOT format.
func DOT(w io.Writer, f view.Frame) error {
	var b strings.Builder
	b.WriteString("digraph constructions {\n")
	b.WriteString("  layout=neato;\n")
	b.WriteString("  node [shape=circle, style=filled, fillcolor=\"#3498db\", fontcolor=white];\n\n")

	for _, n := range f.Displayed.Nodes {
		label := string(n.ID) + "\n" + graph.FormatName(n.Name)
		attrs := fmt.Sprintf("label=%q, pos=\"%.1f,%.1f\"", label, n.X, -n.Y)
		if n.ID == f.Selected {
			attrs += fmt.Sprintf(", fillcolor=%q", selectedColor)
		}
		fmt.Fprintf(&b, "  %q [%s];\n", string(n.ID), attrs)
	}

	b.WriteString("\n")
	for _, e := range Lines(f.Displayed.Edges) {
		attrs := fmt.Sprintf("label=%q, color=%q", string(e.Relation), RelationColors[e.Relation])
		if e.Direction == graph.Bi {
			attrs += ", dir=both"
		}
		fmt.Fprintf(&b, "  %q -> %q [%s];\n", string(e.Source), string(e.Target), attrs)
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
