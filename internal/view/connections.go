package view

import (
	"github.com/msalah0e/cxgraph/internal/graph"
)

// Connection is one row of the sidebar table for the selected node.
type Connection struct {
	NodeID    graph.NodeID    `json:"id"`
	Name      string          `json:"name"`
	Relation  graph.Relation  `json:"relation"`
	Direction graph.Direction `json:"direction"`
	Outgoing  bool            `json:"outgoing"`
}

// Label describes the connection from the selected node's point of view.
func (c Connection) Label() string {
	switch {
	case c.Direction == graph.Bi:
		return "bi-directional"
	case c.Outgoing:
		return "outgoing"
	default:
		return "incoming"
	}
}

// Connections lists the displayed edges touching selected, one row per
// neighbor, relation and direction. Names are formatted for display.
func Connections(sub Subgraph, selected graph.NodeID) []Connection {
	type key struct {
		id        graph.NodeID
		relation  graph.Relation
		direction graph.Direction
	}

	seen := make(map[key]bool)
	var out []Connection
	for _, e := range sub.Edges {
		if e.Source != selected && e.Target != selected {
			continue
		}
		outgoing := e.Source == selected
		other := e.Other(selected)
		k := key{id: other, relation: e.Relation, direction: e.Direction}
		if seen[k] {
			continue
		}
		seen[k] = true

		name := string(other)
		if n, ok := sub.Node(other); ok {
			name = graph.FormatName(n.Name)
		}
		out = append(out, Connection{
			NodeID:    other,
			Name:      name,
			Relation:  e.Relation,
			Direction: e.Direction,
			Outgoing:  outgoing,
		})
	}
	return out
}
