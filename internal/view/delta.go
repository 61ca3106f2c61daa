package view

import (
	"github.com/msalah0e/cxgraph/internal/graph"
)

// Subgraph is a rendered neighborhood. Nodes carry live positions.
type Subgraph struct {
	Nodes []*graph.Node `json:"nodes"`
	Edges []graph.Edge  `json:"links"`
}

// Node returns the displayed node with the given id.
func (s Subgraph) Node(id graph.NodeID) (*graph.Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Has reports whether id is displayed.
func (s Subgraph) Has(id graph.NodeID) bool {
	_, ok := s.Node(id)
	return ok
}

// Positions returns the current coordinates of every displayed node.
func (s Subgraph) Positions() map[graph.NodeID]Position {
	out := make(map[graph.NodeID]Position, len(s.Nodes))
	for _, n := range s.Nodes {
		out[n.ID] = Position{X: n.X, Y: n.Y}
	}
	return out
}

// Clone deep-copies the subgraph so callers can keep a snapshot.
func (s Subgraph) Clone() Subgraph {
	c := Subgraph{
		Nodes: make([]*graph.Node, 0, len(s.Nodes)),
		Edges: make([]graph.Edge, len(s.Edges)),
	}
	for _, n := range s.Nodes {
		c.Nodes = append(c.Nodes, n.Clone())
	}
	copy(c.Edges, s.Edges)
	return c
}

// Delta is the set of changes that takes a live layout from one subgraph to
// the next. Updated elements are retained and keep their simulation state.
type Delta struct {
	NodesAdded   []graph.NodeID  `json:"nodes_added"`
	NodesUpdated []graph.NodeID  `json:"nodes_updated"`
	NodesRemoved []graph.NodeID  `json:"nodes_removed"`
	EdgesAdded   []graph.LinkKey `json:"edges_added"`
	EdgesUpdated []graph.LinkKey `json:"edges_updated"`
	EdgesRemoved []graph.LinkKey `json:"edges_removed"`
}

// Empty reports whether nothing is added or removed.
func (d Delta) Empty() bool {
	return len(d.NodesAdded) == 0 && len(d.NodesRemoved) == 0 &&
		len(d.EdgesAdded) == 0 && len(d.EdgesRemoved) == 0
}

// Diff compares two subgraphs by node id and by LinkKey. Added and updated
// entries follow next's order, removed entries follow previous's order.
func Diff(previous, next Subgraph) Delta {
	var d Delta

	prevNodes := make(map[graph.NodeID]bool, len(previous.Nodes))
	for _, n := range previous.Nodes {
		prevNodes[n.ID] = true
	}
	nextNodes := make(map[graph.NodeID]bool, len(next.Nodes))
	for _, n := range next.Nodes {
		if nextNodes[n.ID] {
			continue
		}
		nextNodes[n.ID] = true
		if prevNodes[n.ID] {
			d.NodesUpdated = append(d.NodesUpdated, n.ID)
		} else {
			d.NodesAdded = append(d.NodesAdded, n.ID)
		}
	}
	removed := make(map[graph.NodeID]bool)
	for _, n := range previous.Nodes {
		if nextNodes[n.ID] || removed[n.ID] {
			continue
		}
		removed[n.ID] = true
		d.NodesRemoved = append(d.NodesRemoved, n.ID)
	}

	prevLinks := linkSet(previous.Edges)
	nextLinks := make(map[graph.LinkKey]bool, len(next.Edges))
	for _, e := range next.Edges {
		k := e.Link()
		if nextLinks[k] {
			continue
		}
		nextLinks[k] = true
		if prevLinks[k] {
			d.EdgesUpdated = append(d.EdgesUpdated, k)
		} else {
			d.EdgesAdded = append(d.EdgesAdded, k)
		}
	}
	seen := make(map[graph.LinkKey]bool, len(previous.Edges))
	for _, e := range previous.Edges {
		k := e.Link()
		if seen[k] || nextLinks[k] {
			continue
		}
		seen[k] = true
		d.EdgesRemoved = append(d.EdgesRemoved, k)
	}

	return d
}

func linkSet(edges []graph.Edge) map[graph.LinkKey]bool {
	out := make(map[graph.LinkKey]bool, len(edges))
	for _, e := range edges {
		out[e.Link()] = true
	}
	return out
}
