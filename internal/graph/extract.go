package graph

// DefaultDepth is the number of hops shown around a selected node.
const DefaultDepth = 3

// Neighborhood is the bounded-depth induced subgraph around a center node.
type Neighborhood struct {
	Center NodeID
	// Depth maps every included node to its BFS distance from Center.
	Depth map[NodeID]int
	// Order lists included nodes in discovery order.
	Order []NodeID
	// Edges lists included edges in discovery order, unique by EdgeKey.
	Edges []Edge
}

// Has reports whether id is part of the neighborhood.
func (n Neighborhood) Has(id NodeID) bool {
	_, ok := n.Depth[id]
	return ok
}

// Empty reports whether nothing was extracted.
func (n Neighborhood) Empty() bool {
	return len(n.Order) == 0
}

// Extract walks the undirected adjacency of s breadth-first from center.
// Nodes up to maxDepth hops are included. Every edge incident on a node
// visited below maxDepth is included; nodes at maxDepth are not expanded,
// so edges solely between two of them are left out. Edges that reference an
// unknown node are skipped. A missing center yields an empty Neighborhood.
func Extract(s *Store, center NodeID, maxDepth int) Neighborhood {
	nb := Neighborhood{
		Center: center,
		Depth:  make(map[NodeID]int),
	}
	if !s.Has(center) {
		return nb
	}

	type item struct {
		id    NodeID
		level int
	}

	seen := make(map[EdgeKey]bool)
	nb.Depth[center] = 0
	nb.Order = append(nb.Order, center)
	queue := []item{{id: center, level: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.level >= maxDepth {
			continue
		}

		for _, e := range s.Incident(cur.id) {
			neighbor := e.Other(cur.id)
			if !s.Has(neighbor) {
				continue
			}
			if k := e.Key(); !seen[k] {
				seen[k] = true
				nb.Edges = append(nb.Edges, e)
			}
			if _, visited := nb.Depth[neighbor]; !visited {
				nb.Depth[neighbor] = cur.level + 1
				nb.Order = append(nb.Order, neighbor)
				queue = append(queue, item{id: neighbor, level: cur.level + 1})
			}
		}
	}

	return nb
}
