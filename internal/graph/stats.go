package graph

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Stats holds summary counts.
type Stats struct {
	Nodes      int
	Edges      int
	Connected  int
	Isolated   int
	Components int
	Dangling   int
	ByRelation map[Relation]int
}

// Stats returns summary statistics. Components counts connected components
// of the undirected graph over known nodes, isolated nodes included.
func (s *Store) Stats() Stats {
	st := Stats{
		Nodes:      len(s.order),
		Edges:      len(s.edges),
		ByRelation: make(map[Relation]int, len(Relations)),
	}

	ug := simple.NewUndirectedGraph()
	index := make(map[NodeID]int64, len(s.order))
	for i, id := range s.order {
		index[id] = int64(i)
		ug.AddNode(simple.Node(int64(i)))
	}

	for _, e := range s.edges {
		st.ByRelation[e.Relation]++
		from, okFrom := index[e.Source]
		to, okTo := index[e.Target]
		if !okFrom || !okTo {
			st.Dangling++
			continue
		}
		// simple graphs reject self loops
		if from == to {
			continue
		}
		ug.SetEdge(ug.NewEdge(simple.Node(from), simple.Node(to)))
	}

	st.Connected = len(s.Connected())
	st.Isolated = st.Nodes - st.Connected
	st.Components = len(topo.ConnectedComponents(ug))
	return st
}
