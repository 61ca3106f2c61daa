package graph

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tidwall/btree"
)

// BootstrapExtent bounds the random positions nodes receive at load.
const BootstrapExtent = 500.0

// ConstructionRow is one entry of the constructions table.
type ConstructionRow struct {
	ID       NodeID
	Form     string
	Encoded  any
	Examples []string
}

// RelationRow is one entry of the relations table, as given by the loader.
type RelationRow struct {
	Source    NodeID
	Target    NodeID
	Relation  string
	Direction string
}

// Store holds the full dataset. It is read-only once Build returns.
type Store struct {
	nodes    map[NodeID]*Node
	order    []NodeID
	edges    []Edge
	incident map[NodeID][]int
	ids      btree.Map[NodeID, int]
}

// Build normalizes the two input tables into a Store. Every bi-directional
// relation becomes two directed edges. Rows that cannot be interpreted are
// skipped and returned as warnings; they never fail the build.
func Build(constructions []ConstructionRow, relations []RelationRow, rnd *rand.Rand) (*Store, []error) {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Store{
		nodes:    make(map[NodeID]*Node, len(constructions)),
		order:    make([]NodeID, 0, len(constructions)),
		edges:    make([]Edge, 0, len(relations)),
		incident: make(map[NodeID][]int),
	}

	var warnings []error
	for _, c := range constructions {
		if c.ID == "" {
			warnings = append(warnings, fmt.Errorf("construction with empty id skipped"))
			continue
		}
		if _, dup := s.nodes[c.ID]; dup {
			warnings = append(warnings, fmt.Errorf("duplicate construction %s skipped", c.ID))
			continue
		}
		examples := c.Examples
		if examples == nil {
			examples = make([]string, 0)
		}
		s.nodes[c.ID] = &Node{
			ID:       c.ID,
			Name:     c.Form,
			Encoded:  c.Encoded,
			Examples: examples,
			X:        rnd.Float64() * BootstrapExtent,
			Y:        rnd.Float64() * BootstrapExtent,
		}
		s.ids.Set(c.ID, len(s.order))
		s.order = append(s.order, c.ID)
	}

	for _, r := range relations {
		rel, err := ParseRelation(r.Relation)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("relation %s -> %s skipped: %w", r.Source, r.Target, err))
			continue
		}
		dir, err := ParseDirection(r.Direction)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("relation %s -> %s skipped: %w", r.Source, r.Target, err))
			continue
		}

		s.addEdge(Edge{Source: r.Source, Target: r.Target, Relation: rel, Direction: dir})
		if dir == Bi {
			s.addEdge(Edge{Source: r.Target, Target: r.Source, Relation: rel, Direction: dir})
		}
	}

	return s, warnings
}

func (s *Store) addEdge(e Edge) {
	i := len(s.edges)
	s.edges = append(s.edges, e)
	s.incident[e.Source] = append(s.incident[e.Source], i)
	if e.Target != e.Source {
		s.incident[e.Target] = append(s.incident[e.Target], i)
	}
}

// Len returns the number of nodes.
func (s *Store) Len() int {
	return len(s.order)
}

// Has reports whether id names a construction.
func (s *Store) Has(id NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Node returns the construction with the given id.
func (s *Store) Node(id NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns all nodes in store order. Callers must not modify them.
func (s *Store) Nodes() []*Node {
	out := make([]*Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// First returns the first node in store order.
func (s *Store) First() (NodeID, bool) {
	if len(s.order) == 0 {
		return "", false
	}
	return s.order[0], true
}

// Edges returns a copy of every directed edge in ingest order.
func (s *Store) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Incident returns the edges touching id in either direction, in ingest order.
func (s *Store) Incident(id NodeID) []Edge {
	idx := s.incident[id]
	out := make([]Edge, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.edges[i])
	}
	return out
}

// Degree counts incident edges whose other endpoint is a known node.
func (s *Store) Degree(id NodeID) int {
	if !s.Has(id) {
		return 0
	}
	d := 0
	for _, i := range s.incident[id] {
		if s.Has(s.edges[i].Other(id)) {
			d++
		}
	}
	return d
}

// Connected returns the ids with degree of at least one, in store order.
func (s *Store) Connected() []NodeID {
	var out []NodeID
	for _, id := range s.order {
		if s.Degree(id) > 0 {
			out = append(out, id)
		}
	}
	return out
}

// IDs returns every id in ascending order.
func (s *Store) IDs() []NodeID {
	return s.Range("", 0)
}

// Range returns up to limit ids in ascending order starting at from.
// A limit of zero or less means no limit.
func (s *Store) Range(from NodeID, limit int) []NodeID {
	var out []NodeID
	s.ids.Ascend(from, func(id NodeID, _ int) bool {
		out = append(out, id)
		return limit <= 0 || len(out) < limit
	})
	return out
}
