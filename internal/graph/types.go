package graph

import (
	"fmt"
	"strings"
)

// NodeID identifies a construction.
type NodeID string

// Relation is the semantic category of an edge.
type Relation string

const (
	Polysemi      Relation = "polysemi"
	Instantiation Relation = "instantiation"
	Subpart       Relation = "subpart"
)

// Relations lists every known relation in legend order.
var Relations = []Relation{Polysemi, Instantiation, Subpart}

// ParseRelation maps an input relation name to a Relation.
func ParseRelation(s string) (Relation, error) {
	switch r := Relation(strings.ToLower(strings.TrimSpace(s))); r {
	case Polysemi, Instantiation, Subpart:
		return r, nil
	}
	return "", fmt.Errorf("unknown relation: %q", s)
}

// Direction is display metadata only; traversal never consults it.
type Direction string

const (
	Uni Direction = "uni-directional"
	Bi  Direction = "bi-directional"
)

// ParseDirection maps an input direction. Empty means uni-directional.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "", Uni:
		return Uni, nil
	case Bi:
		return Bi, nil
	}
	return "", fmt.Errorf("unknown direction: %q", s)
}

// Node is a construction. X, Y and the pins are simulation state.
type Node struct {
	ID       NodeID   `json:"id"`
	Name     string   `json:"name"`
	Encoded  any      `json:"encoded,omitempty"`
	Examples []string `json:"examples"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	PinnedX  *float64 `json:"fx,omitempty"`
	PinnedY  *float64 `json:"fy,omitempty"`
}

// Clone returns a copy that can carry its own position.
func (n *Node) Clone() *Node {
	c := *n
	if n.PinnedX != nil {
		x := *n.PinnedX
		c.PinnedX = &x
	}
	if n.PinnedY != nil {
		y := *n.PinnedY
		c.PinnedY = &y
	}
	return &c
}

// Pinned reports whether the node is held in place by a drag.
func (n *Node) Pinned() bool {
	return n.PinnedX != nil || n.PinnedY != nil
}

// Unpin clears both pinned coordinates.
func (n *Node) Unpin() {
	n.PinnedX = nil
	n.PinnedY = nil
}

// Edge is a directed relation record.
type Edge struct {
	Source    NodeID    `json:"source"`
	Target    NodeID    `json:"target"`
	Relation  Relation  `json:"relation"`
	Direction Direction `json:"direction"`
}

// Key returns the traversal identity of the edge.
func (e Edge) Key() EdgeKey {
	return EdgeKey{Source: e.Source, Target: e.Target, Relation: e.Relation, Direction: e.Direction}
}

// Link returns the display identity of the edge.
func (e Edge) Link() LinkKey {
	return LinkKey{Source: e.Source, Target: e.Target, Relation: e.Relation}
}

// Other returns the endpoint opposite id.
func (e Edge) Other(id NodeID) NodeID {
	if e.Source == id {
		return e.Target
	}
	return e.Source
}

func (e Edge) String() string {
	return fmt.Sprintf("%s --%s--> %s", e.Source, e.Relation, e.Target)
}

// EdgeKey deduplicates edges during extraction.
type EdgeKey struct {
	Source    NodeID
	Target    NodeID
	Relation  Relation
	Direction Direction
}

// LinkKey identifies a rendered line. Direction is left out so a display may
// collapse a direction-flipped pair.
type LinkKey struct {
	Source   NodeID   `json:"source"`
	Target   NodeID   `json:"target"`
	Relation Relation `json:"relation"`
}

func (k LinkKey) String() string {
	return fmt.Sprintf("%s-%s-%s", k.Source, k.Target, k.Relation)
}
