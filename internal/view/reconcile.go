package view

import (
	"math/rand"

	"github.com/msalah0e/cxgraph/internal/graph"
)

// Position is a point on the layout canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Canvas bounds the coordinates given to newly appearing nodes.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultCanvas matches the bootstrap extent of the store.
var DefaultCanvas = Canvas{Width: graph.BootstrapExtent, Height: graph.BootstrapExtent}

// Random returns a point uniformly inside the canvas.
func (c Canvas) Random(rnd *rand.Rand) Position {
	return Position{X: rnd.Float64() * c.Width, Y: rnd.Float64() * c.Height}
}

// Reconcile attaches positions to the nodes named by ids. A node already on
// screen keeps its previous coordinates and loses any pin left by a drag so
// the layout can settle it again. Every other node starts at a random point
// inside canvas. The returned nodes are copies; store nodes are left as is.
// Ids unknown to the store are dropped.
func Reconcile(previous map[graph.NodeID]Position, ids []graph.NodeID, store *graph.Store, canvas Canvas, rnd *rand.Rand) []*graph.Node {
	out := make([]*graph.Node, 0, len(ids))
	for _, id := range ids {
		src, ok := store.Node(id)
		if !ok {
			continue
		}
		n := src.Clone()
		n.Unpin()
		if pos, kept := previous[id]; kept {
			n.X, n.Y = pos.X, pos.Y
		} else {
			p := canvas.Random(rnd)
			n.X, n.Y = p.X, p.Y
		}
		out = append(out, n)
	}
	return out
}
