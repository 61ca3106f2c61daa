package view

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/msalah0e/cxgraph/internal/graph"
	"github.com/msalah0e/cxgraph/internal/metrics"
)

var (
	// ErrNotFound is returned when a selection target is not in the store.
	ErrNotFound = errors.New("construction not found")
	// ErrEmptyGraph is returned when there is nothing to select.
	ErrEmptyGraph = errors.New("graph is empty")
)

// Frame is what a renderer receives after every selection change.
type Frame struct {
	Displayed Subgraph     `json:"displayed"`
	Selected  graph.NodeID `json:"selected,omitempty"`
	Delta     Delta        `json:"delta"`
}

// HasSelection reports whether a node is selected in this frame.
func (f Frame) HasSelection() bool {
	return f.Selected != ""
}

// Renderer materializes frames. It must not change node identities.
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

func (f RendererFunc) Render(fr Frame) { f(fr) }

// Options configure a Controller.
type Options struct {
	// Depth is the hop limit. Zero means graph.DefaultDepth; a negative
	// value shows the selected node alone.
	Depth  int
	Canvas Canvas
	Rand   *rand.Rand
}

// Controller owns the displayed subgraph and the selection state. The store
// is a read-only dependency.
type Controller struct {
	mu        sync.Mutex
	store     *graph.Store
	depth     int
	canvas    Canvas
	rnd       *rand.Rand
	displayed Subgraph
	selected  graph.NodeID
	renderers []Renderer
}

// NewController returns an unselected Controller over store.
func NewController(store *graph.Store, opts Options) *Controller {
	switch {
	case opts.Depth == 0:
		opts.Depth = graph.DefaultDepth
	case opts.Depth < 0:
		opts.Depth = 0
	}
	if opts.Canvas.Width <= 0 || opts.Canvas.Height <= 0 {
		opts.Canvas = DefaultCanvas
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		store:  store,
		depth:  opts.Depth,
		canvas: opts.Canvas,
		rnd:    opts.Rand,
	}
}

// Subscribe registers r to receive a frame after every change.
func (c *Controller) Subscribe(r Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderers = append(c.renderers, r)
}

// Store returns the underlying graph store.
func (c *Controller) Store() *graph.Store {
	return c.store
}

// Selected returns the selected id, if any.
func (c *Controller) Selected() (graph.NodeID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.selected != ""
}

// Displayed returns a snapshot of the displayed subgraph.
func (c *Controller) Displayed() Subgraph {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayed.Clone()
}

// Select re-centers the display on id. An unknown id leaves everything as it
// was and returns ErrNotFound.
func (c *Controller) Select(id graph.NodeID) (Delta, error) {
	c.mu.Lock()
	if !c.store.Has(id) {
		c.mu.Unlock()
		metrics.Selections.WithLabelValues(metrics.OutcomeNotFound).Inc()
		return Delta{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	start := time.Now()
	nb := graph.Extract(c.store, id, c.depth)
	next := Subgraph{
		Nodes: Reconcile(c.displayed.Positions(), nb.Order, c.store, c.canvas, c.rnd),
		Edges: nb.Edges,
	}
	delta := Diff(c.displayed, next)
	c.displayed = next
	c.selected = id
	metrics.SelectDuration.Observe(time.Since(start).Seconds())

	metrics.Selections.WithLabelValues(metrics.OutcomeSelected).Inc()
	metrics.ObserveDelta(len(delta.NodesAdded), len(delta.NodesRemoved),
		len(delta.EdgesAdded), len(delta.EdgesRemoved), len(next.Nodes))

	frame, renderers := c.frameLocked(delta)
	c.mu.Unlock()

	notify(renderers, frame)
	return delta, nil
}

// Deselect clears the selection. The displayed subgraph stays on screen.
func (c *Controller) Deselect() {
	c.mu.Lock()
	c.selected = ""
	frame, renderers := c.frameLocked(Delta{})
	c.mu.Unlock()

	metrics.Deselections.Inc()
	notify(renderers, frame)
}

// SelectRandomConnected selects a random node that has at least one edge,
// falling back to the first node of the store. An empty store clears the
// selection and returns ErrEmptyGraph.
func (c *Controller) SelectRandomConnected() (graph.NodeID, Delta, error) {
	c.mu.Lock()
	id, ok := PickConnected(c.store, c.rnd)
	c.mu.Unlock()

	if !ok {
		metrics.Selections.WithLabelValues(metrics.OutcomeEmpty).Inc()
		c.Deselect()
		return "", Delta{}, ErrEmptyGraph
	}
	delta, err := c.Select(id)
	return id, delta, err
}

// PickConnected chooses uniformly among nodes with degree of at least one.
// Without any, it returns the first node in store order.
func PickConnected(store *graph.Store, rnd *rand.Rand) (graph.NodeID, bool) {
	connected := store.Connected()
	if len(connected) > 0 {
		return connected[rnd.Intn(len(connected))], true
	}
	return store.First()
}

// Drag moves a displayed node and pins it there, as a renderer does while
// the user drags it.
func (c *Controller) Drag(id graph.NodeID, x, y float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.displayed.Node(id)
	if !ok {
		return fmt.Errorf("%w: %s is not displayed", ErrNotFound, id)
	}
	n.X, n.Y = x, y
	n.PinnedX, n.PinnedY = &x, &y
	return nil
}

// Release unpins a dragged node, leaving it where it was dropped.
func (c *Controller) Release(id graph.NodeID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.displayed.Node(id)
	if !ok {
		return fmt.Errorf("%w: %s is not displayed", ErrNotFound, id)
	}
	n.Unpin()
	return nil
}

// Frame returns the current state as a renderer would see it, with an
// empty delta.
func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, _ := c.frameLocked(Delta{})
	return f
}

func (c *Controller) frameLocked(delta Delta) (Frame, []Renderer) {
	renderers := make([]Renderer, len(c.renderers))
	copy(renderers, c.renderers)
	return Frame{Displayed: c.displayed.Clone(), Selected: c.selected, Delta: delta}, renderers
}

func notify(renderers []Renderer, f Frame) {
	for _, r := range renderers {
		r.Render(f)
	}
}
