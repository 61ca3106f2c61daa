package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Outcome labels for Selections.
const (
	OutcomeSelected = "selected"
	OutcomeNotFound = "not_found"
	OutcomeEmpty    = "empty_graph"
)

var (
	// Selections counts select calls by outcome.
	Selections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cxgraph_selections_total",
			Help: "Total number of selection requests",
		},
		[]string{"outcome"},
	)

	// Deselections counts cleared selections.
	Deselections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cxgraph_deselections_total",
			Help: "Total number of cleared selections",
		},
	)

	// NodeChanges counts nodes entering and leaving the displayed subgraph.
	NodeChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cxgraph_node_changes_total",
			Help: "Nodes added to or removed from the displayed subgraph",
		},
		[]string{"change"},
	)

	// EdgeChanges counts links entering and leaving the displayed subgraph.
	EdgeChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cxgraph_edge_changes_total",
			Help: "Links added to or removed from the displayed subgraph",
		},
		[]string{"change"},
	)

	// DisplayedNodes tracks the size of the displayed subgraph.
	DisplayedNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cxgraph_displayed_nodes",
			Help: "Number of nodes in the displayed subgraph",
		},
	)

	// SelectDuration measures extract, reconcile and diff together.
	SelectDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cxgraph_select_duration_seconds",
			Help:    "Duration of a selection update in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		},
	)
)

// ObserveDelta records the size of one subgraph transition.
func ObserveDelta(nodesAdded, nodesRemoved, edgesAdded, edgesRemoved, displayed int) {
	NodeChanges.WithLabelValues("added").Add(float64(nodesAdded))
	NodeChanges.WithLabelValues("removed").Add(float64(nodesRemoved))
	EdgeChanges.WithLabelValues("added").Add(float64(edgesAdded))
	EdgeChanges.WithLabelValues("removed").Add(float64(edgesRemoved))
	DisplayedNodes.Set(float64(displayed))
}

// Snapshot renders every cxgraph metric from g as "name{labels} value" lines.
func Snapshot(g prometheus.Gatherer) ([]string, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "cxgraph_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			lines = append(lines, fmt.Sprintf("%s%s %s", mf.GetName(), labels(m), value(mf.GetType(), m)))
		}
	}
	sort.Strings(lines)
	return lines, nil
}

func labels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func value(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	}
	return "?"
}
