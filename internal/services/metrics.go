package services

import (
	"github.com/emmanueladavize43/Gemini-cupid/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors
type Metrics struct {
	swipes   *prometheus.CounterVec
	matches  *prometheus.CounterVec
	undos    prometheus.Counter
	deckSize prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when it is not nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		swipes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cupid_swipes_total",
				Help: "Total number of swipe decisions",
			},
			[]string{"decision"},
		),
		matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cupid_matches_total",
				Help: "Total number of matches created",
			},
			[]string{"source"},
		),
		undos: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cupid_undos_total",
				Help: "Total number of swipes reverted by undo",
			},
		),
		deckSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cupid_deck_size",
				Help: "Number of candidates in the most recently built deck",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.swipes, m.matches, m.undos, m.deckSize)
	}
	return m
}

// RecordSwipe counts a swipe decision
func (m *Metrics) RecordSwipe(d models.Decision) {
	if m == nil {
		return
	}
	m.swipes.WithLabelValues(d.String()).Inc()
}

// RecordMatch counts a newly created match by how it came about
func (m *Metrics) RecordMatch(source string) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(source).Inc()
}

// RecordUndo counts a reverted swipe
func (m *Metrics) RecordUndo() {
	if m == nil {
		return
	}
	m.undos.Inc()
}

// ObserveDeck records the current deck size
func (m *Metrics) ObserveDeck(size int) {
	if m == nil {
		return
	}
	m.deckSize.Set(float64(size))
}
