// Package services – engine metrics.
//
// Prometheus collectors for the matching engine itself (as opposed to the
// HTTP-level collectors in internal/http/middleware). Cardinality is kept
// deliberately tiny: one outcome label on the pass counter, nothing else.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// matchPasses counts completed matching passes by outcome:
	// "decided", "no_match", "duplicate", or "error".
	matchPasses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_passes_total",
			Help: "Total number of matching passes by outcome.",
		},
		[]string{"outcome"},
	)

	// decisionsCreated counts newly persisted match decisions.
	decisionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "match_decisions_created_total",
			Help: "Total number of newly persisted match decisions.",
		},
	)

	// topScores records the composite score of the best candidate of each
	// pass that had at least one candidate.
	topScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_top_candidate_score",
			Help:    "Composite score of the top candidate per matching pass.",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
)

func init() {
	prometheus.MustRegister(matchPasses, decisionsCreated, topScores)
}
