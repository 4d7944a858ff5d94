package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.RankingsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cog_rankings_total",
			Help: "Total number of vulnerability ranking computations",
		},
		[]string{"scoring_system", "status"},
	)

	r.RankingDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cog_ranking_duration_seconds",
			Help:    "Vulnerability ranking duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
		[]string{"scoring_system"},
	)

	r.GraphBuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cog_graph_builds_total",
			Help: "Total number of derived-graph constructions",
		},
	)

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cog_graph_build_duration_seconds",
			Help:    "Derived-graph construction duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cog_graph_edges",
			Help:    "Number of structural edges per derived graph",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000},
		},
	)

	r.OrphansObserved = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cog_orphans_observed",
			Help:    "Orphaned entities excluded per hierarchy resolution",
			Buckets: []float64{1, 5, 10, 50, 100},
		},
	)

	r.ScoringErrors = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cog_scoring_errors_total",
			Help: "Scoring failures by kind (missing sub-score, unknown system)",
		},
		[]string{"kind"},
	)
}
