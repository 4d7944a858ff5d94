package metrics

import (
	"errors"
	"time"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/scoring"
)

// RecordRanking records one ranking computation with its outcome.
func (r *Registry) RecordRanking(system string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
		var verr *scoring.ValidationError
		switch {
		case errors.As(err, &verr):
			r.ScoringErrors.WithLabelValues("missing_subscore").Inc()
		case errors.Is(err, scoring.ErrUnknownScoringSystem):
			r.ScoringErrors.WithLabelValues("unknown_system").Inc()
		default:
			r.ScoringErrors.WithLabelValues("other").Inc()
		}
	}
	r.RankingsTotal.WithLabelValues(system, status).Inc()
	if err == nil {
		r.RankingDuration.WithLabelValues(system).Observe(duration.Seconds())
	}
}

// RecordGraphBuild records one derived-graph construction.
func (r *Registry) RecordGraphBuild(edges, orphans int, duration time.Duration) {
	r.GraphBuildsTotal.Inc()
	r.GraphBuildDuration.Observe(duration.Seconds())
	r.GraphEdges.Observe(float64(edges))
	if orphans > 0 {
		r.OrphansObserved.Observe(float64(orphans))
	}
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
