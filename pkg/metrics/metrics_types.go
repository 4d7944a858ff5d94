// Package metrics exposes Prometheus metrics for the analysis workbench:
// engine computations (ranking, graph derivation) and the HTTP surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Registry holds all metric collectors behind one Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	// Engine metrics
	RankingsTotal      *prometheus.CounterVec
	RankingDuration    *prometheus.HistogramVec
	GraphBuildsTotal   prometheus.Counter
	GraphBuildDuration prometheus.Histogram
	GraphEdges         prometheus.Histogram
	OrphansObserved    prometheus.Histogram
	ScoringErrors      *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initEngineMetrics()
	r.initHTTPMetrics()
	return r
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gather exposes the underlying registry's Gather, mainly for tests.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	return r.registry.Gather()
}
