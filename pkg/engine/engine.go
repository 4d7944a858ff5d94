// Package engine bundles the pure analysis components (hierarchy resolution,
// scoring, ranking, graph derivation) behind one instrumented facade shared
// by the API server, TUI, and CLI. The engine holds no document state; every
// call operates on the snapshot it is given.
package engine

import (
	"time"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/graph"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/hierarchy"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/logging"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/metrics"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/ranking"
)

// Engine instruments the pure analysis functions with logging and metrics.
type Engine struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates an engine. Either dependency may be nil-equivalent
// (logging.NopLogger, metrics ignored when nil).
func New(logger logging.Logger, reg *metrics.Registry) *Engine {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Engine{logger: logger, metrics: reg}
}

// Rank computes the prioritized vulnerability list for an analysis.
func (e *Engine) Rank(a *cog.COGAnalysis, opts ...ranking.Option) ([]ranking.RankedVulnerability, error) {
	start := time.Now()
	ranked, err := ranking.Rank(a.Vulnerabilities, a.ScoringSystem, opts...)
	elapsed := time.Since(start)

	if e.metrics != nil {
		e.metrics.RecordRanking(string(a.ScoringSystem), err, elapsed)
	}
	if err != nil {
		e.logger.Warn("ranking failed",
			logging.AnalysisID(a.ID),
			logging.Error(err))
		return nil, err
	}

	e.logger.Debug("ranking computed",
		logging.AnalysisID(a.ID),
		logging.Count(len(ranked)),
		logging.Latency(elapsed))
	return ranked, nil
}

// GraphResult is the derived network for one analysis.
type GraphResult struct {
	Edges      []graph.Edge       `json:"edges"`
	Centrality map[string]int     `json:"centrality"`
	TopNodes   []graph.RankedNode `json:"top_nodes"`
	Stats      graph.Stats        `json:"stats"`
	Orphans    int                `json:"orphans"`
}

// BuildGraph derives the edge list and degree centrality for an analysis.
// topN limits the ranked node list (0 means no top-node list).
func (e *Engine) BuildGraph(a *cog.COGAnalysis, topN int) *GraphResult {
	start := time.Now()
	edges := graph.BuildEdges(a)
	centrality := graph.DegreeCentrality(edges)
	elapsed := time.Since(start)

	orphans := hierarchy.NewResolver(a).Orphans().Total()
	if e.metrics != nil {
		e.metrics.RecordGraphBuild(len(edges), orphans, elapsed)
	}
	if orphans > 0 {
		e.logger.Debug("orphaned entities excluded from graph",
			logging.AnalysisID(a.ID),
			logging.OrphanCount(orphans))
	}

	return &GraphResult{
		Edges:      edges,
		Centrality: centrality,
		TopNodes:   graph.TopNodes(centrality, topN),
		Stats:      graph.ComputeStats(edges),
		Orphans:    orphans,
	}
}
