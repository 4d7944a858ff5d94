package engine

import (
	"errors"
	"testing"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/logging"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/metrics"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/ranking"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/scoring"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/templates"
)

func TestEngineRank(t *testing.T) {
	e := New(logging.NopLogger{}, metrics.NewRegistry())

	a, err := templates.Instantiate("adversary-cyber")
	if err != nil {
		t.Fatalf("template fixture failed: %v", err)
	}

	ranked, err := e.Rank(a)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(ranked) != len(a.Vulnerabilities) {
		t.Errorf("got %d ranked, want %d", len(ranked), len(a.Vulnerabilities))
	}
	if ranked[0].PriorityRank != 1 {
		t.Errorf("top rank = %d, want 1", ranked[0].PriorityRank)
	}
}

func TestEngineRankPropagatesErrors(t *testing.T) {
	e := New(nil, nil)

	a := cog.NewAnalysis("Unscored", cog.ScoringLinear)
	a.Vulnerabilities = []cog.CriticalVulnerability{
		{ID: "vuln-1", RequirementID: "req-1", Vulnerability: "No scores"},
	}

	_, err := e.Rank(a)
	var verr *scoring.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *scoring.ValidationError, got %v", err)
	}
}

func TestEngineRankOptions(t *testing.T) {
	e := New(nil, nil)

	a := cog.NewAnalysis("Tied", cog.ScoringLinear)
	a.Vulnerabilities = []cog.CriticalVulnerability{
		{ID: "low-impact", RequirementID: "r", Vulnerability: "A",
			Scoring: cog.VulnerabilityScoring{ImpactOnCOG: 3, Attainability: 4, FollowUpPotential: 4}},
		{ID: "high-impact", RequirementID: "r", Vulnerability: "B",
			Scoring: cog.VulnerabilityScoring{ImpactOnCOG: 5, Attainability: 3, FollowUpPotential: 3}},
	}

	ranked, err := e.Rank(a, ranking.WithTieBreak(ranking.TieBreakInputOrder))
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if ranked[0].Vulnerability.ID != "low-impact" {
		t.Errorf("input-order tie-break ignored: top = %s", ranked[0].Vulnerability.ID)
	}
}

func TestEngineBuildGraph(t *testing.T) {
	e := New(logging.NopLogger{}, metrics.NewRegistry())

	a, err := templates.Instantiate("adversary-cyber")
	if err != nil {
		t.Fatalf("template fixture failed: %v", err)
	}

	result := e.BuildGraph(a, 5)
	if result.Stats.EdgeCount != len(result.Edges) {
		t.Errorf("Stats.EdgeCount = %d, edges = %d", result.Stats.EdgeCount, len(result.Edges))
	}
	if result.Orphans != 0 {
		t.Errorf("template produced %d orphans", result.Orphans)
	}
	if len(result.TopNodes) == 0 || len(result.TopNodes) > 5 {
		t.Errorf("TopNodes length = %d", len(result.TopNodes))
	}

	sum := 0
	for _, d := range result.Centrality {
		sum += d
	}
	if sum != 2*len(result.Edges) {
		t.Errorf("degree sum = %d, want %d", sum, 2*len(result.Edges))
	}
}

func TestEngineBuildGraphReportsOrphans(t *testing.T) {
	e := New(nil, nil)

	a := cog.NewAnalysis("Orphaned", cog.ScoringLinear)
	a.CentersOfGravity = []cog.CenterOfGravity{
		{ID: "cog-1", ActorCategory: cog.ActorAdversary, Domain: cog.DomainMilitary, Description: "Fixture"},
	}
	a.Vulnerabilities = []cog.CriticalVulnerability{
		{ID: "vuln-1", RequirementID: "req-missing", Vulnerability: "Dangling"},
	}

	result := e.BuildGraph(a, 10)
	if len(result.Edges) != 0 {
		t.Errorf("got %d edges, want 0", len(result.Edges))
	}
	if result.Orphans != 1 {
		t.Errorf("Orphans = %d, want 1", result.Orphans)
	}
}
