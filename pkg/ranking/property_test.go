package ranking

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
)

// genScoredVulns produces slices of fully-scored vulnerabilities with
// sub-scores in the valid [1,5] range.
func genScoredVulns() gopter.Gen {
	genTriple := gopter.CombineGens(
		gen.IntRange(1, 5),
		gen.IntRange(1, 5),
		gen.IntRange(1, 5),
	)
	return gen.SliceOf(genTriple).Map(func(triples [][]interface{}) []cog.CriticalVulnerability {
		vulns := make([]cog.CriticalVulnerability, len(triples))
		for i, tr := range triples {
			vulns[i] = cog.CriticalVulnerability{
				ID:            fmt.Sprintf("vuln-%d", i),
				RequirementID: "req-1",
				Vulnerability: fmt.Sprintf("Weakness %d", i),
				Scoring: cog.VulnerabilityScoring{
					ImpactOnCOG:       tr[0].(int),
					Attainability:     tr[1].(int),
					FollowUpPotential: tr[2].(int),
				},
			}
		}
		return vulns
	})
}

// TestRankingProperties verifies invariants that must hold for every
// fully-scored input, under both scoring regimes.
func TestRankingProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	systems := []cog.ScoringSystem{cog.ScoringLinear, cog.ScoringLogarithmic}

	properties.Property("ranks are contiguous 1..N", prop.ForAll(
		func(vulns []cog.CriticalVulnerability) bool {
			for _, system := range systems {
				ranked, err := Rank(vulns, system)
				if err != nil {
					return false
				}
				if len(ranked) != len(vulns) {
					return false
				}
				for i := range ranked {
					if ranked[i].PriorityRank != i+1 {
						return false
					}
				}
			}
			return true
		},
		genScoredVulns(),
	))

	properties.Property("composite scores are non-increasing", prop.ForAll(
		func(vulns []cog.CriticalVulnerability) bool {
			ranked, err := Rank(vulns, cog.ScoringLinear)
			if err != nil {
				return false
			}
			for i := 1; i < len(ranked); i++ {
				if ranked[i].CompositeScore > ranked[i-1].CompositeScore {
					return false
				}
			}
			return true
		},
		genScoredVulns(),
	))

	properties.Property("order is identical under both regimes", prop.ForAll(
		func(vulns []cog.CriticalVulnerability) bool {
			linear, err := Rank(vulns, cog.ScoringLinear)
			if err != nil {
				return false
			}
			log, err := Rank(vulns, cog.ScoringLogarithmic)
			if err != nil {
				return false
			}
			for i := range linear {
				if linear[i].Vulnerability.ID != log[i].Vulnerability.ID {
					return false
				}
				if linear[i].CompositeScore != log[i].CompositeScore {
					return false
				}
			}
			return true
		},
		genScoredVulns(),
	))

	properties.Property("ranking never mutates the input", prop.ForAll(
		func(vulns []cog.CriticalVulnerability) bool {
			before := make([]string, len(vulns))
			for i, v := range vulns {
				before[i] = v.ID
			}
			if _, err := Rank(vulns, cog.ScoringLinear); err != nil {
				return false
			}
			for i, v := range vulns {
				if v.ID != before[i] {
					return false
				}
			}
			return true
		},
		genScoredVulns(),
	))

	properties.TestingRun(t)
}
