// Package ranking orders critical vulnerabilities by composite score and
// assigns contiguous priority ranks. Ranking is a pure function: the same
// input always yields the same order and ranks, and priority_rank is derived
// on every call rather than persisted.
package ranking

import (
	"sort"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/scoring"
)

// TieBreak selects how vulnerabilities with equal composite scores are
// ordered. The doctrinally expected rule is impact-first, but the rule is
// configurable rather than hard-coded.
type TieBreak int

const (
	// TieBreakImpact places the higher impact_on_cog first; remaining ties
	// keep input order. This is the default.
	TieBreakImpact TieBreak = iota
	// TieBreakInputOrder keeps input order for all ties.
	TieBreakInputOrder
)

// Option configures a ranking call.
type Option func(*options)

type options struct {
	tieBreak TieBreak
}

// WithTieBreak overrides the tie-break rule.
func WithTieBreak(tb TieBreak) Option {
	return func(o *options) { o.tieBreak = tb }
}

// RankedVulnerability pairs a vulnerability with its derived score, severity,
// and 1-based priority rank.
type RankedVulnerability struct {
	Vulnerability  cog.CriticalVulnerability `json:"vulnerability"`
	CompositeScore int                       `json:"composite_score"`
	Severity       scoring.Severity          `json:"severity"`
	PriorityRank   int                       `json:"priority_rank"`
}

// Rank scores every vulnerability, sorts descending by composite score, and
// assigns priority_rank 1..N. Ties fall to the configured tie-break rule;
// the sort is stable, so input order is the final arbiter. A vulnerability
// with missing sub-scores or an unknown scoring system aborts the whole call
// with no partial output.
func Rank(vulns []cog.CriticalVulnerability, system cog.ScoringSystem, opts ...Option) ([]RankedVulnerability, error) {
	o := options{tieBreak: TieBreakImpact}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := scoring.MaxComposite(system); err != nil {
		return nil, err
	}

	ranked := make([]RankedVulnerability, len(vulns))
	for i := range vulns {
		composite, sev, err := scoring.ScoreAndBand(&vulns[i], system)
		if err != nil {
			return nil, err
		}
		ranked[i] = RankedVulnerability{
			Vulnerability:  vulns[i],
			CompositeScore: composite,
			Severity:       sev,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CompositeScore != ranked[j].CompositeScore {
			return ranked[i].CompositeScore > ranked[j].CompositeScore
		}
		if o.tieBreak == TieBreakImpact {
			return ranked[i].Vulnerability.Scoring.ImpactOnCOG > ranked[j].Vulnerability.Scoring.ImpactOnCOG
		}
		return false
	})

	for i := range ranked {
		ranked[i].PriorityRank = i + 1
	}

	return ranked, nil
}
