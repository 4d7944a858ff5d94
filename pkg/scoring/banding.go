package scoring

import "github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"

// Severity is the qualitative tier derived from a composite score.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Banding thresholds as a fraction of the regime ceiling.
const (
	criticalThreshold = 0.80
	highThreshold     = 0.60
	mediumThreshold   = 0.40
)

// Band buckets a composite score into one of four severity tiers by its
// percentage of the regime's ceiling: >=80% critical, >=60% high,
// >=40% medium, below that low.
func Band(composite int, system cog.ScoringSystem) (Severity, error) {
	ceiling, err := MaxComposite(system)
	if err != nil {
		return "", err
	}

	pct := float64(composite) / float64(ceiling)
	switch {
	case pct >= criticalThreshold:
		return SeverityCritical, nil
	case pct >= highThreshold:
		return SeverityHigh, nil
	case pct >= mediumThreshold:
		return SeverityMedium, nil
	default:
		return SeverityLow, nil
	}
}

// ScoreAndBand computes the composite score and its severity tier in one call.
func ScoreAndBand(v *cog.CriticalVulnerability, system cog.ScoringSystem) (int, Severity, error) {
	// Validate the system first so a malformed regime fails fast even when
	// the vulnerability itself is unscored.
	if _, err := MaxComposite(system); err != nil {
		return 0, "", err
	}
	composite, err := Score(v)
	if err != nil {
		return 0, "", err
	}
	sev, err := Band(composite, system)
	if err != nil {
		return 0, "", err
	}
	return composite, sev, nil
}
