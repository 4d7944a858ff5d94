// Package scoring computes composite vulnerability scores and severity bands.
// The composite is always the plain sum of the three analyst sub-scores; the
// scoring system changes only the ceiling used for severity banding, never
// the arithmetic, so rankings are identical under both regimes.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
)

const (
	// MinSubScore and MaxSubScore bound each analyst judgment.
	MinSubScore = 1
	MaxSubScore = 5

	// MaxCompositeLinear is the ceiling under the linear system (3 x 5).
	MaxCompositeLinear = 15
	// MaxCompositeLogarithmic is the ceiling under the logarithmic system,
	// where the 1-5 inputs are ordinal tiers on a faster-growing scale.
	MaxCompositeLogarithmic = 36
)

// ErrUnknownScoringSystem is returned for unrecognised scoring_system values.
// The system governs the severity ceiling, so falling back to a default would
// silently change severity classification.
var ErrUnknownScoringSystem = errors.New("unknown scoring system")

// ValidationError reports missing or out-of-range sub-scores. A fabricated
// zero would silently understate a vulnerability's priority, so scoring
// rejects instead of defaulting.
type ValidationError struct {
	VulnerabilityID string
	Fields          []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("vulnerability %s: sub-scores missing or out of range [%d,%d]: %s",
		e.VulnerabilityID, MinSubScore, MaxSubScore, strings.Join(e.Fields, ", "))
}

// Score computes the composite score for one vulnerability: the sum of
// impact_on_cog, attainability, and follow_up_potential. Every sub-score must
// lie in [1,5]; anything else (including the unset zero value) fails with a
// *ValidationError.
func Score(v *cog.CriticalVulnerability) (int, error) {
	s := v.Scoring

	var missing []string
	if s.ImpactOnCOG < MinSubScore || s.ImpactOnCOG > MaxSubScore {
		missing = append(missing, "impact_on_cog")
	}
	if s.Attainability < MinSubScore || s.Attainability > MaxSubScore {
		missing = append(missing, "attainability")
	}
	if s.FollowUpPotential < MinSubScore || s.FollowUpPotential > MaxSubScore {
		missing = append(missing, "follow_up_potential")
	}
	if len(missing) > 0 {
		return 0, &ValidationError{VulnerabilityID: v.ID, Fields: missing}
	}

	return s.ImpactOnCOG + s.Attainability + s.FollowUpPotential, nil
}

// MaxComposite returns the severity ceiling for a scoring system.
func MaxComposite(system cog.ScoringSystem) (int, error) {
	switch system {
	case cog.ScoringLinear:
		return MaxCompositeLinear, nil
	case cog.ScoringLogarithmic:
		return MaxCompositeLogarithmic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScoringSystem, system)
	}
}
