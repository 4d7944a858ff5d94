package scoring

import (
	"errors"
	"testing"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
)

func vuln(impact, attain, followup int) *cog.CriticalVulnerability {
	return &cog.CriticalVulnerability{
		ID:            "vuln-1",
		RequirementID: "req-1",
		Vulnerability: "Exposed management interface",
		Scoring: cog.VulnerabilityScoring{
			ImpactOnCOG:       impact,
			Attainability:     attain,
			FollowUpPotential: followup,
		},
	}
}

func TestScoreIsPlainSum(t *testing.T) {
	got, err := Score(vuln(5, 4, 5))
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if got != 14 {
		t.Errorf("Score(5,4,5) = %d, want 14", got)
	}
}

func TestScoreBounds(t *testing.T) {
	tests := []struct {
		name                    string
		impact, attain, followup int
		wantFields              []string
	}{
		{"all minimum", 1, 1, 1, nil},
		{"all maximum", 5, 5, 5, nil},
		{"unset impact", 0, 3, 3, []string{"impact_on_cog"}},
		{"negative attainability", 3, -1, 3, []string{"attainability"}},
		{"follow-up above ceiling", 3, 3, 6, []string{"follow_up_potential"}},
		{"all unset", 0, 0, 0, []string{"impact_on_cog", "attainability", "follow_up_potential"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(vuln(tt.impact, tt.attain, tt.followup))
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Score failed: %v", err)
				}
				if want := tt.impact + tt.attain + tt.followup; got != want {
					t.Errorf("Score = %d, want %d", got, want)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.VulnerabilityID != "vuln-1" {
				t.Errorf("VulnerabilityID = %q, want vuln-1", verr.VulnerabilityID)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("Fields = %v, want %v", verr.Fields, tt.wantFields)
			}
			for i, f := range tt.wantFields {
				if verr.Fields[i] != f {
					t.Errorf("Fields[%d] = %q, want %q", i, verr.Fields[i], f)
				}
			}
		})
	}
}

// The composite never changes between regimes; only the banding ceiling does.
func TestCompositeIdenticalAcrossRegimes(t *testing.T) {
	v := vuln(5, 4, 5)

	linear, _, err := ScoreAndBand(v, cog.ScoringLinear)
	if err != nil {
		t.Fatalf("linear ScoreAndBand failed: %v", err)
	}
	log, _, err := ScoreAndBand(v, cog.ScoringLogarithmic)
	if err != nil {
		t.Fatalf("logarithmic ScoreAndBand failed: %v", err)
	}

	if linear != 14 || log != 14 {
		t.Errorf("composites = %d (linear), %d (logarithmic), want 14 for both", linear, log)
	}
}

func TestMaxComposite(t *testing.T) {
	if got, _ := MaxComposite(cog.ScoringLinear); got != 15 {
		t.Errorf("linear ceiling = %d, want 15", got)
	}
	if got, _ := MaxComposite(cog.ScoringLogarithmic); got != 36 {
		t.Errorf("logarithmic ceiling = %d, want 36", got)
	}
	if _, err := MaxComposite("quadratic"); !errors.Is(err, ErrUnknownScoringSystem) {
		t.Errorf("expected ErrUnknownScoringSystem, got %v", err)
	}
}

func TestBandThresholds(t *testing.T) {
	tests := []struct {
		composite int
		system    cog.ScoringSystem
		want      Severity
	}{
		// Linear ceiling 15: thresholds at 12, 9, 6.
		{15, cog.ScoringLinear, SeverityCritical},
		{12, cog.ScoringLinear, SeverityCritical},
		{11, cog.ScoringLinear, SeverityHigh},
		{9, cog.ScoringLinear, SeverityHigh},
		{8, cog.ScoringLinear, SeverityMedium},
		{6, cog.ScoringLinear, SeverityMedium},
		{5, cog.ScoringLinear, SeverityLow},
		{3, cog.ScoringLinear, SeverityLow},
		// Logarithmic ceiling 36: the same sum bands lower.
		{14, cog.ScoringLogarithmic, SeverityLow},
		{15, cog.ScoringLogarithmic, SeverityMedium},
		{22, cog.ScoringLogarithmic, SeverityHigh},
		{29, cog.ScoringLogarithmic, SeverityCritical},
	}

	for _, tt := range tests {
		got, err := Band(tt.composite, tt.system)
		if err != nil {
			t.Fatalf("Band(%d, %s) failed: %v", tt.composite, tt.system, err)
		}
		if got != tt.want {
			t.Errorf("Band(%d, %s) = %s, want %s", tt.composite, tt.system, got, tt.want)
		}
	}
}

// An unknown regime fails before sub-score validation, so even an unscored
// vulnerability reports the regime problem first.
func TestScoreAndBandRejectsUnknownSystemFirst(t *testing.T) {
	_, _, err := ScoreAndBand(vuln(0, 0, 0), "exponential")
	if !errors.Is(err, ErrUnknownScoringSystem) {
		t.Errorf("expected ErrUnknownScoringSystem, got %v", err)
	}
}
