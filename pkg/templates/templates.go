// Package templates provides built-in starter analyses. Instantiating a
// template deep-copies it with fresh IDs, so the built-ins stay pristine no
// matter how instances are edited afterwards.
package templates

import (
	"fmt"
	"sort"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
)

// Template is a named, reusable starting point for an analysis.
type Template struct {
	Name        string
	Description string
	build       func() *cog.COGAnalysis
}

var registry = map[string]Template{
	"blank": {
		Name:        "blank",
		Description: "Empty analysis with one unvalidated COG placeholder",
		build:       blankTemplate,
	},
	"adversary-cyber": {
		Name:        "adversary-cyber",
		Description: "Adversary cyber COG with command-and-control capability breakdown",
		build:       adversaryCyberTemplate,
	},
	"friendly-protection": {
		Name:        "friendly-protection",
		Description: "Friendly logistics COG framed for protection planning",
		build:       friendlyProtectionTemplate,
	},
}

// List returns the available templates sorted by name.
func List() []Template {
	out := make([]Template, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Instantiate builds a fresh analysis from the named template. The returned
// document has new IDs and timestamps throughout and shares no state with
// the template definition.
func Instantiate(name string) (*cog.COGAnalysis, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}
	return t.build().Clone(), nil
}

func blankTemplate() *cog.COGAnalysis {
	a := cog.NewAnalysis("Untitled COG Analysis", cog.ScoringLinear)
	a.CentersOfGravity = []cog.CenterOfGravity{{
		ID:            "cog-1",
		ActorCategory: cog.ActorAdversary,
		Domain:        cog.DomainMilitary,
		Description:   "Describe the source of power under analysis",
		Confidence:    cog.ConfidenceLow,
		Priority:      1,
	}}
	return a
}

func adversaryCyberTemplate() *cog.COGAnalysis {
	a := cog.NewAnalysis("Adversary Cyber COG Analysis", cog.ScoringLinear)
	a.Description = "Targeting-oriented breakdown of an adversary cyber operations capability"
	a.OperationalContext = cog.OperationalContext{
		Objective:      "Degrade adversary offensive cyber operations",
		DesiredImpact:  "Loss of coordinated C2 over deployed implants",
		StrategicLevel: cog.LevelOperational,
	}
	a.CentersOfGravity = []cog.CenterOfGravity{{
		ID:            "cog-1",
		ActorCategory: cog.ActorAdversary,
		Domain:        cog.DomainCyber,
		Description:   "Offensive cyber operations directorate",
		Rationale:     "Single organization concentrating tooling, access, and tasking",
		Confidence:    cog.ConfidenceMedium,
		Priority:      1,
	}}
	a.Capabilities = []cog.CriticalCapability{
		{
			ID:          "cap-1",
			COGID:       "cog-1",
			Capability:  "Command and control of deployed implants",
			Description: "Tasking and exfiltration across the implant fleet",
		},
		{
			ID:          "cap-2",
			COGID:       "cog-1",
			Capability:  "Initial access operations",
			Description: "Phishing and supply-chain footholds feeding the implant fleet",
		},
	}
	a.Requirements = []cog.CriticalRequirement{
		{
			ID:              "req-1",
			CapabilityID:    "cap-1",
			Requirement:     "Resilient C2 relay infrastructure",
			RequirementType: cog.RequirementInfrastructure,
		},
		{
			ID:              "req-2",
			CapabilityID:    "cap-2",
			Requirement:     "Current target network intelligence",
			RequirementType: cog.RequirementInformation,
		},
	}
	a.Vulnerabilities = []cog.CriticalVulnerability{
		{
			ID:                 "vuln-1",
			RequirementID:      "req-1",
			Vulnerability:      "Relay infrastructure concentrated with two hosting providers",
			Description:        "Takedown requests against either provider sever most active C2 paths",
			VulnerabilityType:  cog.VulnerabilityCyber,
			ExploitationMethod: "Coordinated provider notification and takedown",
			ExpectedEffect:     "Implant fleet loses tasking for days to weeks",
			RecommendedActions: []string{"Map relay hosting footprint", "Prepare provider engagement"},
			Confidence:         cog.ConfidenceMedium,
			Scoring:            cog.VulnerabilityScoring{ImpactOnCOG: 5, Attainability: 4, FollowUpPotential: 4},
		},
		{
			ID:                "vuln-2",
			RequirementID:     "req-2",
			Vulnerability:     "Target intelligence sourced from a small set of collection accesses",
			Description:       "Denying the accesses blinds initial-access targeting",
			VulnerabilityType: cog.VulnerabilityInformational,
			Confidence:        cog.ConfidenceLow,
			Scoring:           cog.VulnerabilityScoring{ImpactOnCOG: 4, Attainability: 2, FollowUpPotential: 3},
		},
	}
	return a
}

func friendlyProtectionTemplate() *cog.COGAnalysis {
	a := cog.NewAnalysis("Friendly Logistics COG Protection", cog.ScoringLinear)
	a.Description = "Protection-oriented view of a friendly sustainment COG"
	a.OperationalContext = cog.OperationalContext{
		Objective:      "Sustain forward forces through the first 30 days",
		DesiredImpact:  "Uninterrupted throughput at the main distribution hub",
		StrategicLevel: cog.LevelOperational,
	}
	a.CentersOfGravity = []cog.CenterOfGravity{{
		ID:            "cog-1",
		ActorCategory: cog.ActorFriendly,
		Domain:        cog.DomainMilitary,
		Description:   "Theater sustainment distribution network",
		Rationale:     "All classes of supply flow through a single hub-and-spoke system",
		Confidence:    cog.ConfidenceHigh,
		Priority:      1,
	}}
	a.Capabilities = []cog.CriticalCapability{{
		ID:          "cap-1",
		COGID:       "cog-1",
		Capability:  "Bulk fuel distribution to forward positions",
		Description: "Pipeline and convoy movement of class III",
	}}
	a.Requirements = []cog.CriticalRequirement{{
		ID:              "req-1",
		CapabilityID:    "cap-1",
		Requirement:     "Operational pipeline pumping stations",
		RequirementType: cog.RequirementInfrastructure,
	}}
	a.Vulnerabilities = []cog.CriticalVulnerability{{
		ID:                "vuln-1",
		RequirementID:     "req-1",
		Vulnerability:     "Pumping stations lack redundant power",
		Description:       "Single grid feed per station; generator stocks cover 48 hours",
		VulnerabilityType: cog.VulnerabilityPhysical,
		ExpectedEffect:    "Fuel throughput halts within two days of grid loss",
		Confidence:        cog.ConfidenceHigh,
		Scoring:           cog.VulnerabilityScoring{ImpactOnCOG: 5, Attainability: 3, FollowUpPotential: 2},
	}}
	return a
}
