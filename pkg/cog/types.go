// Package cog defines the center-of-gravity analysis document model: a
// four-level hierarchy (COG -> capability -> requirement -> vulnerability)
// held as flat collections linked by string foreign keys, so the document
// stays serialisable and free of cyclic ownership.
package cog

import "time"

// OperationalContext frames the analysis: what the operation is trying to
// achieve and under which constraints. Embedded in exactly one COGAnalysis.
type OperationalContext struct {
	Objective      string         `json:"objective"`
	DesiredImpact  string         `json:"desired_impact"`
	Constraints    string         `json:"constraints"`
	Restraints     string         `json:"restraints"`
	Timeframe      string         `json:"timeframe"`
	StrategicLevel StrategicLevel `json:"strategic_level" validate:"omitempty,oneof=tactical operational strategic"`
}

// CenterOfGravity is a source of power whose loss would critically degrade
// an actor's ability to function. Top of the hierarchy.
type CenterOfGravity struct {
	ID            string          `json:"id" validate:"required"`
	ActorCategory ActorCategory   `json:"actor_category" validate:"required,oneof=friendly adversary host_nation third_party"`
	Domain        Domain          `json:"domain" validate:"required"`
	Description   string          `json:"description"`
	Rationale     string          `json:"rationale"`
	Confidence    ConfidenceLevel `json:"confidence" validate:"omitempty,oneof=low medium high confirmed"`
	Priority      int             `json:"priority"`
	Validated     bool            `json:"validated"`
}

// CriticalCapability is a primary ability a COG can exercise.
type CriticalCapability struct {
	ID                    string `json:"id" validate:"required"`
	COGID                 string `json:"cog_id" validate:"required"`
	Capability            string `json:"capability" validate:"required"`
	Description           string `json:"description"`
	StrategicContribution string `json:"strategic_contribution"`
}

// CriticalRequirement is a condition or resource a capability needs.
type CriticalRequirement struct {
	ID              string          `json:"id" validate:"required"`
	CapabilityID    string          `json:"capability_id" validate:"required"`
	Requirement     string          `json:"requirement" validate:"required"`
	RequirementType RequirementType `json:"requirement_type"`
}

// VulnerabilityScoring holds the three analyst-supplied 1-5 sub-scores.
// The zero value of a field means the analyst has not scored it yet.
type VulnerabilityScoring struct {
	ImpactOnCOG       int `json:"impact_on_cog" validate:"omitempty,min=1,max=5"`
	Attainability     int `json:"attainability" validate:"omitempty,min=1,max=5"`
	FollowUpPotential int `json:"follow_up_potential" validate:"omitempty,min=1,max=5"`
}

// CriticalVulnerability is an exploitable weakness in a requirement.
// CompositeScore and PriorityRank are derived by the scoring engine and the
// ranker; they are never authoritative on the stored document.
type CriticalVulnerability struct {
	ID                 string               `json:"id" validate:"required"`
	RequirementID      string               `json:"requirement_id" validate:"required"`
	Vulnerability      string               `json:"vulnerability" validate:"required"`
	Description        string               `json:"description"`
	VulnerabilityType  VulnerabilityType    `json:"vulnerability_type"`
	ExploitationMethod string               `json:"exploitation_method"`
	ExpectedEffect     string               `json:"expected_effect"`
	RecommendedActions []string             `json:"recommended_actions"`
	Confidence         ConfidenceLevel      `json:"confidence" validate:"omitempty,oneof=low medium high confirmed"`
	Scoring            VulnerabilityScoring `json:"scoring"`
}

// COGAnalysis is the aggregate root. It owns all child entities: deleting the
// analysis deletes its COGs, capabilities, requirements, and vulnerabilities.
type COGAnalysis struct {
	ID                 string                  `json:"id" validate:"required"`
	Title              string                  `json:"title" validate:"required"`
	Description        string                  `json:"description"`
	ScoringSystem      ScoringSystem           `json:"scoring_system" validate:"required,oneof=linear logarithmic"`
	OperationalContext OperationalContext      `json:"operational_context"`
	CentersOfGravity   []CenterOfGravity       `json:"centers_of_gravity" validate:"min=1,dive"`
	Capabilities       []CriticalCapability    `json:"capabilities" validate:"dive"`
	Requirements       []CriticalRequirement   `json:"requirements" validate:"dive"`
	Vulnerabilities    []CriticalVulnerability `json:"vulnerabilities" validate:"dive"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}
