package cog

// ActorCategory identifies whose center of gravity is being analysed.
type ActorCategory string

const (
	ActorFriendly   ActorCategory = "friendly"
	ActorAdversary  ActorCategory = "adversary"
	ActorHostNation ActorCategory = "host_nation"
	ActorThirdParty ActorCategory = "third_party"
)

// Valid reports whether the actor category is a known value.
func (a ActorCategory) Valid() bool {
	switch a {
	case ActorFriendly, ActorAdversary, ActorHostNation, ActorThirdParty:
		return true
	}
	return false
}

// Domain is the instrument-of-power domain a COG operates in.
type Domain string

const (
	DomainMilitary       Domain = "military"
	DomainDiplomatic     Domain = "diplomatic"
	DomainInformation    Domain = "information"
	DomainEconomic       Domain = "economic"
	DomainFinancial      Domain = "financial"
	DomainIntelligence   Domain = "intelligence"
	DomainLawEnforcement Domain = "law_enforcement"
	DomainCyber          Domain = "cyber"
	DomainSpace          Domain = "space"
)

// Valid reports whether the domain is a known value.
func (d Domain) Valid() bool {
	switch d {
	case DomainMilitary, DomainDiplomatic, DomainInformation, DomainEconomic,
		DomainFinancial, DomainIntelligence, DomainLawEnforcement,
		DomainCyber, DomainSpace:
		return true
	}
	return false
}

// ConfidenceLevel is the analyst's confidence in an assessment.
type ConfidenceLevel string

const (
	ConfidenceLow       ConfidenceLevel = "low"
	ConfidenceMedium    ConfidenceLevel = "medium"
	ConfidenceHigh      ConfidenceLevel = "high"
	ConfidenceConfirmed ConfidenceLevel = "confirmed"
)

// Valid reports whether the confidence level is a known value.
func (c ConfidenceLevel) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh, ConfidenceConfirmed:
		return true
	}
	return false
}

// StrategicLevel is the level of war an analysis is framed at.
type StrategicLevel string

const (
	LevelTactical    StrategicLevel = "tactical"
	LevelOperational StrategicLevel = "operational"
	LevelStrategic   StrategicLevel = "strategic"
)

// Valid reports whether the strategic level is a known value.
func (s StrategicLevel) Valid() bool {
	switch s {
	case LevelTactical, LevelOperational, LevelStrategic:
		return true
	}
	return false
}

// RequirementType categorises what a critical requirement consists of.
type RequirementType string

const (
	RequirementInfrastructure RequirementType = "infrastructure"
	RequirementInformation    RequirementType = "information"
	RequirementEquipment      RequirementType = "equipment"
	RequirementPersonnel      RequirementType = "personnel"
	RequirementLogistics      RequirementType = "logistics"
	RequirementLeadership     RequirementType = "leadership"
	RequirementOther          RequirementType = "other"
)

// Valid reports whether the requirement type is a known value.
func (r RequirementType) Valid() bool {
	switch r {
	case RequirementInfrastructure, RequirementInformation, RequirementEquipment,
		RequirementPersonnel, RequirementLogistics, RequirementLeadership,
		RequirementOther:
		return true
	}
	return false
}

// VulnerabilityType categorises how a critical vulnerability is exposed.
type VulnerabilityType string

const (
	VulnerabilityPhysical      VulnerabilityType = "physical"
	VulnerabilityCyber         VulnerabilityType = "cyber"
	VulnerabilityInformational VulnerabilityType = "informational"
	VulnerabilityHuman         VulnerabilityType = "human"
	VulnerabilityLogistical    VulnerabilityType = "logistical"
	VulnerabilityOther         VulnerabilityType = "other"
)

// Valid reports whether the vulnerability type is a known value.
func (v VulnerabilityType) Valid() bool {
	switch v {
	case VulnerabilityPhysical, VulnerabilityCyber, VulnerabilityInformational,
		VulnerabilityHuman, VulnerabilityLogistical, VulnerabilityOther:
		return true
	}
	return false
}

// ScoringSystem selects how composite scores are interpreted against a
// severity ceiling. The composite arithmetic itself is identical under both.
type ScoringSystem string

const (
	// ScoringLinear treats each 1-5 sub-score at face value (ceiling 15).
	ScoringLinear ScoringSystem = "linear"
	// ScoringLogarithmic treats the 1-5 sub-scores as ordinal tiers on a
	// faster-growing reference scale (ceiling 36).
	ScoringLogarithmic ScoringSystem = "logarithmic"
)

// Valid reports whether the scoring system is a known value.
func (s ScoringSystem) Valid() bool {
	return s == ScoringLinear || s == ScoringLogarithmic
}
