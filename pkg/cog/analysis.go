package cog

import (
	"time"

	"github.com/google/uuid"
)

// NewAnalysis creates an empty analysis with a fresh ID and timestamps.
func NewAnalysis(title string, system ScoringSystem) *COGAnalysis {
	now := time.Now().UTC()
	return &COGAnalysis{
		ID:            uuid.NewString(),
		Title:         title,
		ScoringSystem: system,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Touch updates the modification timestamp.
func (a *COGAnalysis) Touch() {
	a.UpdatedAt = time.Now().UTC()
}

// Clone produces a deep copy with fresh IDs and timestamps. All foreign keys
// are remapped onto the new IDs, so the clone shares no identity (and no
// mutable state) with the source. This is how template instantiation works:
// the template stays pristine, the instance is fully owned by the caller.
func (a *COGAnalysis) Clone() *COGAnalysis {
	now := time.Now().UTC()
	clone := &COGAnalysis{
		ID:                 uuid.NewString(),
		Title:              a.Title,
		Description:        a.Description,
		ScoringSystem:      a.ScoringSystem,
		OperationalContext: a.OperationalContext,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	cogIDs := make(map[string]string, len(a.CentersOfGravity))
	clone.CentersOfGravity = make([]CenterOfGravity, len(a.CentersOfGravity))
	for i, c := range a.CentersOfGravity {
		c.ID = uuid.NewString()
		cogIDs[a.CentersOfGravity[i].ID] = c.ID
		clone.CentersOfGravity[i] = c
	}

	capIDs := make(map[string]string, len(a.Capabilities))
	clone.Capabilities = make([]CriticalCapability, len(a.Capabilities))
	for i, c := range a.Capabilities {
		c.ID = uuid.NewString()
		capIDs[a.Capabilities[i].ID] = c.ID
		// Orphaned foreign keys stay orphaned rather than being dropped;
		// the resolver excludes them the same way on both documents.
		if mapped, ok := cogIDs[c.COGID]; ok {
			c.COGID = mapped
		}
		clone.Capabilities[i] = c
	}

	reqIDs := make(map[string]string, len(a.Requirements))
	clone.Requirements = make([]CriticalRequirement, len(a.Requirements))
	for i, r := range a.Requirements {
		r.ID = uuid.NewString()
		reqIDs[a.Requirements[i].ID] = r.ID
		if mapped, ok := capIDs[r.CapabilityID]; ok {
			r.CapabilityID = mapped
		}
		clone.Requirements[i] = r
	}

	clone.Vulnerabilities = make([]CriticalVulnerability, len(a.Vulnerabilities))
	for i, v := range a.Vulnerabilities {
		v.ID = uuid.NewString()
		if mapped, ok := reqIDs[v.RequirementID]; ok {
			v.RequirementID = mapped
		}
		v.RecommendedActions = append([]string(nil), v.RecommendedActions...)
		clone.Vulnerabilities[i] = v
	}

	return clone
}
