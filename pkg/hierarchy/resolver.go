// Package hierarchy resolves parent/child membership across the four flat
// collections of a COG analysis. Children whose foreign key does not resolve
// within the same document are treated as orphans and excluded from every
// lookup, so a partially-edited document never faults a read.
package hierarchy

import (
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
)

// Resolver indexes one analysis document for parent->child traversal.
// It holds references into the source document and performs no copies;
// build a new resolver after mutating the document.
type Resolver struct {
	cogByID map[string]*cog.CenterOfGravity
	capByID map[string]*cog.CriticalCapability
	reqByID map[string]*cog.CriticalRequirement

	capsByCOG  map[string][]cog.CriticalCapability
	reqsByCap  map[string][]cog.CriticalRequirement
	vulnsByReq map[string][]cog.CriticalVulnerability

	orphans Orphans
}

// Orphans lists entities excluded from traversal because their foreign key
// did not resolve. Diagnostic only; orphans are never an error.
type Orphans struct {
	Capabilities    []cog.CriticalCapability
	Requirements    []cog.CriticalRequirement
	Vulnerabilities []cog.CriticalVulnerability
}

// Total returns the number of orphaned entities across all levels.
func (o Orphans) Total() int {
	return len(o.Capabilities) + len(o.Requirements) + len(o.Vulnerabilities)
}

// NewResolver builds the per-level indexes for an analysis document.
// Collection order is preserved in every child list.
func NewResolver(a *cog.COGAnalysis) *Resolver {
	r := &Resolver{
		cogByID:    make(map[string]*cog.CenterOfGravity, len(a.CentersOfGravity)),
		capByID:    make(map[string]*cog.CriticalCapability, len(a.Capabilities)),
		reqByID:    make(map[string]*cog.CriticalRequirement, len(a.Requirements)),
		capsByCOG:  make(map[string][]cog.CriticalCapability),
		reqsByCap:  make(map[string][]cog.CriticalRequirement),
		vulnsByReq: make(map[string][]cog.CriticalVulnerability),
	}

	for i := range a.CentersOfGravity {
		c := &a.CentersOfGravity[i]
		r.cogByID[c.ID] = c
	}

	// A capability is only a valid parent if it itself resolved; orphaning
	// cascades so that a dangling subtree never reappears via a lower level.
	for i := range a.Capabilities {
		c := &a.Capabilities[i]
		if _, ok := r.cogByID[c.COGID]; !ok {
			r.orphans.Capabilities = append(r.orphans.Capabilities, *c)
			continue
		}
		r.capByID[c.ID] = c
		r.capsByCOG[c.COGID] = append(r.capsByCOG[c.COGID], *c)
	}

	for i := range a.Requirements {
		req := &a.Requirements[i]
		if _, ok := r.capByID[req.CapabilityID]; !ok {
			r.orphans.Requirements = append(r.orphans.Requirements, *req)
			continue
		}
		r.reqByID[req.ID] = req
		r.reqsByCap[req.CapabilityID] = append(r.reqsByCap[req.CapabilityID], *req)
	}

	for i := range a.Vulnerabilities {
		v := &a.Vulnerabilities[i]
		if _, ok := r.reqByID[v.RequirementID]; !ok {
			r.orphans.Vulnerabilities = append(r.orphans.Vulnerabilities, *v)
			continue
		}
		r.vulnsByReq[v.RequirementID] = append(r.vulnsByReq[v.RequirementID], *v)
	}

	return r
}

// CapabilitiesOf returns the capabilities whose cog_id equals cogID,
// in original collection order.
func (r *Resolver) CapabilitiesOf(cogID string) []cog.CriticalCapability {
	return r.capsByCOG[cogID]
}

// RequirementsOf returns the requirements whose capability_id equals
// capabilityID, in original collection order.
func (r *Resolver) RequirementsOf(capabilityID string) []cog.CriticalRequirement {
	return r.reqsByCap[capabilityID]
}

// VulnerabilitiesOf returns the vulnerabilities whose requirement_id equals
// requirementID, in original collection order.
func (r *Resolver) VulnerabilitiesOf(requirementID string) []cog.CriticalVulnerability {
	return r.vulnsByReq[requirementID]
}

// COG looks up a center of gravity by ID. Returns nil if absent.
func (r *Resolver) COG(id string) *cog.CenterOfGravity {
	return r.cogByID[id]
}

// Capability looks up a resolved (non-orphaned) capability by ID.
func (r *Resolver) Capability(id string) *cog.CriticalCapability {
	return r.capByID[id]
}

// Requirement looks up a resolved (non-orphaned) requirement by ID.
func (r *Resolver) Requirement(id string) *cog.CriticalRequirement {
	return r.reqByID[id]
}

// Orphans reports the entities excluded from traversal.
func (r *Resolver) Orphans() Orphans {
	return r.orphans
}
