// Package graph derives a directed edge list from the COG hierarchy and
// computes degree centrality over it. Both operations are pure reads over an
// analysis snapshot and are cheap enough to re-run on every render.
package graph

import (
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/hierarchy"
)

// Node type labels used on edge endpoints.
const (
	NodeTypeCOG           = "cog"
	NodeTypeCapability    = "capability"
	NodeTypeRequirement   = "requirement"
	NodeTypeVulnerability = "vulnerability"
)

// Structural relationship kinds, one per hierarchy level.
const (
	RelationshipCapability    = "has_capability"
	RelationshipRequirement   = "has_requirement"
	RelationshipVulnerability = "has_vulnerability"
)

// DefaultWeight is the edge weight when no explicit weight is supplied.
const DefaultWeight = 1.0

// Edge is one directed parent->child link in the derived network.
type Edge struct {
	Source       string  `json:"source"`
	SourceType   string  `json:"source_type"`
	Target       string  `json:"target"`
	TargetType   string  `json:"target_type"`
	Weight       float64 `json:"weight"`
	Relationship string  `json:"relationship"`
}

// BuildEdges derives the structural edge list for an analysis: one edge per
// resolved COG->capability, capability->requirement, and
// requirement->vulnerability link. Orphaned children never produce edges.
// The input document is not mutated.
func BuildEdges(a *cog.COGAnalysis) []Edge {
	r := hierarchy.NewResolver(a)
	edges := make([]Edge, 0, len(a.Capabilities)+len(a.Requirements)+len(a.Vulnerabilities))

	for _, c := range a.CentersOfGravity {
		for _, capability := range r.CapabilitiesOf(c.ID) {
			edges = append(edges, Edge{
				Source:       c.ID,
				SourceType:   NodeTypeCOG,
				Target:       capability.ID,
				TargetType:   NodeTypeCapability,
				Weight:       DefaultWeight,
				Relationship: RelationshipCapability,
			})

			for _, req := range r.RequirementsOf(capability.ID) {
				edges = append(edges, Edge{
					Source:       capability.ID,
					SourceType:   NodeTypeCapability,
					Target:       req.ID,
					TargetType:   NodeTypeRequirement,
					Weight:       DefaultWeight,
					Relationship: RelationshipRequirement,
				})

				for _, vuln := range r.VulnerabilitiesOf(req.ID) {
					edges = append(edges, Edge{
						Source:       req.ID,
						SourceType:   NodeTypeRequirement,
						Target:       vuln.ID,
						TargetType:   NodeTypeVulnerability,
						Weight:       DefaultWeight,
						Relationship: RelationshipVulnerability,
					})
				}
			}
		}
	}

	return edges
}

// Stats summarises a derived network for dashboards.
type Stats struct {
	NodeCount   int            `json:"node_count"`
	EdgeCount   int            `json:"edge_count"`
	NodesByType map[string]int `json:"nodes_by_type"`
}

// ComputeStats counts distinct nodes and edges in an edge list.
func ComputeStats(edges []Edge) Stats {
	seen := make(map[string]string, len(edges)*2)
	for _, e := range edges {
		seen[e.Source] = e.SourceType
		seen[e.Target] = e.TargetType
	}

	byType := make(map[string]int)
	for _, t := range seen {
		byType[t]++
	}

	return Stats{
		NodeCount:   len(seen),
		EdgeCount:   len(edges),
		NodesByType: byType,
	}
}
