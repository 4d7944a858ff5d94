package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/graph"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/ranking"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/scoring"
)

// TopNodeLimit caps the "top nodes by centrality" section of the report.
const TopNodeLimit = 10

// WriteMarkdownReport renders a combined decision-support report: analysis
// summary, ranked vulnerability table, and top nodes by degree centrality.
func WriteMarkdownReport(w io.Writer, a *cog.COGAnalysis, ranked []ranking.RankedVulnerability, edges []graph.Edge) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	if a.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", a.Description)
	}

	ceiling, err := scoring.MaxComposite(a.ScoringSystem)
	if err != nil {
		return err
	}
	fmt.Fprintf(&b, "- Scoring system: %s (ceiling %d)\n", a.ScoringSystem, ceiling)
	fmt.Fprintf(&b, "- Centers of gravity: %d\n", len(a.CentersOfGravity))
	fmt.Fprintf(&b, "- Vulnerabilities assessed: %d\n\n", len(a.Vulnerabilities))

	if ctx := a.OperationalContext; ctx.Objective != "" {
		b.WriteString("## Operational Context\n\n")
		fmt.Fprintf(&b, "- Objective: %s\n", ctx.Objective)
		if ctx.DesiredImpact != "" {
			fmt.Fprintf(&b, "- Desired impact: %s\n", ctx.DesiredImpact)
		}
		if ctx.StrategicLevel != "" {
			fmt.Fprintf(&b, "- Strategic level: %s\n", ctx.StrategicLevel)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Prioritized Vulnerabilities\n\n")
	b.WriteString("| Rank | Vulnerability | Severity | Impact | Attainability | Follow-up | Composite |\n")
	b.WriteString("|------|---------------|----------|--------|---------------|-----------|----------|\n")
	for _, rv := range ranked {
		v := rv.Vulnerability
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %d | %d | %d |\n",
			rv.PriorityRank, v.Vulnerability, rv.Severity,
			v.Scoring.ImpactOnCOG, v.Scoring.Attainability,
			v.Scoring.FollowUpPotential, rv.CompositeScore)
	}
	b.WriteString("\n")

	centrality := graph.DegreeCentrality(edges)
	top := graph.TopNodes(centrality, TopNodeLimit)
	names := nodeNames(a)

	b.WriteString("## Top Nodes by Degree Centrality\n\n")
	b.WriteString("| Rank | Node | Type | Degree |\n")
	b.WriteString("|------|------|------|--------|\n")
	types := nodeTypes(edges)
	for _, n := range top {
		name := names[n.NodeID]
		if name == "" {
			name = n.NodeID
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %d |\n", n.Rank, name, types[n.NodeID], n.Degree)
	}

	_, err = io.WriteString(w, b.String())
	return err
}

// nodeNames maps entity IDs to display text for the report.
func nodeNames(a *cog.COGAnalysis) map[string]string {
	names := make(map[string]string)
	for _, c := range a.CentersOfGravity {
		names[c.ID] = c.Description
	}
	for _, c := range a.Capabilities {
		names[c.ID] = c.Capability
	}
	for _, r := range a.Requirements {
		names[r.ID] = r.Requirement
	}
	for _, v := range a.Vulnerabilities {
		names[v.ID] = v.Vulnerability
	}
	return names
}

// nodeTypes maps node IDs to their type label as carried on the edge list.
func nodeTypes(edges []graph.Edge) map[string]string {
	types := make(map[string]string, len(edges)*2)
	for _, e := range edges {
		types[e.Source] = e.SourceType
		types[e.Target] = e.TargetType
	}
	return types
}
