// Package export renders engine outputs (ranked vulnerability lists, edge
// lists, centrality maps) into CSV and Markdown for the surrounding
// workbench. Formatting only; all derivation happens in the engine packages.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/graph"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/ranking"
)

// rankingsHeader is the column layout consumed by the tabular UI import path.
var rankingsHeader = []string{
	"Rank", "Vulnerability", "Type", "Impact", "Attainability",
	"Follow-up", "Composite Score", "Description",
}

// edgesHeader is the column layout consumed by the network visualization.
var edgesHeader = []string{
	"Source", "Source Type", "Target", "Target Type", "Weight", "Relationship",
}

// WriteRankingsCSV writes a ranked vulnerability list as CSV.
func WriteRankingsCSV(w io.Writer, ranked []ranking.RankedVulnerability) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(rankingsHeader); err != nil {
		return fmt.Errorf("failed to write rankings header: %w", err)
	}

	for _, rv := range ranked {
		v := rv.Vulnerability
		record := []string{
			fmt.Sprintf("%d", rv.PriorityRank),
			v.Vulnerability,
			string(v.VulnerabilityType),
			fmt.Sprintf("%d", v.Scoring.ImpactOnCOG),
			fmt.Sprintf("%d", v.Scoring.Attainability),
			fmt.Sprintf("%d", v.Scoring.FollowUpPotential),
			fmt.Sprintf("%d", rv.CompositeScore),
			v.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write ranking row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteEdgesCSV writes a derived edge list as CSV.
func WriteEdgesCSV(w io.Writer, edges []graph.Edge) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(edgesHeader); err != nil {
		return fmt.Errorf("failed to write edges header: %w", err)
	}

	for _, e := range edges {
		record := []string{
			e.Source,
			e.SourceType,
			e.Target,
			e.TargetType,
			fmt.Sprintf("%g", e.Weight),
			e.Relationship,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write edge row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
