// Package gql exposes a read-only GraphQL view of stored analyses and their
// derived outputs (rankings, edges, centrality). Mutations go through the
// REST surface; the GraphQL endpoint exists for the workbench UI's flexible
// read patterns.
package gql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/engine"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/store"
)

var scoringType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VulnerabilityScoring",
	Fields: graphql.Fields{
		"impactOnCog":       &graphql.Field{Type: graphql.Int},
		"attainability":     &graphql.Field{Type: graphql.Int},
		"followUpPotential": &graphql.Field{Type: graphql.Int},
	},
})

var rankedVulnerabilityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RankedVulnerability",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.String},
		"vulnerability":  &graphql.Field{Type: graphql.String},
		"type":           &graphql.Field{Type: graphql.String},
		"compositeScore": &graphql.Field{Type: graphql.Int},
		"severity":       &graphql.Field{Type: graphql.String},
		"priorityRank":   &graphql.Field{Type: graphql.Int},
		"scoring":        &graphql.Field{Type: scoringType},
	},
})

var edgeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Edge",
	Fields: graphql.Fields{
		"source":       &graphql.Field{Type: graphql.String},
		"sourceType":   &graphql.Field{Type: graphql.String},
		"target":       &graphql.Field{Type: graphql.String},
		"targetType":   &graphql.Field{Type: graphql.String},
		"weight":       &graphql.Field{Type: graphql.Float},
		"relationship": &graphql.Field{Type: graphql.String},
	},
})

var centralityEntryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CentralityEntry",
	Fields: graphql.Fields{
		"nodeId": &graphql.Field{Type: graphql.String},
		"degree": &graphql.Field{Type: graphql.Int},
		"rank":   &graphql.Field{Type: graphql.Int},
	},
})

var analysisSummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AnalysisSummary",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.String},
		"title":         &graphql.Field{Type: graphql.String},
		"scoringSystem": &graphql.Field{Type: graphql.String},
		"cogCount":      &graphql.Field{Type: graphql.Int},
		"vulnCount":     &graphql.Field{Type: graphql.Int},
	},
})

// buildSchema assembles the query root over a store and engine.
func buildSchema(st store.Store, eng *engine.Engine) (graphql.Schema, error) {
	idArg := graphql.FieldConfigArgument{
		"analysisId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"analyses": &graphql.Field{
				Type: graphql.NewList(analysisSummaryType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					summaries, err := st.List(p.Context)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]any, len(summaries))
					for i, s := range summaries {
						out[i] = map[string]any{
							"id":            s.ID,
							"title":         s.Title,
							"scoringSystem": s.ScoringSystem,
							"cogCount":      s.COGCount,
							"vulnCount":     s.VulnCount,
						}
					}
					return out, nil
				},
			},
			"rankings": &graphql.Field{
				Type: graphql.NewList(rankedVulnerabilityType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					a, err := st.Get(p.Context, p.Args["analysisId"].(string))
					if err != nil {
						return nil, err
					}
					ranked, err := eng.Rank(a)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]any, len(ranked))
					for i, rv := range ranked {
						out[i] = map[string]any{
							"id":             rv.Vulnerability.ID,
							"vulnerability":  rv.Vulnerability.Vulnerability,
							"type":           string(rv.Vulnerability.VulnerabilityType),
							"compositeScore": rv.CompositeScore,
							"severity":       string(rv.Severity),
							"priorityRank":   rv.PriorityRank,
							"scoring": map[string]any{
								"impactOnCog":       rv.Vulnerability.Scoring.ImpactOnCOG,
								"attainability":     rv.Vulnerability.Scoring.Attainability,
								"followUpPotential": rv.Vulnerability.Scoring.FollowUpPotential,
							},
						}
					}
					return out, nil
				},
			},
			"edges": &graphql.Field{
				Type: graphql.NewList(edgeType),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					a, err := st.Get(p.Context, p.Args["analysisId"].(string))
					if err != nil {
						return nil, err
					}
					result := eng.BuildGraph(a, 0)
					out := make([]map[string]any, len(result.Edges))
					for i, e := range result.Edges {
						out[i] = map[string]any{
							"source":       e.Source,
							"sourceType":   e.SourceType,
							"target":       e.Target,
							"targetType":   e.TargetType,
							"weight":       e.Weight,
							"relationship": e.Relationship,
						}
					}
					return out, nil
				},
			},
			"topNodes": &graphql.Field{
				Type: graphql.NewList(centralityEntryType),
				Args: graphql.FieldConfigArgument{
					"analysisId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					a, err := st.Get(p.Context, p.Args["analysisId"].(string))
					if err != nil {
						return nil, err
					}
					limit, _ := p.Args["limit"].(int)
					result := eng.BuildGraph(a, limit)
					out := make([]map[string]any, len(result.TopNodes))
					for i, n := range result.TopNodes {
						out[i] = map[string]any{
							"nodeId": n.NodeID,
							"degree": n.Degree,
							"rank":   n.Rank,
						}
					}
					return out, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}
