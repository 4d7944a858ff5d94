package api

import (
	"time"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/engine"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/ranking"
)

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns an issued access token.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// RankingsResponse is the prioritized vulnerability list for one analysis.
type RankingsResponse struct {
	AnalysisID    string                        `json:"analysis_id"`
	ScoringSystem string                        `json:"scoring_system"`
	MaxComposite  int                           `json:"max_composite"`
	Rankings      []ranking.RankedVulnerability `json:"rankings"`
}

// GraphResponse is the derived network for one analysis.
type GraphResponse struct {
	AnalysisID string              `json:"analysis_id"`
	Graph      *engine.GraphResult `json:"graph"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TemplateInfo describes an available starter template.
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
