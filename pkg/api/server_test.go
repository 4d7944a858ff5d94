package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/auth"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/metrics"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/store"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := NewServer(Config{
		Store:   store.NewMemStore(),
		Metrics: metrics.NewRegistry(),
		Version: "test",
	})
	return s, s.Handler()
}

func apiFixture() *cog.COGAnalysis {
	a := cog.NewAnalysis("API fixture", cog.ScoringLinear)
	a.CentersOfGravity = []cog.CenterOfGravity{
		{ID: "cog-1", ActorCategory: cog.ActorAdversary, Domain: cog.DomainCyber, Description: "C2 node"},
	}
	a.Capabilities = []cog.CriticalCapability{
		{ID: "cap-1", COGID: "cog-1", Capability: "Tasking"},
	}
	a.Requirements = []cog.CriticalRequirement{
		{ID: "req-1", CapabilityID: "cap-1", Requirement: "Uplink"},
	}
	a.Vulnerabilities = []cog.CriticalVulnerability{
		{ID: "vuln-1", RequirementID: "req-1", Vulnerability: "Single uplink",
			Scoring: cog.VulnerabilityScoring{ImpactOnCOG: 5, Attainability: 4, FollowUpPotential: 5}},
		{ID: "vuln-2", RequirementID: "req-1", Vulnerability: "Shared crypto",
			Scoring: cog.VulnerabilityScoring{ImpactOnCOG: 3, Attainability: 3, FollowUpPotential: 3}},
	}
	return a
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestAnalysisCRUD(t *testing.T) {
	_, h := newTestServer(t)
	a := apiFixture()

	rec := doJSON(t, h, http.MethodPost, "/analyses", a)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created cog.COGAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, a.ID, created.ID)

	rec = doJSON(t, h, http.MethodGet, "/analyses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []store.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "API fixture", summaries[0].Title)
	assert.Equal(t, 2, summaries[0].VulnCount)

	rec = doJSON(t, h, http.MethodGet, "/analyses/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	a.Title = "Renamed"
	rec = doJSON(t, h, http.MethodPut, "/analyses/"+a.ID, a)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodDelete, "/analyses/"+a.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/analyses/"+a.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRejectsInvalidDocument(t *testing.T) {
	_, h := newTestServer(t)

	a := apiFixture()
	a.ScoringSystem = "quadratic"
	rec := doJSON(t, h, http.MethodPost, "/analyses", a)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/analyses", map[string]any{"title": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRankingsEndpoint(t *testing.T) {
	_, h := newTestServer(t)
	a := apiFixture()
	require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/analyses", a).Code)

	rec := doJSON(t, h, http.MethodGet, "/analyses/"+a.ID+"/rankings", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RankingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "linear", resp.ScoringSystem)
	assert.Equal(t, 15, resp.MaxComposite)
	require.Len(t, resp.Rankings, 2)
	assert.Equal(t, "vuln-1", resp.Rankings[0].Vulnerability.ID)
	assert.Equal(t, 14, resp.Rankings[0].CompositeScore)
	assert.Equal(t, 1, resp.Rankings[0].PriorityRank)
}

func TestRankingsTieBreakParam(t *testing.T) {
	_, h := newTestServer(t)
	a := apiFixture()
	require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/analyses", a).Code)

	rec := doJSON(t, h, http.MethodGet, "/analyses/"+a.ID+"/rankings?tiebreak=input_order", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/analyses/"+a.ID+"/rankings?tiebreak=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankingsRejectsUnscored(t *testing.T) {
	_, h := newTestServer(t)
	a := apiFixture()
	a.Vulnerabilities[1].Scoring = cog.VulnerabilityScoring{}
	require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/analyses", a).Code)

	rec := doJSON(t, h, http.MethodGet, "/analyses/"+a.ID+"/rankings", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "vuln-2")
}

func TestGraphEndpoint(t *testing.T) {
	_, h := newTestServer(t)
	a := apiFixture()
	require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/analyses", a).Code)

	rec := doJSON(t, h, http.MethodGet, "/analyses/"+a.ID+"/graph", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GraphResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Graph)
	// cog->cap, cap->req, req->vuln x2
	assert.Equal(t, 4, resp.Graph.Stats.EdgeCount)
	assert.Equal(t, 0, resp.Graph.Orphans)

	sum := 0
	for _, d := range resp.Graph.Centrality {
		sum += d
	}
	assert.Equal(t, 8, sum)
}

func TestExportEndpoints(t *testing.T) {
	_, h := newTestServer(t)
	a := apiFixture()
	require.Equal(t, http.StatusCreated, doJSON(t, h, http.MethodPost, "/analyses", a).Code)

	rec := doJSON(t, h, http.MethodGet, "/analyses/"+a.ID+"/export/rankings.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Rank,Vulnerability,Type,Impact"))

	rec = doJSON(t, h, http.MethodGet, "/analyses/"+a.ID+"/export/edges.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Source,Source Type,Target"))

	rec = doJSON(t, h, http.MethodGet, "/analyses/"+a.ID+"/export/report.md", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# API fixture")
}

func TestTemplateEndpoints(t *testing.T) {
	_, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var infos []TemplateInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	assert.Len(t, infos, 3)

	rec = doJSON(t, h, http.MethodPost, "/templates/adversary-cyber/instantiate", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var a cog.COGAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.NotEmpty(t, a.ID)

	rec = doJSON(t, h, http.MethodPost, "/templates/no-such/instantiate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRequiredWhenConfigured(t *testing.T) {
	users := auth.NewUserStore()
	_, err := users.CreateUser("analyst1", "long-enough-password", auth.RoleAnalyst)
	require.NoError(t, err)
	_, err = users.CreateUser("viewer1", "long-enough-password", auth.RoleViewer)
	require.NoError(t, err)

	jwtManager, err := auth.NewJWTManager("test-secret-key-that-is-long-enough!", time.Hour)
	require.NoError(t, err)

	s := NewServer(Config{
		Store:      store.NewMemStore(),
		JWTManager: jwtManager,
		Users:      users,
	})
	h := s.Handler()

	// No token: protected routes refuse, health stays open.
	rec := doJSON(t, h, http.MethodGet, "/analyses", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Login and retry with the issued token.
	rec = doJSON(t, h, http.MethodPost, "/auth/login", LoginRequest{Username: "analyst1", Password: "long-enough-password"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest(http.MethodGet, "/analyses", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)

	// Wrong credentials.
	rec = doJSON(t, h, http.MethodPost, "/auth/login", LoginRequest{Username: "analyst1", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Viewer tokens are read-only.
	rec = doJSON(t, h, http.MethodPost, "/auth/login", LoginRequest{Username: "viewer1", Password: "long-enough-password"})
	require.Equal(t, http.StatusOK, rec.Code)
	var viewerLogin LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &viewerLogin))

	body, err := json.Marshal(apiFixture())
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+viewerLogin.Token)
	res = httptest.NewRecorder()
	h.ServeHTTP(res, req)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestRoutePattern(t *testing.T) {
	assert.Equal(t, "/analyses/:id/rankings", routePattern("/analyses/abc-123/rankings"))
	assert.Equal(t, "/analyses", routePattern("/analyses"))
	assert.Equal(t, "/templates/:id/instantiate", routePattern("/templates/blank/instantiate"))
	assert.Equal(t, "/health", routePattern("/health"))
}

func TestCORSPreflight(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/analyses", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
