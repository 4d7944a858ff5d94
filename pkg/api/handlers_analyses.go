package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/auth"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/logging"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/store"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/templates"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.jwtManager == nil || s.users == nil {
		writeError(w, http.StatusNotImplemented, "authentication not configured")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, Username: user.Username, Role: user.Role})
}

// handleAnalyses serves GET (list) and POST (create) on /analyses.
func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		summaries, err := s.store.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, summaries)

	case http.MethodPost:
		var a cog.COGAnalysis
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid analysis document")
			return
		}
		if a.ID == "" {
			fresh := cog.NewAnalysis(a.Title, a.ScoringSystem)
			a.ID = fresh.ID
			a.CreatedAt = fresh.CreatedAt
			a.UpdatedAt = fresh.UpdatedAt
		}
		if err := cog.Validate(&a); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := s.store.Create(r.Context(), &a); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.logger.Info("analysis created", logging.AnalysisID(a.ID))
		writeJSON(w, http.StatusCreated, &a)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAnalysis dispatches /analyses/{id} and its sub-resources.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/analyses/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		writeError(w, http.StatusBadRequest, "analysis id required")
		return
	}

	if len(parts) == 2 && parts[1] != "" {
		s.handleAnalysisSubresource(w, r, id, parts[1])
		return
	}

	switch r.Method {
	case http.MethodGet:
		a, err := s.getAnalysis(w, r, id)
		if err != nil {
			return
		}
		writeJSON(w, http.StatusOK, a)

	case http.MethodPut:
		var a cog.COGAnalysis
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			writeError(w, http.StatusBadRequest, "invalid analysis document")
			return
		}
		a.ID = id
		if err := cog.Validate(&a); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		a.Touch()
		if err := s.store.Update(r.Context(), &a); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, &a)

	case http.MethodDelete:
		if err := s.store.Delete(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.logger.Info("analysis deleted", logging.AnalysisID(id))
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// getAnalysis loads an analysis or writes the appropriate error response.
func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request, id string) (*cog.COGAnalysis, error) {
	a, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, err
	}
	return a, nil
}

// handleTemplates lists the built-in starter templates.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	infos := make([]TemplateInfo, 0)
	for _, t := range templates.List() {
		infos = append(infos, TemplateInfo{Name: t.Name, Description: t.Description})
	}
	writeJSON(w, http.StatusOK, infos)
}

// handleTemplateInstantiate serves POST /templates/{name}/instantiate.
func (s *Server) handleTemplateInstantiate(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/templates/")
	parts := strings.SplitN(rest, "/", 2)
	if r.Method != http.MethodPost || len(parts) != 2 || parts[1] != "instantiate" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	a, err := templates.Instantiate(parts[0])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := s.store.Create(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("template instantiated",
		logging.String("template", parts[0]),
		logging.AnalysisID(a.ID))
	writeJSON(w, http.StatusCreated, a)
}
