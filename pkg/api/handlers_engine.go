package api

import (
	"errors"
	"net/http"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/export"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/logging"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/ranking"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/scoring"
)

// topNodeLimit bounds the GraphResponse ranked-node list.
const topNodeLimit = 10

// handleAnalysisSubresource routes /analyses/{id}/<sub>.
func (s *Server) handleAnalysisSubresource(w http.ResponseWriter, r *http.Request, id, sub string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	a, err := s.getAnalysis(w, r, id)
	if err != nil {
		return
	}

	switch sub {
	case "rankings":
		opts, err := rankingOptions(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ranked, err := s.engine.Rank(a, opts...)
		if err != nil {
			writeRankingError(w, err)
			return
		}
		ceiling, err := scoring.MaxComposite(a.ScoringSystem)
		if err != nil {
			writeRankingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RankingsResponse{
			AnalysisID:    a.ID,
			ScoringSystem: string(a.ScoringSystem),
			MaxComposite:  ceiling,
			Rankings:      ranked,
		})

	case "graph":
		writeJSON(w, http.StatusOK, GraphResponse{
			AnalysisID: a.ID,
			Graph:      s.engine.BuildGraph(a, topNodeLimit),
		})

	case "export/rankings.csv":
		ranked, err := s.engine.Rank(a)
		if err != nil {
			writeRankingError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="rankings.csv"`)
		if err := export.WriteRankingsCSV(w, ranked); err != nil {
			s.logger.Error("rankings export failed", logging.Error(err))
		}

	case "export/edges.csv":
		result := s.engine.BuildGraph(a, 0)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="edges.csv"`)
		if err := export.WriteEdgesCSV(w, result.Edges); err != nil {
			s.logger.Error("edges export failed", logging.Error(err))
		}

	case "export/report.md":
		ranked, err := s.engine.Rank(a)
		if err != nil {
			writeRankingError(w, err)
			return
		}
		result := s.engine.BuildGraph(a, 0)
		w.Header().Set("Content-Type", "text/markdown")
		if err := export.WriteMarkdownReport(w, a, ranked, result.Edges); err != nil {
			s.logger.Error("report export failed", logging.Error(err))
		}

	default:
		writeError(w, http.StatusNotFound, "unknown subresource")
	}
}

// handleGraphQL delegates to the GraphQL handler.
func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	s.gqlHandler.ServeHTTP(w, r)
}

// rankingOptions parses the optional tiebreak query parameter.
func rankingOptions(r *http.Request) ([]ranking.Option, error) {
	switch tb := r.URL.Query().Get("tiebreak"); tb {
	case "", "impact":
		return nil, nil
	case "input_order":
		return []ranking.Option{ranking.WithTieBreak(ranking.TieBreakInputOrder)}, nil
	default:
		return nil, errors.New("unknown tiebreak: " + tb)
	}
}

// writeRankingError maps engine scoring failures onto HTTP statuses.
func writeRankingError(w http.ResponseWriter, err error) {
	var verr *scoring.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, scoring.ErrUnknownScoringSystem):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
