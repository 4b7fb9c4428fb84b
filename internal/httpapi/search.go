package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/namastra/namastra-go/internal/domain"
	"go.uber.org/zap"
)

// handleSearch is the structured search path. Malformed bodies are rejected
// before the engine runs; engine faults surface as an error envelope with an
// empty, well-formed result page.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var filters domain.SearchFilters

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&filters); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filters", "request body is not a valid filter object")
		return
	}

	resp, err := s.engine.Search(filters)
	if err != nil {
		s.logger.Error("Search request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Search failed",
			"results": []*domain.NameRecord{},
			"total":   0,
			"tookMs":  resp.TookMs,
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSimpleSearch serves GET /api/search?q=. An absent query returns an
// empty success payload, mirroring the structured path's "no constraint means
// no rejection" stance.
func (s *Server) handleSimpleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, domain.QueryResponse{
			Results: []*domain.NameRecord{},
			Total:   0,
			TookMs:  0,
			Query:   "",
		})
		return
	}

	writeJSON(w, http.StatusOK, s.engine.Query(q))
}
