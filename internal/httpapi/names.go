package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/namastra/namastra-go/internal/domain"
)

type nameDetailResponse struct {
	Name *domain.NameRecord `json:"name"`
	Meta PageMeta           `json:"meta"`
}

func (s *Server) handleNameDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	record := s.catalog.BySlug(slug)
	if record == nil {
		writeError(w, http.StatusNotFound, "name_not_found", "no name with slug "+slug)
		return
	}

	writeJSON(w, http.StatusOK, nameDetailResponse{
		Name: record,
		Meta: s.nameMeta(record),
	})
}
