package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/namastra/namastra-go/internal/constants"
	"github.com/namastra/namastra-go/internal/domain"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type deityIndexEntry struct {
	Deity domain.Deity `json:"deity"`
	Count int          `json:"count"`
}

func (s *Server) handleDeityIndex(w http.ResponseWriter, r *http.Request) {
	entries := make([]deityIndexEntry, 0, len(domain.ListedDeities()))
	for _, d := range domain.ListedDeities() {
		count := len(s.catalog.ByDeity(d))
		if count == 0 {
			continue
		}
		entries = append(entries, deityIndexEntry{Deity: d, Count: count})
	}

	writeJSON(w, http.StatusOK, map[string]any{"deities": entries})
}

type deityListingResponse struct {
	Deity domain.Deity         `json:"deity"`
	Names []*domain.NameRecord `json:"names"`
	Total int                  `json:"total"`
	Meta  PageMeta             `json:"meta"`
}

// handleDeityListing serves every name whose affinity matches the deity or is
// Multiple. Listings go through the cache read-through when one is wired.
func (s *Server) handleDeityListing(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "deity")
	deity := canonicalDeity(raw)
	if deity == "" {
		writeError(w, http.StatusNotFound, "deity_not_found", "unknown deity "+raw)
		return
	}

	cacheKey := "deity:" + strings.ToLower(string(deity))
	if s.cache != nil {
		var cached deityListingResponse
		if found, err := s.cache.Get(r.Context(), cacheKey, &cached); err == nil && found {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	resp := s.buildDeityListing(deity)

	if s.cache != nil {
		if err := s.cache.Set(r.Context(), cacheKey, resp, constants.CacheTTL.DeityListing); err != nil {
			s.logger.Warn("Failed to cache deity listing", zap.String("deity", string(deity)), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) buildDeityListing(d domain.Deity) deityListingResponse {
	names := s.catalog.ByDeity(d)
	return deityListingResponse{
		Deity: d,
		Names: names,
		Total: len(names),
		Meta:  s.deityMeta(d, names),
	}
}

// WarmListings preloads every deity listing into the cache so the first page
// hit after a deploy does not pay the assembly cost. A nil cache makes it a
// no-op.
func (s *Server) WarmListings(ctx context.Context) {
	if s.cache == nil {
		return
	}

	deities := domain.ListedDeities()
	p := pool.New().WithMaxGoroutines(4)

	for _, d := range deities {
		d := d
		p.Go(func() {
			key := "deity:" + strings.ToLower(string(d))
			resp := s.buildDeityListing(d)
			if err := s.cache.Set(ctx, key, resp, constants.CacheTTL.DeityListing); err != nil {
				s.logger.Warn("Failed to warm deity listing",
					zap.String("deity", string(d)), zap.Error(err))
			}
		})
	}

	p.Wait()
	s.logger.Info("Deity listings warmed", zap.Int("deities", len(deities)))
}

// canonicalDeity maps a lowercase path segment to its deity value. None has
// no page, so it resolves to nothing.
func canonicalDeity(raw string) domain.Deity {
	for _, d := range domain.ListedDeities() {
		if strings.EqualFold(raw, string(d)) {
			return d
		}
	}
	return ""
}
