package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/namastra/namastra-go/internal/constants"
	"github.com/namastra/namastra-go/internal/domain"
	"github.com/namastra/namastra-go/internal/util"
	"go.uber.org/zap"
)

// Engine selects, orders and paginates catalog records. It holds only
// read-only state and is safe for concurrent use.
type Engine struct {
	catalog *domain.Catalog
	logger  *zap.Logger
}

func NewEngine(catalog *domain.Catalog, logger *zap.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		logger:  logger,
	}
}

// Search applies the filters as a conjunction, sorts by popularity then
// modernity, and returns the requested page plus the pre-pagination total.
// An internal fault yields an error alongside an empty but well-formed
// response carrying the elapsed time; partial result sets are never returned.
func (e *Engine) Search(filters domain.SearchFilters) (resp *domain.SearchResponse, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Search failed", zap.Any("panic", r))
			resp = &domain.SearchResponse{
				Results: []*domain.NameRecord{},
				Total:   0,
				TookMs:  time.Since(start).Milliseconds(),
				Filters: filters,
			}
			err = fmt.Errorf("search failed: %v", r)
		}
	}()

	matched := e.filter(filters)
	sortRecords(matched)

	total := len(matched)

	offset := util.Max(filters.Offset, 0)
	limit := filters.Limit
	if limit <= 0 {
		limit = constants.SearchLimits.DefaultLimit
	}

	page := paginate(matched, offset, limit)

	return &domain.SearchResponse{
		Results: page,
		Total:   total,
		TookMs:  time.Since(start).Milliseconds(),
		Filters: filters,
	}, nil
}

// Query is the simple free-text path: case-insensitive substring match over
// name, meaning and nicknames, capped at a fixed page size with no
// pagination.
func (e *Engine) Query(q string) *domain.QueryResponse {
	start := time.Now()

	needle := util.Normalize(q)
	matched := make([]*domain.NameRecord, 0)
	for _, r := range e.catalog.Records() {
		if matchesQuery(r, needle) {
			matched = append(matched, r)
		}
	}

	total := len(matched)
	if len(matched) > constants.SearchLimits.SimpleQueryCap {
		matched = matched[:constants.SearchLimits.SimpleQueryCap]
	}

	return &domain.QueryResponse{
		Results: matched,
		Total:   total,
		TookMs:  time.Since(start).Milliseconds(),
		Query:   q,
	}
}

func (e *Engine) filter(filters domain.SearchFilters) []*domain.NameRecord {
	matched := make([]*domain.NameRecord, 0, e.catalog.Len())

	var query string
	if filters.Query != "" {
		query = util.Normalize(filters.Query)
	}

	for _, r := range e.catalog.Records() {
		if filters.Gender != nil && r.Gender != *filters.Gender && r.Gender != domain.GenderUnisex {
			continue
		}
		if filters.Syllables != nil && r.Syllables != *filters.Syllables {
			continue
		}
		if filters.Deity != nil && *filters.Deity != domain.DeityNone &&
			r.DeityAffinity != *filters.Deity && r.DeityAffinity != domain.DeityMultiple {
			continue
		}
		if len(filters.Sources) > 0 && !hasAnySource(r, filters.Sources) {
			continue
		}
		if len(filters.StartLetters) > 0 && !hasAnyPrefix(r.Name, filters.StartLetters) {
			continue
		}
		if len(filters.StartSounds) > 0 && !hasAnyPrefix(r.PhoneticStart, filters.StartSounds) {
			continue
		}
		// A zero or negative bound means no limit.
		if filters.LengthMax != nil && *filters.LengthMax > 0 && len(r.Name) > *filters.LengthMax {
			continue
		}
		if filters.GlobalPronounce && r.GlobalPronounce < constants.SearchLimits.PronounceFloor {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		matched = append(matched, r)
	}

	return matched
}

// sortRecords orders by popularity rank descending, then modernity
// descending. Remaining ties keep catalog order (stable sort).
func sortRecords(records []*domain.NameRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		pi, pj := records[i].PopularityRank(), records[j].PopularityRank()
		if pi != pj {
			return pi > pj
		}
		return records[i].Modernity > records[j].Modernity
	})
}

func paginate(records []*domain.NameRecord, offset, limit int) []*domain.NameRecord {
	if offset >= len(records) {
		return []*domain.NameRecord{}
	}
	end := util.Min(offset+limit, len(records))
	return records[offset:end]
}

func hasAnySource(r *domain.NameRecord, sources []domain.Source) bool {
	for _, s := range sources {
		if r.HasSource(s) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(value string, prefixes []string) bool {
	lower := strings.ToLower(value)
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func matchesQuery(r *domain.NameRecord, needle string) bool {
	if needle == "" {
		return false
	}
	if strings.Contains(strings.ToLower(r.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Meaning), needle) {
		return true
	}
	for _, nick := range r.Nicknames {
		if strings.Contains(strings.ToLower(nick), needle) {
			return true
		}
	}
	return false
}
