package httpapi

import (
	"fmt"
	"strings"

	"github.com/namastra/namastra-go/internal/domain"
)

// PageMeta is the SEO block served alongside name and deity payloads so the
// frontend can render head tags without recomputing them.
type PageMeta struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Canonical   string   `json:"canonical"`
}

func (s *Server) nameMeta(r *domain.NameRecord) PageMeta {
	title := fmt.Sprintf("%s - Hindu Baby Name Meaning & Origin | %s", r.Name, s.site.Name)
	description := fmt.Sprintf(
		"Discover the meaning, origin, and significance of the name %s. %s. Perfect for %s babies.",
		r.Name, r.Meaning, r.Gender,
	)

	keywords := []string{r.Name, "Hindu baby names", string(r.Gender), r.Meaning, r.Language}
	if r.DeityAffinity != domain.DeityNone {
		keywords = append(keywords, string(r.DeityAffinity))
	}
	for _, src := range r.Sources {
		keywords = append(keywords, string(src))
	}
	keywords = append(keywords, r.RegionTags...)

	return PageMeta{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		Canonical:   fmt.Sprintf("%s/name/%s", s.site.BaseURL, r.Slug),
	}
}

func (s *Server) deityMeta(d domain.Deity, names []*domain.NameRecord) PageMeta {
	title := fmt.Sprintf("%s Baby Names - Hindu Names Inspired by %s | %s", d, d, s.site.Name)
	description := fmt.Sprintf(
		"Discover beautiful Hindu baby names inspired by %s. %d meaningful names with origins, meanings, and significance.",
		d, len(names),
	)

	keywords := []string{
		fmt.Sprintf("%s baby names", d),
		"Hindu names",
		string(d),
		"baby names",
		"meaningful names",
	}
	for i, n := range names {
		if i == 5 {
			break
		}
		keywords = append(keywords, n.Name)
	}

	return PageMeta{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		Canonical:   fmt.Sprintf("%s/deity/%s", s.site.BaseURL, strings.ToLower(string(d))),
	}
}
