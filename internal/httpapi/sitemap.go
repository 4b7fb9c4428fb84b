package httpapi

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/namastra/namastra-go/internal/domain"
	"go.uber.org/zap"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC().Format("2006-01-02")

	urls := []sitemapURL{{
		Loc:        s.site.BaseURL,
		LastMod:    now,
		ChangeFreq: "daily",
		Priority:   "1.0",
	}}

	for _, slug := range s.catalog.Slugs() {
		urls = append(urls, sitemapURL{
			Loc:        s.site.BaseURL + "/name/" + slug,
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	for _, d := range domain.ListedDeities() {
		urls = append(urls, sitemapURL{
			Loc:        s.site.BaseURL + "/deity/" + strings.ToLower(string(d)),
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return
	}
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		s.logger.Error("Failed to encode sitemap", zap.Error(err))
	}
}
