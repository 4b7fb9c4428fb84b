package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/namastra/namastra-go/internal/config"
	"github.com/namastra/namastra-go/internal/domain"
	"github.com/namastra/namastra-go/internal/service/search"
	"go.uber.org/zap"
)

type fakeParser struct {
	calls []string
}

func (f *fakeParser) Parse(_ context.Context, text string) *domain.ParsedWish {
	f.calls = append(f.calls, text)
	return domain.SafeParsedWish(text, "")
}

func newTestServer(t *testing.T) (*Server, *fakeParser) {
	t.Helper()

	records := []*domain.NameRecord{
		{
			ID: "n1", Name: "Vihaan", Slug: "vihaan", Gender: domain.GenderBoy,
			Syllables: 2, PhoneticStart: "Vi", DeityAffinity: domain.DeityVishnu,
			Sources: []domain.Source{domain.SourceSahasranama}, Meaning: "Dawn, morning",
			Language: "Sanskrit", RegionTags: []string{"Pan-India"},
			Modernity: 4, GlobalPronounce: 4, Popularity: domain.PopularityCommon,
		},
		{
			ID: "n2", Name: "Lakshmi", Slug: "lakshmi", Gender: domain.GenderGirl,
			Syllables: 2, PhoneticStart: "La", DeityAffinity: domain.DeityDevi,
			Sources: []domain.Source{domain.SourceVedas}, Meaning: "Goddess of wealth",
			Language: "Sanskrit", Modernity: 2, GlobalPronounce: 3,
			Popularity: domain.PopularityCommon,
		},
		{
			ID: "n3", Name: "Hriday", Slug: "hriday", Gender: domain.GenderBoy,
			Syllables: 2, PhoneticStart: "Hri", DeityAffinity: domain.DeityMultiple,
			Sources: []domain.Source{domain.SourceUpanishads}, Meaning: "Heart",
			Language: "Sanskrit", Modernity: 3, GlobalPronounce: 2,
			Popularity: domain.PopularityRare,
		},
	}

	catalog, err := domain.NewCatalog(records)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	logger := zap.NewNop()
	parser := &fakeParser{}
	engine := search.NewEngine(catalog, logger)
	site := config.SiteConfig{BaseURL: "https://namastra.example", Name: "NamAstra"}

	return NewServer(catalog, engine, parser, nil, site, logger), parser
}

func doRequest(t *testing.T, srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	body := []byte(`{"gender":"boy","syllables":2}`)
	rec := doRequest(t, srv, http.MethodPost, "/api/search", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 boy matches, got %d", resp.Total)
	}
}

func TestSearchEndpointMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/search", []byte(`{not json`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("error envelope is not JSON: %v", err)
	}
	if envelope["error"] == "" {
		t.Fatalf("missing error code in envelope: %v", envelope)
	}
}

func TestSimpleSearchEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/search?q=wealth", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 || resp.Results[0].Name != "Lakshmi" {
		t.Fatalf("expected Lakshmi, got %+v", resp)
	}
}

func TestSimpleSearchEmptyQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/search", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("empty query must not be an error, got %d", rec.Code)
	}

	var resp domain.QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 0 || len(resp.Results) != 0 {
		t.Fatalf("expected empty result set, got %+v", resp)
	}
}

func TestParseWishesEndpoint(t *testing.T) {
	srv, parser := newTestServer(t)

	body := []byte(`{"text":"Baby girl, inspired by Krishna"}`)
	rec := doRequest(t, srv, http.MethodPost, "/api/parse-wishes", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(parser.calls) != 1 || parser.calls[0] != "Baby girl, inspired by Krishna" {
		t.Fatalf("parser not invoked with request text: %v", parser.calls)
	}

	var wish domain.ParsedWish
	if err := json.Unmarshal(rec.Body.Bytes(), &wish); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if wish.Raw != "Baby girl, inspired by Krishna" {
		t.Fatalf("raw not echoed: %q", wish.Raw)
	}
}

func TestParseWishesMissingText(t *testing.T) {
	srv, parser := newTestServer(t)

	for _, body := range []string{`{}`, `{"text":"   "}`, `not json`} {
		rec := doRequest(t, srv, http.MethodPost, "/api/parse-wishes", []byte(body))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
	if len(parser.calls) != 0 {
		t.Fatalf("parser must not run for rejected requests: %v", parser.calls)
	}
}

func TestNameDetailEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/names/vihaan", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp nameDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Name == nil || resp.Name.Slug != "vihaan" {
		t.Fatalf("unexpected record: %+v", resp.Name)
	}
	if !strings.Contains(resp.Meta.Title, "Vihaan") {
		t.Fatalf("meta title missing name: %q", resp.Meta.Title)
	}
	if resp.Meta.Canonical != "https://namastra.example/name/vihaan" {
		t.Fatalf("unexpected canonical URL: %q", resp.Meta.Canonical)
	}
}

func TestNameDetailNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/names/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeityIndexEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/deities", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Deities []deityIndexEntry `json:"deities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	counts := make(map[domain.Deity]int, len(resp.Deities))
	for _, e := range resp.Deities {
		counts[e.Deity] = e.Count
	}
	// Vihaan plus Hriday (Multiple) count for Vishnu.
	if counts[domain.DeityVishnu] != 2 {
		t.Fatalf("expected 2 Vishnu names, got %d", counts[domain.DeityVishnu])
	}
	if _, ok := counts[domain.DeityNone]; ok {
		t.Fatalf("None must not be listed: %v", resp.Deities)
	}
}

func TestDeityListingEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/deities/vishnu", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp deityListingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Deity != domain.DeityVishnu || resp.Total != 2 {
		t.Fatalf("unexpected listing: deity=%s total=%d", resp.Deity, resp.Total)
	}
	if !strings.Contains(resp.Meta.Title, "Vishnu") {
		t.Fatalf("meta title missing deity: %q", resp.Meta.Title)
	}
}

func TestDeityListingUnknown(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/deities/zeus", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSitemapEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/sitemap.xml", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/xml") {
		t.Fatalf("unexpected content type: %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"<urlset",
		"https://namastra.example/name/vihaan",
		"https://namastra.example/deity/vishnu",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("sitemap missing %q", want)
		}
	}
	if strings.Contains(body, "/deity/none") {
		t.Fatalf("sitemap must not list a None deity page")
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", resp)
	}
}
