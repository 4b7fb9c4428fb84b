// Command fetch_names pulls name candidates off a listing page and writes
// them as draft catalog records. The output is review material, not a drop-in
// replacement for internal/domain/data/names.json: meanings and tags need a
// human pass before records are promoted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/namastra/namastra-go/internal/util"
)

const (
	userAgent      = "Mozilla/5.0 (compatible; NamAstraBot/1.0; +https://namastra.com)"
	requestTimeout = 15 * time.Second
	delayBetween   = 350 * time.Millisecond
)

type draftRecord struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Gender  string `json:"gender"`
	Meaning string `json:"meaning,omitempty"`
	Source  string `json:"sourceUrl"`
}

func main() {
	var (
		listURL   = flag.String("url", "", "listing page to scrape")
		gender    = flag.String("gender", "boy", "gender to stamp on every record (boy, girl, unisex)")
		selector  = flag.String("selector", "li.name-entry", "CSS selector for one name entry")
		pages     = flag.Int("pages", 1, "number of ?page=N pages to walk")
		outputDir = flag.String("out", "internal/domain/data", "directory for the draft file")
	)
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if *listURL == "" {
		logger.Fatal("missing required -url flag")
	}

	ctx := context.Background()
	httpClient := &http.Client{Timeout: requestTimeout}

	var drafts []draftRecord
	seen := make(map[string]bool)

	for page := 1; page <= *pages; page++ {
		pageURL := *listURL
		if *pages > 1 {
			pageURL = fmt.Sprintf("%s?page=%d", *listURL, page)
		}
		logger.Info("Fetching listing", zap.Int("page", page), zap.String("url", pageURL))

		records, err := fetchPage(ctx, httpClient, pageURL, *selector, *gender)
		if err != nil {
			logger.Error("failed to fetch listing page", zap.String("url", pageURL), zap.Error(err))
			continue
		}

		for _, rec := range records {
			if seen[rec.Slug] {
				continue
			}
			seen[rec.Slug] = true
			drafts = append(drafts, rec)
		}

		time.Sleep(delayBetween)
	}

	if len(drafts) == 0 {
		logger.Fatal("no names scraped")
	}

	outputFile := filepath.Join(*outputDir, fmt.Sprintf("names_draft_%s.json", *gender))
	if err := writeDrafts(outputFile, drafts); err != nil {
		logger.Fatal("failed to write drafts", zap.Error(err))
	}

	logger.Info("Name fetch completed", zap.Int("count", len(drafts)), zap.String("output", outputFile))
}

func fetchPage(ctx context.Context, client *http.Client, url, selector, gender string) ([]draftRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var records []draftRecord
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find(".name").First().Text())
		if name == "" {
			name = strings.TrimSpace(sel.Find("a").First().Text())
		}
		if name == "" {
			return
		}

		records = append(records, draftRecord{
			Name:    name,
			Slug:    util.Slugify(name),
			Gender:  gender,
			Meaning: normalizeText(sel.Find(".meaning").First().Text()),
			Source:  url,
		})
	})

	return records, nil
}

func normalizeText(input string) string {
	input = strings.ReplaceAll(input, "\u00a0", " ")
	lines := strings.Split(input, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	return strings.Join(filtered, " ")
}

func writeDrafts(outputFile string, drafts []draftRecord) error {
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := outputFile + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpFile, outputFile)
}
