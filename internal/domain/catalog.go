package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/names.json
var catalogJSON []byte

// Catalog is the full, immutable in-memory collection of name records. It is
// built once by the composition root and shared read-only across requests.
type Catalog struct {
	records []*NameRecord
	bySlug  map[string]*NameRecord
}

// LoadCatalog builds the catalog from the embedded dataset.
func LoadCatalog() (*Catalog, error) {
	var records []*NameRecord
	if err := json.Unmarshal(catalogJSON, &records); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return NewCatalog(records)
}

// NewCatalog validates the given records and indexes them by slug.
func NewCatalog(records []*NameRecord) (*Catalog, error) {
	bySlug := make(map[string]*NameRecord, len(records))
	for i, r := range records {
		if err := validateRecord(r); err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, r.Name, err)
		}
		if _, exists := bySlug[r.Slug]; exists {
			return nil, fmt.Errorf("record %d (%q): duplicate slug %q", i, r.Name, r.Slug)
		}
		bySlug[r.Slug] = r
	}

	return &Catalog{
		records: records,
		bySlug:  bySlug,
	}, nil
}

func validateRecord(r *NameRecord) error {
	if r == nil {
		return fmt.Errorf("nil record")
	}
	if r.Name == "" {
		return fmt.Errorf("empty name")
	}
	if r.Slug == "" {
		return fmt.Errorf("empty slug")
	}
	if !r.Gender.Valid() {
		return fmt.Errorf("invalid gender %q", r.Gender)
	}
	if !r.DeityAffinity.Valid() {
		return fmt.Errorf("invalid deity affinity %q", r.DeityAffinity)
	}
	if r.Syllables < 1 {
		return fmt.Errorf("syllables must be >= 1, got %d", r.Syllables)
	}
	if r.Modernity < 1 || r.Modernity > 5 {
		return fmt.Errorf("modernity must be in [1,5], got %d", r.Modernity)
	}
	if r.GlobalPronounce < 1 || r.GlobalPronounce > 5 {
		return fmt.Errorf("globalPronounce must be in [1,5], got %d", r.GlobalPronounce)
	}
	return nil
}

// Records returns every record in catalog order.
func (c *Catalog) Records() []*NameRecord {
	return c.records
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// BySlug returns the record for the given slug, or nil.
func (c *Catalog) BySlug(slug string) *NameRecord {
	return c.bySlug[slug]
}

// ByDeity returns records whose affinity matches the deity or is Multiple.
func (c *Catalog) ByDeity(d Deity) []*NameRecord {
	matched := make([]*NameRecord, 0)
	for _, r := range c.records {
		if r.DeityAffinity == d || r.DeityAffinity == DeityMultiple {
			matched = append(matched, r)
		}
	}
	return matched
}

// ByGender returns records matching the gender, including unisex records.
func (c *Catalog) ByGender(g Gender) []*NameRecord {
	matched := make([]*NameRecord, 0)
	for _, r := range c.records {
		if r.Gender == g || r.Gender == GenderUnisex {
			matched = append(matched, r)
		}
	}
	return matched
}

// Slugs returns every slug in catalog order.
func (c *Catalog) Slugs() []string {
	slugs := make([]string, len(c.records))
	for i, r := range c.records {
		slugs[i] = r.Slug
	}
	return slugs
}

// ListedDeities returns every deity value that gets a category page, meaning
// all enumerated values except None.
func ListedDeities() []Deity {
	listed := make([]Deity, 0, len(DeityValues)-1)
	for _, d := range DeityValues {
		if d != DeityNone {
			listed = append(listed, d)
		}
	}
	return listed
}
