package domain

// ParsedWish is the structured interpretation of a free-text naming request.
// Raw always carries the caller's original text verbatim. Error is set only
// when the parser had to fall back to the maximally-safe default response.
type ParsedWish struct {
	Gender       Gender   `json:"gender"`
	Syllables    *int     `json:"syllables"`
	Deity        Deity    `json:"deity"`
	Sources      []Source `json:"sources"`
	StartLetters []string `json:"startLetters"`
	Vibe         Vibe     `json:"vibe"`
	Raw          string   `json:"raw"`
	Error        string   `json:"error,omitempty"`
}

// SafeParsedWish returns the maximally-safe default response for the given
// input text, used when parsing fails in a way no fallback can recover from.
func SafeParsedWish(raw, errMarker string) *ParsedWish {
	return &ParsedWish{
		Gender:       GenderBoy,
		Syllables:    nil,
		Deity:        DeityNone,
		Sources:      []Source{},
		StartLetters: []string{},
		Vibe:         VibeAny,
		Raw:          raw,
		Error:        errMarker,
	}
}

// SearchFilters is a transient per-request value. Every field is optional;
// absence means "no constraint". Script, Themes, Nakshatra and Vibe are
// accepted at the boundary but do not constrain results yet.
type SearchFilters struct {
	Gender          *Gender  `json:"gender,omitempty"`
	Syllables       *int     `json:"syllables,omitempty"`
	Script          *Script  `json:"script,omitempty"`
	Deity           *Deity   `json:"deity,omitempty"`
	Sources         []Source `json:"sources,omitempty"`
	Themes          []string `json:"themes,omitempty"`
	StartLetters    []string `json:"startLetters,omitempty"`
	StartSounds     []string `json:"startSounds,omitempty"`
	Vibe            *Vibe    `json:"vibe,omitempty"`
	LengthMax       *int     `json:"lengthMax,omitempty"`
	GlobalPronounce bool     `json:"globalPronounce,omitempty"`
	Nakshatra       *string  `json:"nakshatra,omitempty"`
	Query           string   `json:"query,omitempty"`
	Limit           int      `json:"limit,omitempty"`
	Offset          int      `json:"offset,omitempty"`
}

// SearchResponse is a single page of filtered, sorted results. Total counts
// matches before pagination; TookMs is wall-clock time for observability.
type SearchResponse struct {
	Results []*NameRecord `json:"results"`
	Total   int           `json:"total"`
	TookMs  int64         `json:"tookMs"`
	Filters SearchFilters `json:"filters"`
}

// QueryResponse is the simple free-text search result page.
type QueryResponse struct {
	Results []*NameRecord `json:"results"`
	Total   int           `json:"total"`
	TookMs  int64         `json:"tookMs"`
	Query   string        `json:"query"`
}
