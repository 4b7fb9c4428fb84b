package ai

import (
	"github.com/namastra/namastra-go/internal/domain"
)

// The sanitizing validator is the single trust boundary between untrusted
// parser output and the rest of the system. It runs unconditionally on both
// the model path and the heuristic path: enum fields outside their closed
// sets are replaced by their defaults, syllable counts outside (0,5] are
// dropped, and list fields keep only string elements.

// SanitizeMap validates an untrusted JSON payload (as decoded into a generic
// map) into a well-formed ParsedWish. raw is the caller's original text and
// is always preserved verbatim, regardless of what the payload claims.
func SanitizeMap(raw string, payload map[string]any) *domain.ParsedWish {
	wish := &domain.ParsedWish{
		Gender:       domain.GenderBoy,
		Deity:        domain.DeityNone,
		Sources:      []domain.Source{},
		StartLetters: []string{},
		Vibe:         domain.VibeAny,
		Raw:          raw,
	}

	if g, ok := payload["gender"].(string); ok && domain.Gender(g).Valid() {
		wish.Gender = domain.Gender(g)
	}

	if n, ok := payload["syllables"].(float64); ok {
		wish.Syllables = clampSyllables(n)
	}

	if d, ok := payload["deity"].(string); ok && domain.Deity(d).Valid() {
		wish.Deity = domain.Deity(d)
	}

	if arr, ok := payload["sources"].([]any); ok {
		for _, item := range arr {
			if s, ok := item.(string); ok {
				wish.Sources = append(wish.Sources, domain.Source(s))
			}
		}
	}

	if arr, ok := payload["startLetters"].([]any); ok {
		for _, item := range arr {
			if s, ok := item.(string); ok {
				wish.StartLetters = append(wish.StartLetters, s)
			}
		}
	}

	if v, ok := payload["vibe"].(string); ok && domain.Vibe(v).Valid() {
		wish.Vibe = domain.Vibe(v)
	}

	return wish
}

// SanitizeWish clamps an already-typed wish to the same closed-set
// constraints. The input is not mutated.
func SanitizeWish(raw string, in *domain.ParsedWish) *domain.ParsedWish {
	if in == nil {
		return domain.SafeParsedWish(raw, "")
	}

	wish := &domain.ParsedWish{
		Gender:       in.Gender,
		Deity:        in.Deity,
		Sources:      in.Sources,
		StartLetters: in.StartLetters,
		Vibe:         in.Vibe,
		Raw:          raw,
		Error:        in.Error,
	}

	if !wish.Gender.Valid() {
		wish.Gender = domain.GenderBoy
	}
	if !wish.Deity.Valid() {
		wish.Deity = domain.DeityNone
	}
	if !wish.Vibe.Valid() {
		wish.Vibe = domain.VibeAny
	}
	if in.Syllables != nil {
		wish.Syllables = clampSyllables(float64(*in.Syllables))
	}
	if wish.Sources == nil {
		wish.Sources = []domain.Source{}
	}
	if wish.StartLetters == nil {
		wish.StartLetters = []string{}
	}

	return wish
}

// clampSyllables accepts a count only when it is a whole number in (0,5].
func clampSyllables(n float64) *int {
	if n <= 0 || n > 5 || n != float64(int(n)) {
		return nil
	}
	v := int(n)
	return &v
}
