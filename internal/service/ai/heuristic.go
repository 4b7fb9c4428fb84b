package ai

import (
	"regexp"
	"strings"

	"github.com/namastra/namastra-go/internal/domain"
)

var startLetterPattern = regexp.MustCompile(`[A-Z][a-z]+`)

// deity keywords in fixed checking order; first hit wins.
var deityKeywords = []struct {
	keyword string
	deity   domain.Deity
}{
	{"vishnu", domain.DeityVishnu},
	{"shiva", domain.DeityShiva},
	{"devi", domain.DeityDevi},
	{"ganesha", domain.DeityGanesha},
	{"krishna", domain.DeityKrishna},
	{"rama", domain.DeityRama},
}

// source keywords tested independently; every hit is included, in this order.
var sourceKeywords = []struct {
	keyword string
	source  domain.Source
}{
	{"veda", domain.SourceVedas},
	{"sahasranama", domain.SourceSahasranama},
	{"upanishad", domain.SourceUpanishads},
	{"purana", domain.SourcePuranas},
	{"epic", domain.SourceEpics},
}

// HeuristicParse is the deterministic fallback parser: case-insensitive
// keyword matching over the raw text. It is a pure function of its input and
// never touches the network.
func HeuristicParse(text string) *domain.ParsedWish {
	lower := strings.ToLower(text)

	gender := domain.GenderBoy
	if strings.Contains(lower, "girl") {
		gender = domain.GenderGirl
	} else if strings.Contains(lower, "boy") {
		gender = domain.GenderBoy
	}

	deity := domain.DeityNone
	for _, dk := range deityKeywords {
		if strings.Contains(lower, dk.keyword) {
			deity = dk.deity
			break
		}
	}

	sources := []domain.Source{}
	for _, sk := range sourceKeywords {
		if strings.Contains(lower, sk.keyword) {
			sources = append(sources, sk.source)
		}
	}

	startLetters := startLetterPattern.FindAllString(text, -1)
	if startLetters == nil {
		startLetters = []string{}
	}

	vibe := domain.VibeAny
	switch {
	case strings.Contains(lower, "modern"):
		vibe = domain.VibeStrong
	case strings.Contains(lower, "soft"):
		vibe = domain.VibeSoft
	case strings.Contains(lower, "traditional"):
		vibe = domain.VibeAny
	}

	return &domain.ParsedWish{
		Gender:       gender,
		Syllables:    syllablesFromText(text),
		Deity:        deity,
		Sources:      sources,
		StartLetters: startLetters,
		Vibe:         vibe,
		Raw:          text,
	}
}

// syllablesFromText picks the first of the digits 1, 2 or 3 encountered when
// scanning the text left to right. The legacy behavior checked 2, then 3,
// then 1, which made "1 or 2 syllables" report 2; first-encountered is the
// unambiguous policy.
func syllablesFromText(text string) *int {
	for _, r := range text {
		switch r {
		case '1', '2', '3':
			n := int(r - '0')
			return &n
		}
	}
	return nil
}
