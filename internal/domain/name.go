package domain

// Gender classifies a name's target gender.
type Gender string

const (
	GenderBoy    Gender = "boy"
	GenderGirl   Gender = "girl"
	GenderUnisex Gender = "unisex"
)

var genderValues = map[Gender]bool{
	GenderBoy:    true,
	GenderGirl:   true,
	GenderUnisex: true,
}

func (g Gender) Valid() bool {
	return genderValues[g]
}

// Deity is a name's associative link to a deity. DeityMultiple matches any
// single-deity filter; DeityNone means no affinity.
type Deity string

const (
	DeityNone     Deity = "None"
	DeityVishnu   Deity = "Vishnu"
	DeityShiva    Deity = "Shiva"
	DeityDevi     Deity = "Devi"
	DeityGanesha  Deity = "Ganesha"
	DeityMurugan  Deity = "Murugan"
	DeityRama     Deity = "Rama"
	DeityKrishna  Deity = "Krishna"
	DeityMultiple Deity = "Multiple"
)

// DeityValues lists every deity value in canonical order.
var DeityValues = []Deity{
	DeityNone,
	DeityVishnu,
	DeityShiva,
	DeityDevi,
	DeityGanesha,
	DeityMurugan,
	DeityRama,
	DeityKrishna,
	DeityMultiple,
}

func (d Deity) Valid() bool {
	for _, v := range DeityValues {
		if d == v {
			return true
		}
	}
	return false
}

// Source tags a name with the canonical text tradition it appears in.
type Source string

const (
	SourceVedas       Source = "Vedas"
	SourceUpanishads  Source = "Upanishads"
	SourcePuranas     Source = "Puranas"
	SourceEpics       Source = "Epics"
	SourceSahasranama Source = "Sahasranama"
	SourceRegional    Source = "Regional"
	SourceSanskrit    Source = "Sanskrit"
	SourceNone        Source = "None"
)

// Script names a writing system a name can be rendered in.
type Script string

const (
	ScriptLatin      Script = "Latin"
	ScriptDevanagari Script = "Devanagari"
	ScriptTamil      Script = "Tamil"
	ScriptTelugu     Script = "Telugu"
	ScriptKannada    Script = "Kannada"
	ScriptMalayalam  Script = "Malayalam"
	ScriptGujarati   Script = "Gujarati"
	ScriptGurmukhi   Script = "Gurmukhi"
	ScriptBengali    Script = "Bengali-Assamese"
)

// Vibe is a coarse stylistic classifier for the desired tone of a name.
type Vibe string

const (
	VibeSoft   Vibe = "soft"
	VibeStrong Vibe = "strong"
	VibeAny    Vibe = "any"
)

var vibeValues = map[Vibe]bool{
	VibeSoft:   true,
	VibeStrong: true,
	VibeAny:    true,
}

func (v Vibe) Valid() bool {
	return vibeValues[v]
}

// Popularity is a coarse frequency bucket. The empty value means unscored and
// ranks the same as uncommon.
type Popularity string

const (
	PopularityRare     Popularity = "rare"
	PopularityUncommon Popularity = "uncommon"
	PopularityCommon   Popularity = "common"
)

// NameRecord is an immutable catalog entry. Records are created once at load
// time and never mutated afterwards.
type NameRecord struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Gender          Gender            `json:"gender"`
	Scripts         map[Script]string `json:"scripts,omitempty"`
	Syllables       int               `json:"syllables"`
	PhoneticStart   string            `json:"phoneticStart"`
	DeityAffinity   Deity             `json:"deityAffinity"`
	Sources         []Source          `json:"sources"`
	Meaning         string            `json:"meaning"`
	Language        string            `json:"language"`
	RegionTags      []string          `json:"regionTags"`
	Modernity       int               `json:"modernity"`
	GlobalPronounce int               `json:"globalPronounce"`
	Nicknames       []string          `json:"nicknames"`
	Related         []string          `json:"related"`
	Popularity      Popularity        `json:"popularity,omitempty"`
}

// PopularityRank maps the popularity bucket to a sortable rank. Unscored
// records rank as uncommon.
func (r *NameRecord) PopularityRank() int {
	switch r.Popularity {
	case PopularityCommon:
		return 3
	case PopularityRare:
		return 1
	default:
		return 2
	}
}

// HasSource reports whether the record carries the given source tag.
func (r *NameRecord) HasSource(s Source) bool {
	for _, tag := range r.Sources {
		if tag == s {
			return true
		}
	}
	return false
}
