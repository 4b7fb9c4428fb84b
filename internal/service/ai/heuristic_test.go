package ai

import (
	"reflect"
	"testing"

	"github.com/namastra/namastra-go/internal/domain"
)

func TestHeuristicParseScenario(t *testing.T) {
	wish := HeuristicParse("Baby girl, inspired by Krishna, 2 syllables")

	if wish.Gender != domain.GenderGirl {
		t.Fatalf("expected gender girl, got %s", wish.Gender)
	}
	if wish.Syllables == nil || *wish.Syllables != 2 {
		t.Fatalf("expected syllables 2, got %v", wish.Syllables)
	}
	if wish.Deity != domain.DeityKrishna {
		t.Fatalf("expected deity Krishna, got %s", wish.Deity)
	}
	if len(wish.Sources) != 0 {
		t.Fatalf("expected no sources, got %v", wish.Sources)
	}
	if !reflect.DeepEqual(wish.StartLetters, []string{"Baby", "Krishna"}) {
		t.Fatalf("unexpected start letters: %v", wish.StartLetters)
	}
	if wish.Vibe != domain.VibeAny {
		t.Fatalf("expected vibe any, got %s", wish.Vibe)
	}
	if wish.Raw != "Baby girl, inspired by Krishna, 2 syllables" {
		t.Fatalf("raw text not preserved: %q", wish.Raw)
	}
}

func TestHeuristicParseGender(t *testing.T) {
	tests := []struct {
		text string
		want domain.Gender
	}{
		{"a name for my girl", domain.GenderGirl},
		{"a name for my boy", domain.GenderBoy},
		{"a nice name please", domain.GenderBoy},
		{"girl or boy, either works", domain.GenderGirl},
	}

	for _, tt := range tests {
		if got := HeuristicParse(tt.text).Gender; got != tt.want {
			t.Errorf("HeuristicParse(%q).Gender = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestHeuristicParseDeityFirstHitWins(t *testing.T) {
	// The keyword list is checked in fixed order, so vishnu beats krishna
	// even when krishna appears first in the text.
	wish := HeuristicParse("krishna or vishnu inspired")
	if wish.Deity != domain.DeityVishnu {
		t.Fatalf("expected Vishnu, got %s", wish.Deity)
	}
}

func TestHeuristicParseSources(t *testing.T) {
	wish := HeuristicParse("from the vedas or the puranas")
	want := []domain.Source{domain.SourceVedas, domain.SourcePuranas}
	if !reflect.DeepEqual(wish.Sources, want) {
		t.Fatalf("expected %v, got %v", want, wish.Sources)
	}

	if got := HeuristicParse("no scripture mentioned").Sources; len(got) != 0 {
		t.Fatalf("expected empty sources, got %v", got)
	}
}

func TestHeuristicParseSyllablesFirstDigit(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"1 or 2 syllables", 1},
		{"2 or 3 syllables", 2},
		{"exactly 3 syllables", 3},
	}

	for _, tt := range tests {
		wish := HeuristicParse(tt.text)
		if wish.Syllables == nil || *wish.Syllables != tt.want {
			t.Errorf("HeuristicParse(%q).Syllables = %v, want %d", tt.text, wish.Syllables, tt.want)
		}
	}

	if got := HeuristicParse("short and sweet").Syllables; got != nil {
		t.Fatalf("expected nil syllables, got %d", *got)
	}
	// Digits outside 1..3 do not count.
	if got := HeuristicParse("a 4 letter name").Syllables; got != nil {
		t.Fatalf("expected nil syllables for digit 4, got %d", *got)
	}
}

func TestHeuristicParseVibe(t *testing.T) {
	tests := []struct {
		text string
		want domain.Vibe
	}{
		{"something modern", domain.VibeStrong},
		{"a soft sounding name", domain.VibeSoft},
		{"a traditional name", domain.VibeAny},
		{"whatever fits", domain.VibeAny},
		{"modern but soft", domain.VibeStrong},
	}

	for _, tt := range tests {
		if got := HeuristicParse(tt.text).Vibe; got != tt.want {
			t.Errorf("HeuristicParse(%q).Vibe = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestHeuristicParseDeterministic(t *testing.T) {
	text := "Modern girl name inspired by Devi, 2 syllables, starting with Saa"
	first := HeuristicParse(text)
	for i := 0; i < 5; i++ {
		if !reflect.DeepEqual(HeuristicParse(text), first) {
			t.Fatalf("heuristic parse is not deterministic for %q", text)
		}
	}
}
