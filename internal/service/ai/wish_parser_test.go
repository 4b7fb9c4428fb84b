package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/namastra/namastra-go/internal/domain"
	"github.com/namastra/namastra-go/internal/prompt"
	"go.uber.org/zap"
)

type fakeInvoker struct {
	payload map[string]any
	err     error
	calls   int
}

func (f *fakeInvoker) GenerateJSON(_ context.Context, _ string, dest any) (*GenerateMetadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if m, ok := dest.(*map[string]any); ok {
		*m = f.payload
	}
	return &GenerateMetadata{Provider: "gemini", Model: "test-model"}, nil
}

func newTestParser(invoker ModelInvoker) *WishParser {
	return NewWishParser(
		invoker,
		prompt.DefaultPromptBuilder(),
		NewParseCache(time.Minute),
		nil,
		time.Second,
		zap.NewNop(),
	)
}

func TestParseModelSuccess(t *testing.T) {
	invoker := &fakeInvoker{payload: map[string]any{
		"gender":    "girl",
		"syllables": float64(2),
		"deity":     "Devi",
		"vibe":      "soft",
	}}
	parser := newTestParser(invoker)

	wish := parser.Parse(context.Background(), "soft girl name for Devi")

	if wish.Gender != domain.GenderGirl {
		t.Fatalf("expected girl, got %s", wish.Gender)
	}
	if wish.Deity != domain.DeityDevi {
		t.Fatalf("expected Devi, got %s", wish.Deity)
	}
	if wish.Syllables == nil || *wish.Syllables != 2 {
		t.Fatalf("expected syllables 2, got %v", wish.Syllables)
	}
	if wish.Raw != "soft girl name for Devi" {
		t.Fatalf("raw not preserved: %q", wish.Raw)
	}
	if wish.Error != "" {
		t.Fatalf("unexpected error marker: %q", wish.Error)
	}
}

func TestParseModelFailureFallsBackToHeuristic(t *testing.T) {
	invoker := &fakeInvoker{err: errors.New("provider unreachable")}
	parser := newTestParser(invoker)

	wish := parser.Parse(context.Background(), "Baby girl, inspired by Krishna, 2 syllables")

	// The heuristic result, not an error response.
	if wish.Error != "" {
		t.Fatalf("fallback must not set the error marker, got %q", wish.Error)
	}
	if wish.Gender != domain.GenderGirl {
		t.Fatalf("expected heuristic gender girl, got %s", wish.Gender)
	}
	if wish.Deity != domain.DeityKrishna {
		t.Fatalf("expected heuristic deity Krishna, got %s", wish.Deity)
	}
	if wish.Syllables == nil || *wish.Syllables != 2 {
		t.Fatalf("expected heuristic syllables 2, got %v", wish.Syllables)
	}
}

func TestParseWithoutInvokerIsHeuristicOnly(t *testing.T) {
	parser := newTestParser(nil)

	wish := parser.Parse(context.Background(), "modern boy name from the vedas")

	if wish.Gender != domain.GenderBoy {
		t.Fatalf("expected boy, got %s", wish.Gender)
	}
	if len(wish.Sources) != 1 || wish.Sources[0] != domain.SourceVedas {
		t.Fatalf("expected Vedas source, got %v", wish.Sources)
	}
	if wish.Vibe != domain.VibeStrong {
		t.Fatalf("expected strong vibe for modern, got %s", wish.Vibe)
	}
}

func TestParseCachesByNormalizedText(t *testing.T) {
	invoker := &fakeInvoker{payload: map[string]any{"gender": "girl"}}
	parser := newTestParser(invoker)

	first := parser.Parse(context.Background(), "Girl Name")
	second := parser.Parse(context.Background(), "girl name")

	if invoker.calls != 1 {
		t.Fatalf("expected a single model call, got %d", invoker.calls)
	}
	if first.Gender != second.Gender {
		t.Fatalf("cached parse diverged: %s vs %s", first.Gender, second.Gender)
	}
	// Raw must echo each request's own text even on a cache hit.
	if first.Raw != "Girl Name" || second.Raw != "girl name" {
		t.Fatalf("raw not re-stamped on cache hit: %q / %q", first.Raw, second.Raw)
	}
}

type panickingInvoker struct{}

func (panickingInvoker) GenerateJSON(context.Context, string, any) (*GenerateMetadata, error) {
	panic("invoker blew up")
}

func TestParsePanicYieldsSafeResponse(t *testing.T) {
	parser := newTestParser(panickingInvoker{})

	wish := parser.Parse(context.Background(), "girl name please")

	if wish == nil {
		t.Fatal("expected a well-formed wish despite the panic")
	}
	if wish.Error == "" {
		t.Fatal("safe response must carry the error marker")
	}
	if wish.Raw != "girl name please" {
		t.Fatalf("raw not preserved: %q", wish.Raw)
	}
	if wish.Gender != domain.GenderBoy || wish.Deity != domain.DeityNone || wish.Vibe != domain.VibeAny {
		t.Fatalf("expected safe defaults, got %+v", wish)
	}
	if wish.Syllables != nil || len(wish.Sources) != 0 || len(wish.StartLetters) != 0 {
		t.Fatalf("expected empty optional fields, got %+v", wish)
	}
}

func TestParseSanitizesModelOutput(t *testing.T) {
	invoker := &fakeInvoker{payload: map[string]any{
		"gender":    "dragon",
		"syllables": float64(42),
		"deity":     "Zeus",
		"sources":   []any{"Vedas", 7},
	}}
	parser := newTestParser(invoker)

	wish := parser.Parse(context.Background(), "anything")

	if wish.Gender != domain.GenderBoy || wish.Deity != domain.DeityNone {
		t.Fatalf("model output was not sanitized: %+v", wish)
	}
	if wish.Syllables != nil {
		t.Fatalf("out-of-range syllables survived: %d", *wish.Syllables)
	}
	if len(wish.Sources) != 1 {
		t.Fatalf("non-string source survived: %v", wish.Sources)
	}
}
