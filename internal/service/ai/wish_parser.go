package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/namastra/namastra-go/internal/constants"
	"github.com/namastra/namastra-go/internal/domain"
	"github.com/namastra/namastra-go/internal/prompt"
	"github.com/namastra/namastra-go/internal/service/cache"
	"github.com/namastra/namastra-go/internal/util"
	"go.uber.org/zap"
)

// ModelInvoker is the slice of ModelManager the parser needs.
type ModelInvoker interface {
	GenerateJSON(ctx context.Context, promptText string, dest any) (*GenerateMetadata, error)
}

// WishParser turns a free-text naming request into a ParsedWish. The external
// classifier is best-effort: when it is unconfigured, unreachable, slow, or
// returns garbage, the parser degrades to the deterministic heuristic. Parse
// never returns an error to its caller.
type WishParser struct {
	invoker       ModelInvoker
	promptBuilder *prompt.PromptBuilder
	parseCache    *ParseCache
	redisCache    *cache.Service
	logger        *zap.Logger
	timeout       time.Duration
}

func NewWishParser(
	invoker ModelInvoker,
	promptBuilder *prompt.PromptBuilder,
	parseCache *ParseCache,
	redisCache *cache.Service,
	timeout time.Duration,
	logger *zap.Logger,
) *WishParser {
	return &WishParser{
		invoker:       invoker,
		promptBuilder: promptBuilder,
		parseCache:    parseCache,
		redisCache:    redisCache,
		logger:        logger,
		timeout:       timeout,
	}
}

// Parse always returns a well-formed ParsedWish with Raw set to text.
func (p *WishParser) Parse(ctx context.Context, text string) (wish *domain.ParsedWish) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Wish parsing panicked, returning safe response",
				zap.Any("panic", r),
				zap.String("text_preview", util.TruncateString(text, 80)),
			)
			wish = domain.SafeParsedWish(text, "fallback response due to internal parser error")
		}
	}()

	cacheKey := fmt.Sprintf("wish:%s", util.Normalize(text))

	// Cache hits are re-stamped with the caller's exact text: the key is
	// normalized, but Raw must always echo this request's input verbatim.
	if entry, ok := p.parseCache.Get(cacheKey); ok {
		return SanitizeWish(text, entry.Wish)
	}

	if cached, ok := p.lookupRedis(ctx, cacheKey, text); ok {
		p.parseCache.Set(cacheKey, cached, nil)
		return cached
	}

	wish, metadata := p.parse(ctx, text)

	p.parseCache.Set(cacheKey, wish, metadata)
	p.storeRedis(ctx, cacheKey, wish)

	return wish
}

func (p *WishParser) parse(ctx context.Context, text string) (*domain.ParsedWish, *GenerateMetadata) {
	if p.invoker == nil {
		p.logger.Warn("No model provider configured, using heuristic parser")
		return SanitizeWish(text, HeuristicParse(text)), nil
	}

	promptText := p.buildPrompt(text)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var payload map[string]any
	metadata, err := p.invoker.GenerateJSON(callCtx, promptText, &payload)
	if err != nil {
		// Network failure, timeout, circuit open and malformed JSON are all
		// equivalent: fall back to the heuristic, no retry.
		p.logger.Warn("Model parse failed, falling back to heuristic",
			zap.Error(err),
			zap.String("text_preview", util.TruncateString(text, 80)),
		)
		return SanitizeWish(text, HeuristicParse(text)), nil
	}

	p.logger.Debug("Wish parsed by model",
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Bool("used_fallback", metadata.UsedFallback),
	)

	return SanitizeMap(text, payload), metadata
}

func (p *WishParser) buildPrompt(text string) string {
	data := prompt.WishPromptData{
		Text: util.TruncateString(text, constants.AIInputLimits.MaxWishLength),
	}

	rendered, err := p.promptBuilder.Render(prompt.TemplateWishParser, data)
	if err != nil {
		p.logger.Error("Failed to render wish parser template, using fallback", zap.Error(err))
		return prompt.FallbackWishPrompt(data)
	}

	return rendered
}

func (p *WishParser) lookupRedis(ctx context.Context, key, text string) (*domain.ParsedWish, bool) {
	if p.redisCache == nil {
		return nil, false
	}

	var wish domain.ParsedWish
	found, err := p.redisCache.Get(ctx, key, &wish)
	if err != nil || !found {
		return nil, false
	}

	// A cached entry is still untrusted external state.
	return SanitizeWish(text, &wish), true
}

func (p *WishParser) storeRedis(ctx context.Context, key string, wish *domain.ParsedWish) {
	if p.redisCache == nil {
		return
	}

	if err := p.redisCache.Set(ctx, key, wish, constants.CacheTTL.ParsedWish); err != nil {
		p.logger.Debug("Failed to cache parsed wish", zap.String("key", key), zap.Error(err))
	}
}
