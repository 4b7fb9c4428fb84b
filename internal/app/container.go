package app

import (
	"context"
	"fmt"

	"github.com/namastra/namastra-go/internal/config"
	"github.com/namastra/namastra-go/internal/constants"
	"github.com/namastra/namastra-go/internal/domain"
	"github.com/namastra/namastra-go/internal/httpapi"
	"github.com/namastra/namastra-go/internal/prompt"
	"github.com/namastra/namastra-go/internal/service/ai"
	"github.com/namastra/namastra-go/internal/service/cache"
	"github.com/namastra/namastra-go/internal/service/search"
	"go.uber.org/zap"
)

// Container bundles assembled services for the HTTP server.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Catalog *domain.Catalog
	Engine  *search.Engine
	Parser  *ai.WishParser
	Server  *httpapi.Server

	closers []func()
}

// Close releases held resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all services. Heavy initialization (catalog load, cache
// connection, AI clients) happens here so the server setup stays thin. The
// model manager and Redis cache are both optional: without credentials the
// wish parser runs heuristic-only, and without Redis the caches are in-process.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	catalog, err := domain.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load name catalog: %w", err)
	}
	logger.Info("Name catalog loaded", zap.Int("names", catalog.Len()))

	var cacheSvc *cache.Service
	if cfg.Redis.Enabled() {
		cacheSvc, err = cache.NewService(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	var invoker ai.ModelInvoker
	if cfg.HasModelCredentials() {
		modelManager, mmErr := ai.NewModelManager(ctx, ai.ModelManagerConfig{
			GeminiAPIKey:   cfg.Gemini.APIKey,
			OpenAIAPIKey:   cfg.OpenAI.APIKey,
			GeminiModel:    cfg.Gemini.Model,
			OpenAIModel:    cfg.OpenAI.Model,
			EnableFallback: cfg.OpenAI.EnableFallback,
		}, logger)
		if mmErr != nil {
			return nil, fmt.Errorf("failed to create model manager: %w", mmErr)
		}
		invoker = modelManager
	} else {
		logger.Warn("No model credentials configured, wish parsing runs heuristic-only")
	}

	parser := ai.NewWishParser(
		invoker,
		prompt.DefaultPromptBuilder(),
		ai.NewParseCache(constants.CacheTTL.ParsedWish),
		cacheSvc,
		cfg.AI.RequestTimeout,
		logger,
	)

	engine := search.NewEngine(catalog, logger)
	server := httpapi.NewServer(catalog, engine, parser, cacheSvc, cfg.Site, logger)

	server.WarmListings(ctx)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Catalog: catalog,
		Engine:  engine,
		Parser:  parser,
		Server:  server,
		closers: closers,
	}, nil
}
