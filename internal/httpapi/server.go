package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/namastra/namastra-go/internal/config"
	"github.com/namastra/namastra-go/internal/domain"
	"github.com/namastra/namastra-go/internal/service/cache"
	"github.com/namastra/namastra-go/internal/service/search"
	"go.uber.org/zap"
)

// WishParsing is the slice of the wish parser the handlers need.
type WishParsing interface {
	Parse(ctx context.Context, text string) *domain.ParsedWish
}

// Server bundles the handler dependencies and owns the router.
type Server struct {
	catalog *domain.Catalog
	engine  *search.Engine
	parser  WishParsing
	cache   *cache.Service
	site    config.SiteConfig
	logger  *zap.Logger
	started time.Time
}

func NewServer(
	catalog *domain.Catalog,
	engine *search.Engine,
	parser WishParsing,
	cacheSvc *cache.Service,
	site config.SiteConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		catalog: catalog,
		engine:  engine,
		parser:  parser,
		cache:   cacheSvc,
		site:    site,
		logger:  logger,
		started: time.Now(),
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/sitemap.xml", s.handleSitemap)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/search", s.handleSimpleSearch)
		r.Post("/parse-wishes", s.handleParseWishes)
		r.Get("/names/{slug}", s.handleNameDetail)
		r.Get("/deities", s.handleDeityIndex)
		r.Get("/deities/{deity}", s.handleDeityListing)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
