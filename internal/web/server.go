// Package web provides the HTTP API for the catalog and the cart.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/sheetcart/internal/cart"
	"github.com/JonMunkholm/sheetcart/internal/catalog"
	"github.com/JonMunkholm/sheetcart/internal/config"
	"github.com/JonMunkholm/sheetcart/internal/web/middleware"
)

// CatalogService is the catalog as the API sees it.
type CatalogService interface {
	Load(ctx context.Context) (catalog.LoadResult, error)
	Catalog() catalog.Snapshot
	Groups() []catalog.Group
	Loading() bool
}

// CartService is the cart as the API sees it.
type CartService interface {
	State() cart.State
	Add(ctx context.Context, item string, price int64, quantity int) (cart.State, error)
	RemoveAt(ctx context.Context, index int) (cart.State, error)
	Clear(ctx context.Context) (cart.State, error)
}

// Server is the HTTP server for the shop API.
type Server struct {
	cfg     *config.Config
	catalog CatalogService
	cart    CartService
	metrics http.Handler

	router  *chi.Mux
	limiter *rateLimiter
	server  *http.Server

	closeOnce sync.Once
}

// NewServer creates a new Server instance. metrics may be nil.
func NewServer(cfg *config.Config, catalog CatalogService, cart CartService, metrics http.Handler) *Server {
	s := &Server{
		cfg:     cfg,
		catalog: catalog,
		cart:    cart,
		metrics: metrics,
		router:  chi.NewRouter(),
	}
	if cfg.Rate.Enabled {
		s.limiter = newRateLimiter(cfg.Rate.RequestsPerMinute, time.Minute)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(chimiddleware.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	if s.metrics != nil && s.cfg.Metrics.Enabled {
		s.router.Handle(s.cfg.Metrics.Path, s.metrics)
	}

	s.router.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.middleware)
		}

		// Catalog
		r.Get("/catalog", s.handleCatalog)
		r.Get("/catalog/categories", s.handleCategories)
		r.With(middleware.APIKeyAuth(&s.cfg.Security)).Post("/catalog/reload", s.handleReload)

		// Cart
		r.Get("/cart", s.handleCart)
		r.Post("/cart/items", s.handleAddItem)
		r.Delete("/cart/items/{index}", s.handleRemoveItem)
		r.Delete("/cart", s.handleClearCart)
		r.Get("/cart/summary", s.handleCartSummary)
	})
}

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	addr := s.cfg.Server.Addr()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.stop()
		}
	})
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		// JSON only; nothing to load
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
