// Package apiserver assembles the HTTP router and server.
package apiserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/foodgram/backend/internal/infrastructure/config"
	"github.com/foodgram/backend/internal/infrastructure/http/handlers"
	"github.com/foodgram/backend/internal/infrastructure/http/middleware"
	"github.com/foodgram/backend/internal/infrastructure/security"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers bundles the API handler groups for the router.
type Handlers struct {
	Auth      *handlers.AuthAPI
	Recipes   *handlers.RecipeAPI
	Catalog   *handlers.CatalogAPI
	Organizer *handlers.OrganizerAPI
	Shopping  *handlers.ShoppingAPI
}

// Server wraps the HTTP server with its lifecycle.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// NewServer builds the router and the HTTP server.
func NewServer(cfg *config.Config, h Handlers, tokens *security.TokenService, logger *zap.Logger) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(metrics.Handler)
	if cfg.Server.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(api chi.Router) {
		h.Auth.Routes(api)

		// Public reads; a token, when present, unlocks the per-user
		// recipe filters.
		api.Group(func(public chi.Router) {
			public.Use(middleware.MaybeAuthenticate(tokens))
			h.Recipes.Routes(public)
			h.Catalog.Routes(public)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticate(tokens))
			h.Auth.ProtectedRoutes(protected)
			h.Recipes.ProtectedRoutes(protected)
			h.Shopping.ProtectedRoutes(protected)
			h.Organizer.ProtectedRoutes(protected)
		})
	})

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		logger: logger.Named("http-server"),
	}
}

// Start begins serving. It blocks until the listener fails or the server
// shuts down.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
