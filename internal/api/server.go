// Package api provides the HTTP API server and handlers for the Stockroom application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stockroomapp/stockroom-server/internal/http/response"
	"github.com/stockroomapp/stockroom-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService    *service.AuthService
	catalogService *service.CatalogService
	tagService     *service.TagService
	router         *chi.Mux
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(authService *service.AuthService, catalogService *service.CatalogService, tagService *service.TagService, logger *slog.Logger) *Server {
	s := &Server{
		authService:    authService,
		catalogService: catalogService,
		tagService:     tagService,
		router:         chi.NewRouter(),
		logger:         logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
// Reads need a valid access token; mutations need a fresh one, which only a
// password login can produce.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Auth endpoints (public).
	s.router.Post("/register", s.handleRegister)
	s.router.Post("/login", s.handleLogin)

	// Refresh takes a refresh-class token, not an access token.
	s.router.Group(func(r chi.Router) {
		r.Use(s.requireRefresh)
		r.Post("/refresh", s.handleRefresh)
	})

	// Logout skips the ledger check so a second logout still succeeds.
	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAnyToken)
		r.Post("/logout", s.handleLogout)
	})

	// Everything below needs a valid, unrevoked access token.
	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Route("/user", func(r chi.Router) {
			r.Get("/{id}", s.handleGetUser)
			r.With(s.requireFresh).Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/store", func(r chi.Router) {
			r.Get("/", s.handleListStores)
			r.With(s.requireFresh).Post("/", s.handleCreateStore)
			r.Get("/{id}", s.handleGetStore)
			r.With(s.requireFresh).Delete("/{id}", s.handleDeleteStore)
			r.Get("/{id}/tag", s.handleListStoreTags)
			r.With(s.requireFresh).Post("/{id}/tag", s.handleCreateTag)
		})

		r.Route("/item", func(r chi.Router) {
			r.Get("/", s.handleListItems)
			r.With(s.requireFresh).Post("/", s.handleCreateItem)
			r.Get("/{id}", s.handleGetItem)
			r.With(s.requireFresh).Put("/{id}", s.handleUpdateItem)
			r.With(s.requireFresh).Delete("/{id}", s.handleDeleteItem)
			r.With(s.requireFresh).Post("/{itemID}/tag/{tagID}", s.handleLinkTag)
			r.With(s.requireFresh).Delete("/{itemID}/tag/{tagID}", s.handleUnlinkTag)
		})

		r.Route("/tag", func(r chi.Router) {
			r.Get("/{id}", s.handleGetTag)
			r.With(s.requireFresh).Delete("/{id}", s.handleDeleteTag)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
