// Package api provides the HTTP API server and handlers for the Resonate application.
package api

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/resonateapp/resonate-server/internal/config"
	"github.com/resonateapp/resonate-server/internal/ratelimit"
	"github.com/resonateapp/resonate-server/internal/service"
	"github.com/resonateapp/resonate-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store            *store.Store
	authService      *service.AuthService
	socialService    *service.SocialService
	playlistService  *service.PlaylistService
	profileService   *service.ProfileService
	discoveryService *service.DiscoveryService
	tokens           tokenVerifier
	loginLimiter     *ratelimit.KeyedRateLimiter
	cfg              *config.Config
	router           *chi.Mux
	logger           *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store *store.Store,
	authService *service.AuthService,
	socialService *service.SocialService,
	playlistService *service.PlaylistService,
	profileService *service.ProfileService,
	discoveryService *service.DiscoveryService,
	tokens tokenVerifier,
	cfg *config.Config,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:            store,
		authService:      authService,
		socialService:    socialService,
		playlistService:  playlistService,
		profileService:   profileService,
		discoveryService: discoveryService,
		tokens:           tokens,
		loginLimiter:     ratelimit.New(loginRPS, loginBurst),
		cfg:              cfg,
		router:           chi.NewRouter(),
		logger:           logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Login attempts per client IP.
const (
	loginRPS   = 1.0
	loginBurst = 5
)

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
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Stored media (user photos, song audio and artwork).
	s.router.Handle("/media/*", http.StripPrefix("/media/",
		http.FileServer(http.Dir(s.cfg.Media.BasePath))))

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.With(s.limitLogin).Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
		})

		// Catalog proxy (requires auth plus a catalog credential).
		r.Route("/catalog", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Use(s.attachCredential)
			r.Get("/search", s.handleCatalogSearch)
			r.Get("/recommendations", s.handleCatalogRecommendations)
		})

		// Artists (public profiles, authenticated follow graph).
		r.Route("/artists", func(r chi.Router) {
			r.Get("/{id}", s.handleGetArtist)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Put("/{id}/follow", s.handleFollowArtist)
				r.Delete("/{id}/follow", s.handleUnfollowArtist)
			})
		})

		// Songs (requires auth).
		r.Route("/songs", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Put("/{id}/like", s.handleLikeSong)
			r.Delete("/{id}/like", s.handleDislikeSong)
		})

		// The caller's own account (requires auth).
		r.Route("/me", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleGetProfile)
			r.Patch("/", s.handleUpdateProfile)
			r.Put("/photo", s.handleUpdatePhoto)
			r.Get("/artists", s.handleGetFollowedArtists)
			r.Get("/songs", s.handleGetLikedSongs)
			r.Get("/playlists", s.handleListPlaylists)
		})

		// Playlists (requires auth).
		r.Route("/playlists", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreatePlaylist)
			r.Get("/{id}", s.handleGetPlaylist)
			r.Delete("/{id}", s.handleDeletePlaylist)
			r.Put("/{id}/songs/{songID}", s.handleAddPlaylistSong)
			r.Delete("/{id}/songs/{songID}", s.handleRemovePlaylistSong)
		})
	})
}
