package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meur/harborline/internal/content"
	"github.com/meur/harborline/internal/forms"
	"github.com/meur/harborline/internal/observability"
)

const (
	sessionCookie  = "sid"
	sessionMaxAge  = 24 * time.Hour
	defaultTimeout = 10 * time.Second
)

// Server holds the HTTP server dependencies
type Server struct {
	loader         *content.Loader
	sessions       *forms.Sessions
	logger         *zap.Logger
	router         chi.Router
	allowedOrigins []string
	loadTimeout    time.Duration
}

// Option customises the Server.
type Option func(*Server)

// WithAllowedOrigins sets the CORS origins.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithLoadTimeout bounds reloads triggered over HTTP.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// New creates a new API server
func New(loader *content.Loader, sessions *forms.Sessions, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		loader:         loader,
		sessions:       sessions,
		logger:         logger.Named("api"),
		router:         chi.NewRouter(),
		allowedOrigins: []string{"http://localhost:*"},
		loadTimeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the router so callers can mount extra handlers such as static files.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(observability.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Content
		r.Get("/home", s.handleGetHome)
		r.Get("/gamemodes", s.handleGetGameModes)
		r.Get("/rules", s.handleGetRules)
		r.Get("/sociallinks", s.handleGetSocialLinks)
		r.Put("/selection", s.handleSelectGameMode)
		r.Post("/reload", s.handleReload)

		// Forms
		r.Get("/forms/{form}", s.handleGetForm)
		r.Patch("/forms/{form}", s.handleEditForm)
		r.Post("/forms/{form}/submit", s.handleSubmitForm)
		r.Post("/forms/{form}/reset", s.handleResetForm)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// session returns the visitor session, issuing a cookie for new visitors.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *forms.Session {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(sessionMaxAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s.sessions.Open(id)
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
