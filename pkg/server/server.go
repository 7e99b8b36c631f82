// Package server wires the HTTP surface: public content routes, member
// and admin authentication, user-owned state, and the mounts for the
// search and seed packages.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/auth"
	"github.com/studyatlas/studyatlas/pkg/middleware"
	"github.com/studyatlas/studyatlas/pkg/observability"
)

// GoogleVerifier validates Google ID tokens. Satisfied by
// *auth.GoogleVerifier; nil disables Google sign-in.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (*auth.GoogleProfile, error)
}

// Config carries the server's collaborators.
type Config struct {
	Store  api.Store
	Tokens *auth.TokenManager
	Google GoogleVerifier
	Logger *observability.Logger

	// LoginLimiter guards the credential endpoints; nil disables
	// rate limiting (tests).
	LoginLimiter *middleware.RateLimiter
}

// Server represents our API server
type Server struct {
	store  api.Store
	router *mux.Router
	tokens *auth.TokenManager
	google GoogleVerifier
	guard  *middleware.AuthMiddleware
	logger *observability.Logger

	loginLimiter *middleware.RateLimiter
}

// NewServer creates a new API server
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	s := &Server{
		store:        cfg.Store,
		router:       mux.NewRouter(),
		tokens:       cfg.Tokens,
		google:       cfg.Google,
		guard:        middleware.NewAuthMiddleware(cfg.Tokens),
		logger:       logger,
		loginLimiter: cfg.LoginLimiter,
	}
	s.setupRoutes()
	return s
}

// Router exposes the mux so callers can mount additional routes and
// wrap the whole surface in middleware.
func (s *Server) Router() *mux.Router {
	return s.router
}

// RequireAdmin exposes the admin guard for externally mounted routes.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return s.guard.RequireAdmin(next)
}

// rateLimited wraps credential handlers when a limiter is configured.
func (s *Server) rateLimited(h http.HandlerFunc) http.Handler {
	if s.loginLimiter == nil {
		return h
	}
	return s.loginLimiter.Handler(h)
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Public content routes
	s.router.HandleFunc("/scholarships", s.listScholarships).Methods("GET")
	s.router.HandleFunc("/scholarships/{slug}", s.getScholarship).Methods("GET")
	s.router.HandleFunc("/articles", s.listArticles).Methods("GET")
	s.router.HandleFunc("/articles/{slug}", s.getArticle).Methods("GET")
	s.router.HandleFunc("/articles/{id:[0-9]+}/comments", s.listArticleComments).Methods("GET")
	s.router.HandleFunc("/countries", s.listCountries).Methods("GET")
	s.router.HandleFunc("/countries/{slug}", s.getCountry).Methods("GET")
	s.router.HandleFunc("/universities", s.listUniversities).Methods("GET")
	s.router.HandleFunc("/universities/{slug}", s.getUniversity).Methods("GET")
	s.router.HandleFunc("/news", s.listNews).Methods("GET")
	s.router.HandleFunc("/news/{slug}", s.getNews).Methods("GET")
	s.router.HandleFunc("/menu", s.listMenu).Methods("GET")

	// Admin content management
	admin := func(h http.HandlerFunc) http.Handler { return s.guard.RequireAdmin(h) }
	s.router.Handle("/scholarships", admin(s.createScholarship)).Methods("POST")
	s.router.Handle("/scholarships/{id:[0-9]+}", admin(s.updateScholarship)).Methods("PUT")
	s.router.Handle("/scholarships/{id:[0-9]+}", admin(s.deleteScholarship)).Methods("DELETE")
	s.router.Handle("/articles", admin(s.createArticle)).Methods("POST")
	s.router.Handle("/articles/{id:[0-9]+}", admin(s.updateArticle)).Methods("PUT")
	s.router.Handle("/articles/{id:[0-9]+}", admin(s.deleteArticle)).Methods("DELETE")
	s.router.Handle("/countries", admin(s.createCountry)).Methods("POST")
	s.router.Handle("/countries/{id:[0-9]+}", admin(s.updateCountry)).Methods("PUT")
	s.router.Handle("/countries/{id:[0-9]+}", admin(s.deleteCountry)).Methods("DELETE")
	s.router.Handle("/universities", admin(s.createUniversity)).Methods("POST")
	s.router.Handle("/universities/{id:[0-9]+}", admin(s.updateUniversity)).Methods("PUT")
	s.router.Handle("/universities/{id:[0-9]+}", admin(s.deleteUniversity)).Methods("DELETE")
	s.router.Handle("/news", admin(s.createNews)).Methods("POST")
	s.router.Handle("/news/{id:[0-9]+}", admin(s.updateNews)).Methods("PUT")
	s.router.Handle("/news/{id:[0-9]+}", admin(s.deleteNews)).Methods("DELETE")
	s.router.Handle("/menu", admin(s.createMenuItem)).Methods("POST")

	// Authentication
	s.router.Handle("/auth/register", s.rateLimited(s.register)).Methods("POST")
	s.router.Handle("/auth/login", s.rateLimited(s.login)).Methods("POST")
	s.router.Handle("/auth/google", s.rateLimited(s.googleLogin)).Methods("POST")
	s.router.Handle("/auth/admin/login", s.rateLimited(s.adminLogin)).Methods("POST")

	// Member routes
	user := func(h http.HandlerFunc) http.Handler { return s.guard.RequireUser(h) }
	s.router.Handle("/users/profile", user(s.getProfile)).Methods("GET")
	s.router.Handle("/users/comments", user(s.listOwnComments)).Methods("GET")
	s.router.Handle("/articles/{id:[0-9]+}/like", user(s.likeArticle)).Methods("POST")
	s.router.Handle("/articles/{id:[0-9]+}/like", user(s.unlikeArticle)).Methods("DELETE")
	s.router.Handle("/articles/{id:[0-9]+}/comments", user(s.addComment)).Methods("POST")
	s.router.Handle("/users/articles/{id:[0-9]+}/save", user(s.saveArticle)).Methods("POST")
	s.router.Handle("/users/articles/{id:[0-9]+}/save", user(s.unsaveArticle)).Methods("DELETE")
	s.router.Handle("/users/scholarships/{id:[0-9]+}/save", user(s.saveScholarship)).Methods("POST")
	s.router.Handle("/users/scholarships/{id:[0-9]+}/save", user(s.unsaveScholarship)).Methods("DELETE")
}
