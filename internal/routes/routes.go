package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AnshRaj112/devconnect-backend/internal/handlers"
	"github.com/AnshRaj112/devconnect-backend/internal/middleware"
)

type Options struct {
	Handler        *handlers.Handler
	Verifier       middleware.TokenVerifier
	Revocations    middleware.RevocationChecker // nil without Redis
	AllowedOrigins []string
	Logger         *slog.Logger
	Production     bool
}

// NewRouter builds the full HTTP surface: the global middleware stack, the
// public endpoints, and the endpoints behind the token guard.
func NewRouter(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(opts.Production))

	r.Get("/", handlers.Root)
	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	SetupRoutes(r, opts.Handler, middleware.Auth(opts.Verifier, opts.Revocations))
	return r
}

// SetupRoutes mounts the API. guard wraps every route that needs a token.
func SetupRoutes(r chi.Router, h *handlers.Handler, guard func(http.Handler) http.Handler) {
	// Public routes
	r.Post("/api/users", h.Register)
	r.Post("/api/auth", h.Login)
	r.Get("/api/profile", h.ListProfiles)
	r.Get("/api/profile/user/{user_id}", h.ProfileByUser)
	r.Get("/api/profile/github/{username}", h.GitHubRepos)

	r.Group(func(r chi.Router) {
		r.Use(guard)

		r.Get("/api/auth", h.CurrentUser)

		// Profile routes
		r.Get("/api/profile/me", h.MyProfile)
		r.Post("/api/profile", h.UpsertProfile)
		r.Delete("/api/profile", h.DeleteAccount)
		r.Put("/api/profile/experience", h.AddExperience)
		r.Delete("/api/profile/experience/{exp_id}", h.RemoveExperience)
		r.Put("/api/profile/education", h.AddEducation)
		r.Delete("/api/profile/education/{edu_id}", h.RemoveEducation)

		// Post routes
		r.Post("/api/posts", h.CreatePost)
		r.Get("/api/posts", h.ListPosts)
		r.Get("/api/posts/{id}", h.GetPost)
		r.Delete("/api/posts/{id}", h.DeletePost)
		r.Put("/api/posts/like/{id}", h.LikePost)
		r.Put("/api/posts/unlike/{id}", h.UnlikePost)
		r.Post("/api/posts/comment/{id}", h.AddComment)
		r.Delete("/api/posts/comment/{id}/{comment_id}", h.RemoveComment)
	})
}
