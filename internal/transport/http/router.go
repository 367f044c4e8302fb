package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"minisocial/internal/handler"
	"minisocial/internal/httputil"
	authmw "minisocial/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	FeedHandler    *handler.FeedHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	FollowHandler  *handler.FollowHandler
	PageHandler    *handler.PageHandler
	Tokens         authmw.TokenParser
	CORSOrigins    []string
}

// NewRouter creates and configures a new Chi router with the JSON API under
// /api and the server-rendered pages at the root.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(authmw.Metrics)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(handlers.CORS(
			handlers.AllowedOrigins(cfg.CORSOrigins),
			handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"}),
			handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		))

		// Public routes - no authentication required
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)
		r.Post("/auth/logout", cfg.AuthHandler.Logout)

		// Reads with optional authentication
		r.Group(func(r chi.Router) {
			r.Use(authmw.OptionalAuthMiddleware(cfg.Tokens))

			r.Get("/posts", cfg.FeedHandler.GetFeed)
			r.Get("/users/{username}", cfg.FeedHandler.GetProfile)
		})

		// Protected routes - require authentication
		r.Group(func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.Tokens))

			r.Get("/me", cfg.AuthHandler.Me)

			r.Post("/posts", cfg.PostHandler.Create)
			r.Post("/posts/{id}/like", cfg.PostHandler.Like)
			r.Delete("/posts/{id}/like", cfg.PostHandler.Unlike)
			r.Post("/posts/{id}/comments", cfg.CommentHandler.Create)

			r.Post("/users/{username}/follow", cfg.FollowHandler.Follow)
			r.Delete("/users/{username}/follow", cfg.FollowHandler.Unfollow)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteNotFound(w, "Not found.")
		})
	})

	// Browser pages and form posts. Every route resolves the session cookie
	// itself so anonymous visitors can be redirected to /login.
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuthMiddleware(cfg.Tokens))

		pages := cfg.PageHandler
		r.Get("/", pages.Index)
		r.Get("/following", pages.Following)
		r.Get("/u/{username}", pages.Profile)

		r.Get("/register", pages.RegisterForm)
		r.Post("/register", pages.Register)
		r.Get("/login", pages.LoginForm)
		r.Post("/login", pages.Login)
		r.Post("/logout", pages.Logout)

		r.Post("/post", pages.CreatePost)
		r.Post("/follow/{username}", pages.Follow)
		r.Post("/unfollow/{username}", pages.Unfollow)
		r.Post("/like/{id}", pages.Like)
		r.Post("/unlike/{id}", pages.Unlike)
		r.Post("/comment/{id}", pages.Comment)
	})

	r.NotFound(authmw.OptionalAuthMiddleware(cfg.Tokens)(http.HandlerFunc(cfg.PageHandler.NotFound)).ServeHTTP)

	return r
}
