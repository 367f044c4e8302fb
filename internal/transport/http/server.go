package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"minisocial/internal/config"
	"minisocial/internal/database"
	"minisocial/internal/handler"
	"minisocial/internal/repository"
	"minisocial/internal/service"
	"minisocial/internal/timefmt"
	"minisocial/internal/view"
)

const shutdownTimeout = 10 * time.Second

// NewHandler wires services, handlers and routes over the given repositories.
func NewHandler(cfg *config.Config, repos repository.Set) (chi.Router, error) {
	formatter := timefmt.New(cfg.DisplayTimezone)

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	// Services
	userService := service.NewUserService(repos.Users)
	authService := service.NewAuthService(cfg)
	feedService := service.NewFeedService(repos.Posts, repos.Comments, repos.Users, repos.Follows, formatter)
	postService := service.NewPostService(repos.Posts, repos.Likes, formatter)
	commentService := service.NewCommentService(repos.Comments, formatter)
	followService := service.NewFollowService(repos.Follows, repos.Users)

	return NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, authService, cfg),
		FeedHandler:    handler.NewFeedHandler(feedService),
		PostHandler:    handler.NewPostHandler(postService),
		CommentHandler: handler.NewCommentHandler(commentService),
		FollowHandler:  handler.NewFollowHandler(followService),
		PageHandler: handler.NewPageHandler(
			userService, authService, feedService, postService, commentService, followService, renderer, cfg,
		),
		Tokens:      authService,
		CORSOrigins: cfg.CORSAllowedOrigins,
	}), nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	shutdownTracing, err := initTracing(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(c); err != nil {
			log.Printf("Tracing shutdown: %v", err)
		}
	}()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	router, err := NewHandler(cfg, repository.NewSet(db))
	if err != nil {
		return fmt.Errorf("failed to build handler: %w", err)
	}

	srv := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           otelhttp.NewHandler(router, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
