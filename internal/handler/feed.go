package handler

import (
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minisocial/internal/httputil"
	"minisocial/internal/model"
	"minisocial/internal/service"
	"minisocial/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// GetFeed handles GET /api/posts?feed=public|following&limit=N&before_id=N
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	feed := r.URL.Query().Get("feed")
	if feed == "" {
		feed = model.FeedPublic
	}

	query := model.FeedQuery{
		Feed:     feed,
		ViewerID: middleware.ViewerFromContext(r.Context()),
	}

	limit, ok, err := httputil.QueryInt64(r, "limit")
	if err != nil {
		httputil.WriteBadRequest(w, "limit must be an integer")
		return
	}
	if ok {
		n := toInt(limit)
		query.Limit = &n
	}

	beforeID, ok, err := httputil.QueryInt64(r, "before_id")
	if err != nil {
		httputil.WriteBadRequest(w, "before_id must be an integer")
		return
	}
	if ok {
		query.BeforeID = &beforeID
	}

	page, err := h.feedService.Feed(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrAuthRequired):
			httputil.WriteUnauthorized(w, msgAuthRequired)
		case errors.Is(err, model.ErrInvalidFeed):
			httputil.WriteBadRequest(w, msgInvalidFeed)
		default:
			log.Printf("[ERROR] GetFeed handler: feed=%s err=%v", feed, err)
			httputil.WriteInternalError(w, "Failed to get feed")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}

// GetProfile handles GET /api/users/{username}
func (h *FeedHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.feedService.Profile(r.Context(), username, middleware.ViewerFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, msgUserNotFound)
			return
		}
		log.Printf("[ERROR] GetProfile handler: username=%s err=%v", username, err)
		httputil.WriteInternalError(w, "Failed to get profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// toInt converts a parsed query value without wrapping on overflow. Page size
// bounds are applied by the feed service.
func toInt(v int64) int {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}
