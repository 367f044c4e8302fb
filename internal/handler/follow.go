package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minisocial/internal/httputil"
	"minisocial/internal/model"
	"minisocial/internal/service"
	"minisocial/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
	}
}

// Follow handles POST /api/users/{username}/follow
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.followService.Follow)
}

// Unfollow handles DELETE /api/users/{username}/follow
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.followService.Unfollow)
}

type followFunc func(ctx context.Context, followerID int64, username string) (*model.FollowResult, error)

func (h *FollowHandler) toggle(w http.ResponseWriter, r *http.Request, fn followFunc) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, msgAuthRequired)
		return
	}

	username := chi.URLParam(r, "username")
	result, err := fn(r.Context(), userID, username)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, msgUserNotFound)
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, msgCannotFollowSelf)
		default:
			log.Printf("[ERROR] Follow handler: user=%d target=%s err=%v", userID, username, err)
			httputil.WriteInternalError(w, "Failed to update follow")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
