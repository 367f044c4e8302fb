package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"minisocial/internal/httputil"
	"minisocial/internal/model"
	"minisocial/internal/service"
	"minisocial/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Create handles POST /api/posts
// Accepts {"content": "..."} as JSON or a form field.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, msgAuthRequired)
		return
	}

	var req model.CreatePostRequest
	if err := httputil.DecodeBody(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, msgInvalidBody)
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req.Content)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			httputil.WriteBadRequest(w, msg)
			return
		}
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteUnauthorized(w, msgAuthRequired)
			return
		}
		log.Printf("[ERROR] Create post handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.CreatePostResponse{Post: post})
}

// Like handles POST /api/posts/{id}/like
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.postService.Like)
}

// Unlike handles DELETE /api/posts/{id}/like
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.postService.Unlike)
}

type likeFunc func(ctx context.Context, userID, postID int64) (*model.LikeState, error)

func (h *PostHandler) toggleLike(w http.ResponseWriter, r *http.Request, fn likeFunc) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, msgAuthRequired)
		return
	}

	postID, err := postIDParam(r)
	if err != nil {
		httputil.WriteBadRequest(w, msgInvalidPostID)
		return
	}

	state, err := fn(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, msgPostNotFound)
			return
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteUnauthorized(w, msgAuthRequired)
			return
		}
		log.Printf("[ERROR] Like handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to update like")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, state)
}

func postIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
