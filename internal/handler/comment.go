package handler

import (
	"errors"
	"log"
	"net/http"

	"minisocial/internal/httputil"
	"minisocial/internal/model"
	"minisocial/internal/service"
	"minisocial/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// Create handles POST /api/posts/{id}/comments
// Responds with the post's new comment count and the stored comment.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req model.CreateCommentRequest
	if err := httputil.DecodeBody(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.commentService.Create(r.Context(), userID, postID, req.Content)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			httputil.WriteBadRequest(w, msg)
			return
		}
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, msgPostNotFound)
			return
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteUnauthorized(w, msgAuthRequired)
			return
		}
		log.Printf("[ERROR] Create comment handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to create comment")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
