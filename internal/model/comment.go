package model

import "errors"

// Comment represents a comment on a post, joined with its author.
type Comment struct {
	ID        int64  `db:"id" json:"id"`
	PostID    int64  `db:"post_id" json:"post_id"`
	Username  string `db:"username" json:"username"`
	Content   string `db:"content" json:"content"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// CommentResult is returned after a comment is created.
type CommentResult struct {
	CommentCount int      `json:"comment_count"`
	Comment      *Comment `json:"comment"`
}

// Comment constraints
const (
	MaxCommentLength = 300
)

// Comment errors
var (
	ErrCommentRequired = errors.New("comment content is required")
	ErrCommentTooLong  = errors.New("comment content too long")
)
