package model

import "errors"

// FeedPost is a post annotated for display: author, aggregates and the
// viewer's like flag. LikedByMe is 0 or 1.
type FeedPost struct {
	ID           int64  `db:"id" json:"id"`
	Content      string `db:"content" json:"content"`
	Username     string `db:"username" json:"username"`
	CreatedAt    string `db:"created_at" json:"created_at"`
	LikeCount    int    `db:"like_count" json:"like_count"`
	CommentCount int    `db:"comment_count" json:"comment_count"`
	LikedByMe    int    `db:"liked_by_me" json:"liked_by_me"`

	// Attached by the feed service for server-rendered pages
	Comments []Comment `db:"-" json:"comments,omitempty"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// CreatePostResponse wraps the created post.
type CreatePostResponse struct {
	Post *FeedPost `json:"post"`
}

// LikeState is the result of a like or unlike.
type LikeState struct {
	PostID    int64 `json:"post_id"`
	LikedByMe int   `json:"liked_by_me"`
	LikeCount int   `json:"like_count"`
}

// Post constraints
const (
	MaxPostLength = 500
)

// Post errors
var (
	ErrPostNotFound    = errors.New("post not found")
	ErrContentRequired = errors.New("post content is required")
	ErrContentTooLong  = errors.New("post content too long")
)
