package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"minisocial/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type PostRepository interface {
	// Create inserts a post and returns it annotated as a feed row.
	Create(ctx context.Context, userID int64, content string) (*model.FeedPost, error)
	Exists(ctx context.Context, postID int64) (bool, error)
	// List returns posts newest id first, narrowed by filter.
	List(ctx context.Context, filter model.PostFilter) ([]model.FeedPost, error)
}

type LikeRepository interface {
	// Create reports whether a new row was inserted.
	Create(ctx context.Context, userID, postID int64) (bool, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, userID, postID int64) (bool, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
	// ListByPostIDs returns comments on any of the posts, oldest first.
	ListByPostIDs(ctx context.Context, postIDs []int64) ([]model.Comment, error)
}

type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID int64) (bool, error)
	Delete(ctx context.Context, followerID, followeeID int64) (bool, error)
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	Counts(ctx context.Context, userID int64) (followers int, following int, err error)
}

// Set bundles the repositories one process needs.
type Set struct {
	Users    UserRepository
	Posts    PostRepository
	Likes    LikeRepository
	Comments CommentRepository
	Follows  FollowRepository
}

// NewSet builds the PostgreSQL-backed repositories over one connection pool.
func NewSet(db *sqlx.DB) Set {
	return Set{
		Users:    NewUserRepository(db),
		Posts:    NewPostRepository(db),
		Likes:    NewLikeRepository(db),
		Comments: NewCommentRepository(db),
		Follows:  NewFollowRepository(db),
	}
}
