package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"minisocial/internal/model"
	"minisocial/internal/timefmt"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// listPostsQuery serves every feed shape. Each filter is a nullable parameter
// so the statement text never changes:
//
//	$1 viewer for liked_by_me, $2 before_id, $3 author, $4 followed_by, $5 limit
//
// Ordering and the cursor use the id only; created_at is display data.
const listPostsQuery = `
	SELECT
		p.id,
		p.content,
		p.created_at,
		u.username,
		(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
		CASE
			WHEN $1::bigint IS NULL THEN 0
			ELSE EXISTS(
				SELECT 1 FROM likes l2 WHERE l2.post_id = p.id AND l2.user_id = $1::bigint
			)::int
		END AS liked_by_me
	FROM posts p
	JOIN users u ON u.id = p.user_id
	WHERE ($2::bigint IS NULL OR p.id < $2::bigint)
	  AND ($3::bigint IS NULL OR p.user_id = $3::bigint)
	  AND ($4::bigint IS NULL
	       OR p.user_id = $4::bigint
	       OR p.user_id IN (SELECT f.followee_id FROM follows f WHERE f.follower_id = $4::bigint))
	ORDER BY p.id DESC
	LIMIT $5::bigint
`

// Create inserts a post and reads it back in feed shape.
func (r *postRepository) Create(ctx context.Context, userID int64, content string) (*model.FeedPost, error) {
	query := `
		WITH inserted AS (
			INSERT INTO posts (user_id, content, created_at)
			VALUES ($1, $2, $3)
			RETURNING id, user_id, content, created_at
		)
		SELECT i.id, i.content, i.created_at, u.username,
		       0 AS like_count, 0 AS comment_count, 0 AS liked_by_me
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`
	var post model.FeedPost
	err := r.db.GetContext(ctx, &post, query, userID, content, timefmt.Now())
	if refErr := missingReference(err); refErr != nil {
		return nil, refErr
	}
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &post, nil
}

// Exists checks if a post exists.
func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

// List runs the feed query. An empty result is a nil error with no posts.
func (r *postRepository) List(ctx context.Context, filter model.PostFilter) ([]model.FeedPost, error) {
	posts := []model.FeedPost{}
	err := r.db.SelectContext(ctx, &posts, listPostsQuery,
		nullable(filter.ViewerID),
		nullable(filter.BeforeID),
		nullable(filter.AuthorID),
		nullable(filter.FollowedBy),
		nullable(filter.Limit),
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
