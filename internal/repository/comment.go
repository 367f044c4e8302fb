package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"minisocial/internal/model"
	"minisocial/internal/timefmt"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a comment and returns it joined with the author.
func (r *commentRepository) Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error) {
	query := `
		WITH inserted AS (
			INSERT INTO comments (user_id, post_id, content, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, user_id, post_id, content, created_at
		)
		SELECT i.id, i.post_id, u.username, i.content, i.created_at
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, userID, postID, content, timefmt.Now())
	if refErr := missingReference(err); refErr != nil {
		return nil, refErr
	}
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

// ListByPostIDs fetches the comments of a page of posts in one round trip.
func (r *commentRepository) ListByPostIDs(ctx context.Context, postIDs []int64) ([]model.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT c.id, c.post_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.id ASC
	`
	var comments []model.Comment
	if err := r.db.SelectContext(ctx, &comments, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
