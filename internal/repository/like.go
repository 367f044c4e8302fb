package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"minisocial/internal/timefmt"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like. A duplicate is absorbed by the primary key and
// reported as false; a missing post yields ErrPostNotFound.
func (r *likeRepository) Create(ctx context.Context, userID, postID int64) (bool, error) {
	query := `
		INSERT INTO likes (user_id, post_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, userID, postID, timefmt.Now())
	if refErr := missingReference(err); refErr != nil {
		return false, refErr
	}
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Delete removes a like if present.
func (r *likeRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}
