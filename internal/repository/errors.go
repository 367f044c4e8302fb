package repository

import (
	"errors"

	"github.com/lib/pq"

	"minisocial/internal/model"
)

// PostgreSQL error codes the repositories translate into domain errors
const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

// Foreign keys declared in schema.sql, by the row they reference.
var (
	postReferences = map[string]bool{
		"likes_post_id_fkey":    true,
		"comments_post_id_fkey": true,
	}
	userReferences = map[string]bool{
		"posts_user_id_fkey":       true,
		"likes_user_id_fkey":       true,
		"comments_user_id_fkey":    true,
		"follows_follower_id_fkey": true,
		"follows_followee_id_fkey": true,
	}
)

// missingReference translates a foreign key violation into the not-found
// error of the referenced row. It returns nil for any other error.
func missingReference(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != foreignKeyViolation {
		return nil
	}
	switch {
	case postReferences[pqErr.Constraint]:
		return model.ErrPostNotFound
	case userReferences[pqErr.Constraint]:
		return model.ErrUserNotFound
	}
	return nil
}

// nullable converts an optional value into a driver argument.
func nullable[T int | int64](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
