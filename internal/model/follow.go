package model

import "errors"

// FollowResult reports the edge state after a follow or unfollow.
type FollowResult struct {
	Username         string `json:"username"`
	IsFollowing      bool   `json:"is_following"`
	AlreadyFollowing bool   `json:"already_following"`
}

var (
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
