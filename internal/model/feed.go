package model

import "errors"

// Feed selectors
const (
	FeedPublic    = "public"
	FeedFollowing = "following"
)

// Feed pagination bounds
const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50
)

// FeedQuery selects one page of a feed. ViewerID is nil for anonymous requests.
type FeedQuery struct {
	Feed     string
	ViewerID *int64
	Limit    *int // nil selects DefaultFeedLimit
	BeforeID *int64
}

// PostFilter narrows the post listing query. Nil fields are not applied.
type PostFilter struct {
	ViewerID   *int64 // liked_by_me is computed for this user
	BeforeID   *int64 // only ids strictly below
	AuthorID   *int64
	FollowedBy *int64 // posts by this user or anyone they follow
	Limit      *int
}

// FeedPage is one page of a feed. NextCursor is set only when the page is full.
type FeedPage struct {
	Feed       string       `json:"feed"`
	Limit      int          `json:"limit"`
	BeforeID   *int64       `json:"before_id"`
	NextCursor *int64       `json:"next_cursor"`
	Posts      []FeedPost   `json:"posts"`
	User       *UserSummary `json:"user"`
}

// Profile is a user's page: relationship counts and their posts.
type Profile struct {
	User           UserSummary `json:"user"`
	FollowersCount int         `json:"followers_count"`
	FollowingCount int         `json:"following_count"`
	IsFollowing    bool        `json:"is_following"`
	Posts          []FeedPost  `json:"posts"`
}

// Feed errors
var (
	ErrInvalidFeed  = errors.New("invalid feed")
	ErrAuthRequired = errors.New("authentication required")
)
