package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"minisocial/internal/model"
	"minisocial/internal/repository"
	"minisocial/internal/timefmt"
)

// FeedService answers every read of posts: the paginated API feed, the
// unpaginated page feeds and profiles.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	formatter   *timefmt.Formatter
}

func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	formatter *timefmt.Formatter,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		formatter:   formatter,
	}
}

// ClampLimit applies the page size bounds. nil selects the default.
func ClampLimit(limit *int) int {
	if limit == nil {
		return model.DefaultFeedLimit
	}
	switch {
	case *limit < 1:
		return 1
	case *limit > model.MaxFeedLimit:
		return model.MaxFeedLimit
	}
	return *limit
}

// Feed returns one page of the public or following feed, newest id first.
//
// The cursor is the last id of a full page. A short page means the end of the
// feed, so NextCursor stays nil. Posts inserted after a page was served get
// higher ids and can never appear behind an issued cursor.
func (s *FeedService) Feed(ctx context.Context, q model.FeedQuery) (*model.FeedPage, error) {
	filter, err := feedFilter(q.Feed, q.ViewerID)
	if err != nil {
		return nil, err
	}

	limit := ClampLimit(q.Limit)
	filter.Limit = &limit
	filter.BeforeID = q.BeforeID

	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list %s feed: %w", q.Feed, err)
	}
	s.formatPosts(posts)

	page := &model.FeedPage{
		Feed:     q.Feed,
		Limit:    limit,
		BeforeID: q.BeforeID,
		Posts:    posts,
		User:     s.viewerSummary(ctx, q.ViewerID),
	}
	if len(posts) == limit {
		last := posts[len(posts)-1].ID
		page.NextCursor = &last
	}
	return page, nil
}

// HomeFeed returns the whole selected feed with comments attached.
func (s *FeedService) HomeFeed(ctx context.Context, feed string, viewerID *int64) ([]model.FeedPost, error) {
	filter, err := feedFilter(feed, viewerID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list %s feed: %w", feed, err)
	}
	if err := s.attachComments(ctx, posts); err != nil {
		return nil, err
	}
	s.formatPosts(posts)
	return posts, nil
}

// Profile returns a user's counts, the viewer's follow state and the user's
// posts with comments attached.
func (s *FeedService) Profile(ctx context.Context, username string, viewerID *int64) (*model.Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, following, err := s.followRepo.Counts(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		User:           *user.Summary(),
		FollowersCount: followers,
		FollowingCount: following,
	}

	if viewerID != nil && *viewerID != user.ID {
		isFollowing, err := s.followRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = isFollowing
	}

	posts, err := s.postRepo.List(ctx, model.PostFilter{ViewerID: viewerID, AuthorID: &user.ID})
	if err != nil {
		return nil, fmt.Errorf("list profile posts: %w", err)
	}
	if err := s.attachComments(ctx, posts); err != nil {
		return nil, err
	}
	s.formatPosts(posts)
	profile.Posts = posts

	return profile, nil
}

func feedFilter(feed string, viewerID *int64) (model.PostFilter, error) {
	switch feed {
	case model.FeedPublic:
		return model.PostFilter{ViewerID: viewerID}, nil
	case model.FeedFollowing:
		if viewerID == nil {
			return model.PostFilter{}, model.ErrAuthRequired
		}
		return model.PostFilter{ViewerID: viewerID, FollowedBy: viewerID}, nil
	default:
		return model.PostFilter{}, model.ErrInvalidFeed
	}
}

// attachComments fetches comments for all posts in one query and groups them
// by post, oldest first.
func (s *FeedService) attachComments(ctx context.Context, posts []model.FeedPost) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	comments, err := s.commentRepo.ListByPostIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	byPost := make(map[int64][]model.Comment, len(posts))
	for _, c := range comments {
		c.CreatedAt = s.formatter.Format(c.CreatedAt)
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	for i := range posts {
		posts[i].Comments = byPost[posts[i].ID]
	}
	return nil
}

func (s *FeedService) formatPosts(posts []model.FeedPost) {
	for i := range posts {
		posts[i].CreatedAt = s.formatter.Format(posts[i].CreatedAt)
	}
}

// viewerSummary is best effort: a stale session renders as anonymous.
func (s *FeedService) viewerSummary(ctx context.Context, viewerID *int64) *model.UserSummary {
	if viewerID == nil {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, *viewerID)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			log.Printf("[FeedService] Viewer lookup failed for user=%d: %v", *viewerID, err)
		}
		return nil
	}
	return user.Summary()
}
