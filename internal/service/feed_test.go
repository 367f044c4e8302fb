package service

import (
	"context"
	"errors"
	"testing"

	"minisocial/internal/model"
	"minisocial/internal/timefmt"
)

func newTestFeedService(posts *mockPostRepository, comments *mockCommentRepository, users *mockUserRepository, follows *mockFollowRepository) *FeedService {
	return NewFeedService(posts, comments, users, follows, timefmt.New("UTC"))
}

// postsWithIDs returns a listing func serving the given ids, honouring the
// cursor and limit like the real query does.
func postsWithIDs(ids ...int64) func(ctx context.Context, filter model.PostFilter) ([]model.FeedPost, error) {
	return func(ctx context.Context, filter model.PostFilter) ([]model.FeedPost, error) {
		out := []model.FeedPost{}
		for _, id := range ids {
			if filter.BeforeID != nil && id >= *filter.BeforeID {
				continue
			}
			if filter.Limit != nil && len(out) == *filter.Limit {
				break
			}
			out = append(out, model.FeedPost{ID: id, CreatedAt: "2024-03-05T14:07:00Z"})
		}
		return out, nil
	}
}

// =============================================================================
// FEED SELECTION
// =============================================================================

func TestFeedService_Feed_Selectors(t *testing.T) {
	viewer := int64Ptr(7)

	tests := []struct {
		name           string
		feed           string
		viewerID       *int64
		wantErr        error
		wantFollowedBy *int64
	}{
		{name: "public anonymous", feed: model.FeedPublic},
		{name: "public with viewer", feed: model.FeedPublic, viewerID: viewer},
		{name: "following with viewer", feed: model.FeedFollowing, viewerID: viewer, wantFollowedBy: viewer},
		{name: "following anonymous", feed: model.FeedFollowing, wantErr: model.ErrAuthRequired},
		{name: "unknown feed", feed: "trending", viewerID: viewer, wantErr: model.ErrInvalidFeed},
		{name: "empty feed", feed: "", wantErr: model.ErrInvalidFeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &mockPostRepository{}
			svc := newTestFeedService(posts, &mockCommentRepository{}, &mockUserRepository{}, newMockFollowRepository())

			page, err := svc.Feed(context.Background(), model.FeedQuery{Feed: tt.feed, ViewerID: tt.viewerID})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if len(posts.listCalls) != 0 {
					t.Error("store should not be queried for a rejected feed")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page.Feed != tt.feed {
				t.Errorf("feed = %q, want %q", page.Feed, tt.feed)
			}

			filter := posts.listCalls[0]
			if (filter.FollowedBy == nil) != (tt.wantFollowedBy == nil) {
				t.Errorf("FollowedBy = %v, want %v", filter.FollowedBy, tt.wantFollowedBy)
			}
			if filter.ViewerID != tt.viewerID {
				t.Errorf("ViewerID = %v, want %v", filter.ViewerID, tt.viewerID)
			}
		})
	}
}

// =============================================================================
// PAGINATION
// =============================================================================

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{"default", nil, 20},
		{"zero", intPtr(0), 1},
		{"negative", intPtr(-3), 1},
		{"inside", intPtr(10), 10},
		{"upper bound", intPtr(50), 50},
		{"too large", intPtr(500), 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampLimit(tt.limit); got != tt.want {
				t.Errorf("ClampLimit = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFeedService_Feed_NextCursor(t *testing.T) {
	tests := []struct {
		name       string
		ids        []int64
		limit      int
		beforeID   *int64
		wantIDs    []int64
		wantCursor *int64
	}{
		{name: "full page sets cursor", ids: []int64{9, 8, 7, 6}, limit: 3, wantIDs: []int64{9, 8, 7}, wantCursor: int64Ptr(7)},
		{name: "short page ends feed", ids: []int64{9, 8}, limit: 3, wantIDs: []int64{9, 8}},
		{name: "exact fit still sets cursor", ids: []int64{9, 8, 7}, limit: 3, wantIDs: []int64{9, 8, 7}, wantCursor: int64Ptr(7)},
		{name: "before id is exclusive", ids: []int64{9, 8, 7, 6}, limit: 3, beforeID: int64Ptr(8), wantIDs: []int64{7, 6}},
		{name: "empty feed", ids: nil, limit: 3, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &mockPostRepository{listFn: postsWithIDs(tt.ids...)}
			svc := newTestFeedService(posts, &mockCommentRepository{}, &mockUserRepository{}, newMockFollowRepository())

			page, err := svc.Feed(context.Background(), model.FeedQuery{
				Feed:     model.FeedPublic,
				Limit:    intPtr(tt.limit),
				BeforeID: tt.beforeID,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(page.Posts) != len(tt.wantIDs) {
				t.Fatalf("got %d posts, want %d", len(page.Posts), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if page.Posts[i].ID != id {
					t.Errorf("post[%d] = %d, want %d", i, page.Posts[i].ID, id)
				}
			}

			switch {
			case tt.wantCursor == nil && page.NextCursor != nil:
				t.Errorf("next_cursor = %d, want nil", *page.NextCursor)
			case tt.wantCursor != nil && (page.NextCursor == nil || *page.NextCursor != *tt.wantCursor):
				t.Errorf("next_cursor = %v, want %d", page.NextCursor, *tt.wantCursor)
			}
			if page.Limit != tt.limit {
				t.Errorf("limit = %d, want %d", page.Limit, tt.limit)
			}
		})
	}
}

func TestFeedService_Feed_ChainVisitsEveryPostOnce(t *testing.T) {
	ids := []int64{15, 14, 12, 11, 9, 8, 5, 3, 2, 1}
	posts := &mockPostRepository{listFn: postsWithIDs(ids...)}
	svc := newTestFeedService(posts, &mockCommentRepository{}, &mockUserRepository{}, newMockFollowRepository())

	var seen []int64
	var cursor *int64
	for pages := 0; pages < 20; pages++ {
		page, err := svc.Feed(context.Background(), model.FeedQuery{Feed: model.FeedPublic, Limit: intPtr(4), BeforeID: cursor})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, p := range page.Posts {
			seen = append(seen, p.ID)
		}
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}

	if len(seen) != len(ids) {
		t.Fatalf("saw %d posts, want %d: %v", len(seen), len(ids), seen)
	}
	for i := range ids {
		if seen[i] != ids[i] {
			t.Errorf("position %d = %d, want %d", i, seen[i], ids[i])
		}
	}
}

func TestFeedService_Feed_FormatsAndIncludesViewer(t *testing.T) {
	posts := &mockPostRepository{listFn: postsWithIDs(3)}
	users := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Username: "alice"}, nil
		},
	}
	comments := &mockCommentRepository{}
	svc := newTestFeedService(posts, comments, users, newMockFollowRepository())

	page, err := svc.Feed(context.Background(), model.FeedQuery{Feed: model.FeedPublic, ViewerID: int64Ptr(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Posts[0].CreatedAt != "Mar 05 02:07 PM" {
		t.Errorf("created_at = %q", page.Posts[0].CreatedAt)
	}
	if page.User == nil || page.User.Username != "alice" {
		t.Errorf("user = %+v, want alice", page.User)
	}
	if len(comments.listCalls) != 0 {
		t.Error("API feed should not fetch comments")
	}
}

// =============================================================================
// HOME FEED AND PROFILE
// =============================================================================

func TestFeedService_HomeFeed_AttachesCommentsInOneQuery(t *testing.T) {
	posts := &mockPostRepository{listFn: postsWithIDs(3, 2, 1)}
	comments := &mockCommentRepository{
		listByPostIDsFn: func(ctx context.Context, postIDs []int64) ([]model.Comment, error) {
			return []model.Comment{
				{ID: 10, PostID: 3, Content: "a"},
				{ID: 11, PostID: 1, Content: "b"},
				{ID: 12, PostID: 3, Content: "c"},
			}, nil
		},
	}
	svc := newTestFeedService(posts, comments, &mockUserRepository{}, newMockFollowRepository())

	got, err := svc.HomeFeed(context.Background(), model.FeedPublic, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(comments.listCalls) != 1 {
		t.Fatalf("ListByPostIDs called %d times, want 1", len(comments.listCalls))
	}
	if ids := comments.listCalls[0]; len(ids) != 3 || ids[0] != 3 || ids[2] != 1 {
		t.Errorf("post ids = %v", ids)
	}
	if len(got[0].Comments) != 2 || got[0].Comments[0].Content != "a" || got[0].Comments[1].Content != "c" {
		t.Errorf("post 3 comments = %+v", got[0].Comments)
	}
	if len(got[1].Comments) != 0 {
		t.Errorf("post 2 comments = %+v, want none", got[1].Comments)
	}
	if len(got[2].Comments) != 1 {
		t.Errorf("post 1 comments = %+v", got[2].Comments)
	}
	if posts.listCalls[0].Limit != nil {
		t.Error("home feed should not be limited")
	}
}

func TestFeedService_HomeFeed_FollowingNeedsViewer(t *testing.T) {
	svc := newTestFeedService(&mockPostRepository{}, &mockCommentRepository{}, &mockUserRepository{}, newMockFollowRepository())

	if _, err := svc.HomeFeed(context.Background(), model.FeedFollowing, nil); !errors.Is(err, model.ErrAuthRequired) {
		t.Errorf("error = %v, want %v", err, model.ErrAuthRequired)
	}
}

func TestFeedService_Profile(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice"}
	bob := &model.User{ID: 2, Username: "bob"}
	carol := &model.User{ID: 3, Username: "carol"}

	follows := newMockFollowRepository()
	follows.edges[[2]int64{2, 1}] = true // bob -> alice
	follows.edges[[2]int64{3, 1}] = true // carol -> alice
	follows.edges[[2]int64{1, 3}] = true // alice -> carol

	posts := &mockPostRepository{listFn: postsWithIDs(5, 4)}
	users := &mockUserRepository{getByUsernameFn: usersByName(alice, bob, carol)}
	svc := newTestFeedService(posts, &mockCommentRepository{}, users, follows)

	t.Run("viewer follows owner", func(t *testing.T) {
		profile, err := svc.Profile(context.Background(), "alice", &bob.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.FollowersCount != 2 || profile.FollowingCount != 1 {
			t.Errorf("counts = %d/%d, want 2/1", profile.FollowersCount, profile.FollowingCount)
		}
		if !profile.IsFollowing {
			t.Error("bob follows alice")
		}
		if len(profile.Posts) != 2 {
			t.Errorf("posts = %d, want 2", len(profile.Posts))
		}
		filter := posts.listCalls[len(posts.listCalls)-1]
		if filter.AuthorID == nil || *filter.AuthorID != alice.ID {
			t.Errorf("AuthorID = %v, want %d", filter.AuthorID, alice.ID)
		}
	})

	t.Run("own profile never following", func(t *testing.T) {
		profile, err := svc.Profile(context.Background(), "alice", &alice.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.IsFollowing {
			t.Error("is_following should be false on own profile")
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		profile, err := svc.Profile(context.Background(), "carol", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.IsFollowing || profile.FollowersCount != 1 || profile.FollowingCount != 1 {
			t.Errorf("profile = %+v", profile)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := svc.Profile(context.Background(), "nobody", nil); !errors.Is(err, model.ErrUserNotFound) {
			t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
		}
	})
}
