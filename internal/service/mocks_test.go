package service

import (
	"context"

	"minisocial/internal/model"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// Services depend on repository interfaces, so each mock lets a test supply
// the behaviour it needs through function fields and records the calls made.

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)

	createCalls []createCall
}

type createCall struct {
	User *model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, createCall{User: user})
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

type mockPostRepository struct {
	createFn func(ctx context.Context, userID int64, content string) (*model.FeedPost, error)
	existsFn func(ctx context.Context, postID int64) (bool, error)
	listFn   func(ctx context.Context, filter model.PostFilter) ([]model.FeedPost, error)

	createCalls int
	listCalls   []model.PostFilter
}

func (m *mockPostRepository) Create(ctx context.Context, userID int64, content string) (*model.FeedPost, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, userID, content)
	}
	return &model.FeedPost{ID: 1, Content: content}, nil
}

func (m *mockPostRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, postID)
	}
	return true, nil
}

func (m *mockPostRepository) List(ctx context.Context, filter model.PostFilter) ([]model.FeedPost, error) {
	m.listCalls = append(m.listCalls, filter)
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []model.FeedPost{}, nil
}

// mockLikeRepository keeps likes in a set so toggle sequences behave like the
// primary key does.
type mockLikeRepository struct {
	likes map[[2]int64]bool
	err   error
}

func newMockLikeRepository() *mockLikeRepository {
	return &mockLikeRepository{likes: map[[2]int64]bool{}}
}

func (m *mockLikeRepository) Create(ctx context.Context, userID, postID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	key := [2]int64{userID, postID}
	if m.likes[key] {
		return false, nil
	}
	m.likes[key] = true
	return true, nil
}

func (m *mockLikeRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	key := [2]int64{userID, postID}
	if !m.likes[key] {
		return false, nil
	}
	delete(m.likes, key)
	return true, nil
}

func (m *mockLikeRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	n := 0
	for key := range m.likes {
		if key[1] == postID {
			n++
		}
	}
	return n, nil
}

type mockCommentRepository struct {
	createFn        func(ctx context.Context, userID, postID int64, content string) (*model.Comment, error)
	countByPostFn   func(ctx context.Context, postID int64) (int, error)
	listByPostIDsFn func(ctx context.Context, postIDs []int64) ([]model.Comment, error)

	createCalls int
	listCalls   [][]int64
}

func (m *mockCommentRepository) Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, userID, postID, content)
	}
	return &model.Comment{ID: 1, PostID: postID, Content: content}, nil
}

func (m *mockCommentRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	if m.countByPostFn != nil {
		return m.countByPostFn(ctx, postID)
	}
	return 1, nil
}

func (m *mockCommentRepository) ListByPostIDs(ctx context.Context, postIDs []int64) ([]model.Comment, error) {
	m.listCalls = append(m.listCalls, postIDs)
	if m.listByPostIDsFn != nil {
		return m.listByPostIDsFn(ctx, postIDs)
	}
	return nil, nil
}

// mockFollowRepository keeps edges in a set.
type mockFollowRepository struct {
	edges map[[2]int64]bool
	err   error
}

func newMockFollowRepository() *mockFollowRepository {
	return &mockFollowRepository{edges: map[[2]int64]bool{}}
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	key := [2]int64{followerID, followeeID}
	if m.edges[key] {
		return false, nil
	}
	m.edges[key] = true
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	key := [2]int64{followerID, followeeID}
	if !m.edges[key] {
		return false, nil
	}
	delete(m.edges, key)
	return true, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return m.edges[[2]int64{followerID, followeeID}], m.err
}

func (m *mockFollowRepository) Counts(ctx context.Context, userID int64) (int, int, error) {
	followers, following := 0, 0
	for key := range m.edges {
		if key[1] == userID {
			followers++
		}
		if key[0] == userID {
			following++
		}
	}
	return followers, following, m.err
}

// usersByName builds a lookup func over a fixed set of users.
func usersByName(users ...*model.User) func(ctx context.Context, username string) (*model.User, error) {
	return func(ctx context.Context, username string) (*model.User, error) {
		for _, u := range users {
			if u.Username == username {
				return u, nil
			}
		}
		return nil, model.ErrUserNotFound
	}
}

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
