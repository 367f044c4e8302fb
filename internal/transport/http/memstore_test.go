package http

import (
	"context"
	"sort"
	"sync"

	"minisocial/internal/model"
	"minisocial/internal/repository"
	"minisocial/internal/timefmt"
)

// memStore is an in-memory stand-in for PostgreSQL that honours the same keys
// and constraints the schema declares.
type memStore struct {
	mu       sync.Mutex
	users    []model.User
	posts    []memPost
	likes    map[[2]int64]bool
	comments []memComment
	follows  map[[2]int64]bool
}

type memPost struct {
	id        int64
	userID    int64
	content   string
	createdAt string
}

type memComment struct {
	id        int64
	postID    int64
	userID    int64
	content   string
	createdAt string
}

func newMemStore() *memStore {
	return &memStore{
		likes:   map[[2]int64]bool{},
		follows: map[[2]int64]bool{},
	}
}

func (s *memStore) repositories() repository.Set {
	return repository.Set{
		Users:    memUsers{s},
		Posts:    memPosts{s},
		Likes:    memLikes{s},
		Comments: memComments{s},
		Follows:  memFollows{s},
	}
}

func (s *memStore) userByID(id int64) *model.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *memStore) postExists(id int64) bool {
	for _, p := range s.posts {
		if p.id == id {
			return true
		}
	}
	return false
}

func (s *memStore) countComments(postID int64) int {
	n := 0
	for _, c := range s.comments {
		if c.postID == postID {
			n++
		}
	}
	return n
}

func (s *memStore) countLikes(postID int64) int {
	n := 0
	for key := range s.likes {
		if key[1] == postID {
			n++
		}
	}
	return n
}

func (s *memStore) feedRow(p memPost, viewerID *int64) model.FeedPost {
	row := model.FeedPost{
		ID:           p.id,
		Content:      p.content,
		Username:     s.userByID(p.userID).Username,
		CreatedAt:    p.createdAt,
		LikeCount:    s.countLikes(p.id),
		CommentCount: s.countComments(p.id),
	}
	if viewerID != nil && s.likes[[2]int64{*viewerID, p.id}] {
		row.LikedByMe = 1
	}
	return row
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return model.ErrUsernameExists
		}
	}
	user.ID = int64(len(r.s.users) + 1)
	user.CreatedAt = timefmt.Now()
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u := r.s.userByID(id); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, model.ErrUserNotFound
}

func (r memUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

type memPosts struct{ s *memStore }

func (r memPosts) Create(ctx context.Context, userID int64, content string) (*model.FeedPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.userByID(userID) == nil {
		return nil, model.ErrUserNotFound
	}
	p := memPost{id: int64(len(r.s.posts) + 1), userID: userID, content: content, createdAt: timefmt.Now()}
	r.s.posts = append(r.s.posts, p)
	row := r.s.feedRow(p, nil)
	return &row, nil
}

func (r memPosts) Exists(ctx context.Context, postID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.postExists(postID), nil
}

func (r memPosts) List(ctx context.Context, f model.PostFilter) ([]model.FeedPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.FeedPost{}
	for i := len(r.s.posts) - 1; i >= 0; i-- {
		p := r.s.posts[i]
		if f.BeforeID != nil && p.id >= *f.BeforeID {
			continue
		}
		if f.AuthorID != nil && p.userID != *f.AuthorID {
			continue
		}
		if f.FollowedBy != nil && p.userID != *f.FollowedBy && !r.s.follows[[2]int64{*f.FollowedBy, p.userID}] {
			continue
		}
		if f.Limit != nil && len(out) == *f.Limit {
			break
		}
		out = append(out, r.s.feedRow(p, f.ViewerID))
	}
	return out, nil
}

type memLikes struct{ s *memStore }

func (r memLikes) Create(ctx context.Context, userID, postID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.postExists(postID) {
		return false, model.ErrPostNotFound
	}
	if r.s.userByID(userID) == nil {
		return false, model.ErrUserNotFound
	}
	key := [2]int64{userID, postID}
	if r.s.likes[key] {
		return false, nil
	}
	r.s.likes[key] = true
	return true, nil
}

func (r memLikes) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{userID, postID}
	if !r.s.likes[key] {
		return false, nil
	}
	delete(r.s.likes, key)
	return true, nil
}

func (r memLikes) CountByPost(ctx context.Context, postID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.countLikes(postID), nil
}

type memComments struct{ s *memStore }

func (r memComments) Create(ctx context.Context, userID, postID int64, content string) (*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.postExists(postID) {
		return nil, model.ErrPostNotFound
	}
	if r.s.userByID(userID) == nil {
		return nil, model.ErrUserNotFound
	}
	c := memComment{id: int64(len(r.s.comments) + 1), postID: postID, userID: userID, content: content, createdAt: timefmt.Now()}
	r.s.comments = append(r.s.comments, c)
	return &model.Comment{
		ID:        c.id,
		PostID:    postID,
		Username:  r.s.userByID(userID).Username,
		Content:   content,
		CreatedAt: c.createdAt,
	}, nil
}

func (r memComments) CountByPost(ctx context.Context, postID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.countComments(postID), nil
}

func (r memComments) ListByPostIDs(ctx context.Context, postIDs []int64) ([]model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}
	out := []model.Comment{}
	for _, c := range r.s.comments {
		if wanted[c.postID] {
			out = append(out, model.Comment{
				ID:        c.id,
				PostID:    c.postID,
				Username:  r.s.userByID(c.userID).Username,
				Content:   c.content,
				CreatedAt: c.createdAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memFollows struct{ s *memStore }

func (r memFollows) Create(ctx context.Context, followerID, followeeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{followerID, followeeID}
	if r.s.follows[key] {
		return false, nil
	}
	r.s.follows[key] = true
	return true, nil
}

func (r memFollows) Delete(ctx context.Context, followerID, followeeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int64{followerID, followeeID}
	if !r.s.follows[key] {
		return false, nil
	}
	delete(r.s.follows, key)
	return true, nil
}

func (r memFollows) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.follows[[2]int64{followerID, followeeID}], nil
}

func (r memFollows) Counts(ctx context.Context, userID int64) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	followers, following := 0, 0
	for key := range r.s.follows {
		if key[1] == userID {
			followers++
		}
		if key[0] == userID {
			following++
		}
	}
	return followers, following, nil
}
