// Package seed fills an empty store with fake users and activity for local
// development. Everything goes through the services, so seeded rows obey the
// same validation as real traffic.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"minisocial/internal/model"
)

// Password is shared by every seeded account.
const Password = "password123"

type Registrar interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
}

type Poster interface {
	Create(ctx context.Context, userID int64, content string) (*model.FeedPost, error)
	Like(ctx context.Context, userID, postID int64) (*model.LikeState, error)
}

type Commenter interface {
	Create(ctx context.Context, userID, postID int64, content string) (*model.CommentResult, error)
}

type Follower interface {
	Follow(ctx context.Context, followerID int64, username string) (*model.FollowResult, error)
}

// Options controls how much data is generated.
type Options struct {
	Users        int
	PostsPerUser int
	// Seed makes runs reproducible; 0 picks a random seed.
	Seed int64
}

// Result counts what was created.
type Result struct {
	Users    int
	Posts    int
	Follows  int
	Likes    int
	Comments int
}

type Generator struct {
	users    Registrar
	posts    Poster
	comments Commenter
	follows  Follower
}

func NewGenerator(users Registrar, posts Poster, comments Commenter, follows Follower) *Generator {
	return &Generator{
		users:    users,
		posts:    posts,
		comments: comments,
		follows:  follows,
	}
}

// Run creates opts.Users accounts, their posts, and random follows, likes and
// comments between them.
func (g *Generator) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Users < 1 {
		return nil, fmt.Errorf("users must be at least 1, got %d", opts.Users)
	}
	if opts.PostsPerUser < 0 {
		return nil, fmt.Errorf("posts must not be negative, got %d", opts.PostsPerUser)
	}

	faker := gofakeit.New(opts.Seed)
	result := &Result{}

	users := make([]*model.User, 0, opts.Users)
	for len(users) < opts.Users {
		user, err := g.register(ctx, faker)
		if err != nil {
			return result, err
		}
		users = append(users, user)
		result.Users++
	}

	var postIDs []int64
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := g.posts.Create(ctx, user.ID, faker.Sentence(faker.Number(3, 14)))
			if err != nil {
				return result, fmt.Errorf("create post: %w", err)
			}
			postIDs = append(postIDs, post.ID)
			result.Posts++
		}
	}

	for _, user := range users {
		for _, target := range pick(faker, users, len(users)/3) {
			if target.ID == user.ID {
				continue
			}
			res, err := g.follows.Follow(ctx, user.ID, target.Username)
			if err != nil {
				return result, fmt.Errorf("follow: %w", err)
			}
			if !res.AlreadyFollowing {
				result.Follows++
			}
		}

		for _, postID := range pick(faker, postIDs, len(postIDs)/4) {
			if _, err := g.posts.Like(ctx, user.ID, postID); err != nil {
				return result, fmt.Errorf("like: %w", err)
			}
			result.Likes++
		}

		for _, postID := range pick(faker, postIDs, len(postIDs)/10) {
			if _, err := g.comments.Create(ctx, user.ID, postID, faker.Sentence(faker.Number(2, 8))); err != nil {
				return result, fmt.Errorf("comment: %w", err)
			}
			result.Comments++
		}
	}

	log.Printf("[Seed] Created %d users, %d posts, %d follows, %d likes, %d comments",
		result.Users, result.Posts, result.Follows, result.Likes, result.Comments)
	return result, nil
}

// register retries on name collisions, which fake usernames produce now and then.
func (g *Generator) register(ctx context.Context, faker *gofakeit.Faker) (*model.User, error) {
	const attempts = 5
	for i := 0; i < attempts; i++ {
		username := strings.ToLower(faker.Username())
		if len(username) < model.MinUsernameLength {
			username += faker.DigitN(3)
		}
		user, err := g.users.Register(ctx, &model.RegisterRequest{Username: username, Password: Password})
		if errors.Is(err, model.ErrUsernameExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", username, err)
		}
		return user, nil
	}
	return nil, fmt.Errorf("no free username after %d attempts", attempts)
}

// pick returns up to n distinct random elements.
func pick[T any](faker *gofakeit.Faker, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	faker.Rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
