package service

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"minisocial/internal/metrics"
	"minisocial/internal/model"
	"minisocial/internal/repository"
	"minisocial/internal/timefmt"
)

type PostService struct {
	postRepo  repository.PostRepository
	likeRepo  repository.LikeRepository
	formatter *timefmt.Formatter
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository, formatter *timefmt.Formatter) *PostService {
	return &PostService{
		postRepo:  postRepo,
		likeRepo:  likeRepo,
		formatter: formatter,
	}
}

// Create validates and inserts a post authored by userID.
func (s *PostService) Create(ctx context.Context, userID int64, content string) (*model.FeedPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, model.ErrContentRequired
	}
	if utf8.RuneCountInString(content) > model.MaxPostLength {
		return nil, model.ErrContentTooLong
	}

	post, err := s.postRepo.Create(ctx, userID, content)
	if err != nil {
		return nil, err
	}
	post.CreatedAt = s.formatter.Format(post.CreatedAt)

	metrics.PostsCreated.Inc()
	log.Printf("[PostService] User %d created post %d", userID, post.ID)
	return post, nil
}

// Like marks the post as liked by userID. Liking twice leaves one like.
func (s *PostService) Like(ctx context.Context, userID, postID int64) (*model.LikeState, error) {
	inserted, err := s.likeRepo.Create(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	metrics.Likes.WithLabelValues("like", metrics.Changed(inserted)).Inc()

	return s.likeState(ctx, postID, 1)
}

// Unlike removes userID's like. Unliking a post that was never liked is a no-op.
func (s *PostService) Unlike(ctx context.Context, userID, postID int64) (*model.LikeState, error) {
	removed, err := s.likeRepo.Delete(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	metrics.Likes.WithLabelValues("unlike", metrics.Changed(removed)).Inc()

	return s.likeState(ctx, postID, 0)
}

func (s *PostService) likeState(ctx context.Context, postID int64, likedByMe int) (*model.LikeState, error) {
	count, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &model.LikeState{
		PostID:    postID,
		LikedByMe: likedByMe,
		LikeCount: count,
	}, nil
}
