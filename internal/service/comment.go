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

type CommentService struct {
	commentRepo repository.CommentRepository
	formatter   *timefmt.Formatter
}

func NewCommentService(commentRepo repository.CommentRepository, formatter *timefmt.Formatter) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		formatter:   formatter,
	}
}

// Create adds a comment and returns it with the post's new comment count.
func (s *CommentService) Create(ctx context.Context, userID, postID int64, content string) (*model.CommentResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, model.ErrCommentRequired
	}
	if utf8.RuneCountInString(content) > model.MaxCommentLength {
		return nil, model.ErrCommentTooLong
	}

	comment, err := s.commentRepo.Create(ctx, userID, postID, content)
	if err != nil {
		return nil, err
	}
	comment.CreatedAt = s.formatter.Format(comment.CreatedAt)

	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	metrics.CommentsCreated.Inc()
	log.Printf("[CommentService] User %d commented on post %d", userID, postID)
	return &model.CommentResult{
		CommentCount: count,
		Comment:      comment,
	}, nil
}
