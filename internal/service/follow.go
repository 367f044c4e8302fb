package service

import (
	"context"
	"log"

	"minisocial/internal/metrics"
	"minisocial/internal/model"
	"minisocial/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow makes followerID follow the named user. An existing edge is
// reported through AlreadyFollowing rather than as an error.
func (s *FollowService) Follow(ctx context.Context, followerID int64, username string) (*model.FollowResult, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target.ID == followerID {
		return nil, model.ErrCannotFollowSelf
	}

	inserted, err := s.followRepo.Create(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	metrics.Follows.WithLabelValues("follow", metrics.Changed(inserted)).Inc()

	if inserted {
		log.Printf("[FollowService] User %d followed user %d", followerID, target.ID)
	}
	return &model.FollowResult{
		Username:         target.Username,
		IsFollowing:      true,
		AlreadyFollowing: !inserted,
	}, nil
}

// Unfollow removes the edge if present.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, username string) (*model.FollowResult, error) {
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	removed, err := s.followRepo.Delete(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	metrics.Follows.WithLabelValues("unfollow", metrics.Changed(removed)).Inc()

	if removed {
		log.Printf("[FollowService] User %d unfollowed user %d", followerID, target.ID)
	}
	return &model.FollowResult{
		Username:    target.Username,
		IsFollowing: false,
	}, nil
}
