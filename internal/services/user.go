package services

import (
	"context"
	"fmt"

	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/CamiloArboledaG/reviewHub/pkg/queue"
	"github.com/google/uuid"
)

// UserService owns the follow graph. A follow is a single edge row, so
// the following/followers views can never disagree; there is no dual
// write to keep consistent.
type UserService struct {
	userRepo   UserStore
	followRepo FollowStore
	producer   EventPublisher
	logger     *logger.Logger
}

func NewUserService(userRepo UserStore, followRepo FollowStore, producer EventPublisher, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		producer:   producer,
		logger:     logger,
	}
}

func (s *UserService) Follow(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfFollow
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return fmt.Errorf("invalid actor ID: %w", err)
	}

	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return fmt.Errorf("invalid target ID: %w", err)
	}

	actor, err := s.userRepo.GetByID(ctx, actorUUID)
	if err != nil {
		return fmt.Errorf("failed to get actor: %w", err)
	}
	if actor == nil {
		return ErrUserNotFound
	}

	target, err := s.userRepo.GetByID(ctx, targetUUID)
	if err != nil {
		return fmt.Errorf("failed to get target: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	existingFollow, err := s.followRepo.Get(ctx, actorUUID, targetUUID)
	if err != nil {
		return fmt.Errorf("failed to check follow status: %w", err)
	}
	if existingFollow != nil {
		return ErrAlreadyFollowing
	}

	follow := &models.Follow{
		FollowerID:  actorUUID,
		FollowingID: targetUUID,
	}

	if err := s.followRepo.Create(ctx, follow); err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	event, err := queue.NewEvent(queue.EventFollowCreated, follow.CreatedAt, queue.FollowEventData{
		FollowerID:  actorID,
		FollowingID: targetID,
		CreatedAt:   follow.CreatedAt.Format("2006-01-02T15:04:05Z"),
	})
	if err == nil {
		if err := s.producer.Publish(ctx, actorID, event); err != nil {
			s.logger.WithError(err).Error("Failed to publish follow created event")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"follower_id":  actorID,
		"following_id": targetID,
	}).Info("User followed successfully")

	return nil
}

func (s *UserService) Unfollow(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfFollow
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return fmt.Errorf("invalid actor ID: %w", err)
	}

	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return fmt.Errorf("invalid target ID: %w", err)
	}

	target, err := s.userRepo.GetByID(ctx, targetUUID)
	if err != nil {
		return fmt.Errorf("failed to get target: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	existingFollow, err := s.followRepo.Get(ctx, actorUUID, targetUUID)
	if err != nil {
		return fmt.Errorf("failed to check follow status: %w", err)
	}
	if existingFollow == nil {
		return ErrNotFollowing
	}

	if err := s.followRepo.Delete(ctx, actorUUID, targetUUID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	event, err := queue.NewEvent(queue.EventFollowDeleted, existingFollow.CreatedAt, queue.FollowEventData{
		FollowerID:  actorID,
		FollowingID: targetID,
	})
	if err == nil {
		if err := s.producer.Publish(ctx, actorID, event); err != nil {
			s.logger.WithError(err).Error("Failed to publish follow deleted event")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"follower_id":  actorID,
		"following_id": targetID,
	}).Info("User unfollowed successfully")

	return nil
}

func (s *UserService) GetFollowing(ctx context.Context, userID string) ([]models.UserSummary, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	following, err := s.followRepo.GetFollowing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}

	return summarize(following), nil
}

func (s *UserService) GetFollowers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	followers, err := s.followRepo.GetFollowers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}

	return summarize(followers), nil
}

func summarize(users []*models.User) []models.UserSummary {
	summaries := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}
	return summaries
}
