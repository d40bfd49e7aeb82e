package services

import (
	"context"
	"fmt"

	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/google/uuid"
)

const avatarImageFolder = "reviewhub/avatars"

type AvatarService struct {
	avatarRepo AvatarStore
	media      MediaStore
	logger     *logger.Logger
}

func NewAvatarService(avatarRepo AvatarStore, media MediaStore, logger *logger.Logger) *AvatarService {
	return &AvatarService{
		avatarRepo: avatarRepo,
		media:      media,
		logger:     logger,
	}
}

type CreateAvatarRequest struct {
	Name      string `form:"name" binding:"required,max=60"`
	Category  string `form:"category"`
	IsDefault bool   `form:"isDefault"`
}

func (s *AvatarService) List(ctx context.Context, category string) ([]*models.Avatar, error) {
	avatars, err := s.avatarRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list avatars: %w", err)
	}
	return avatars, nil
}

func (s *AvatarService) ListDefaults(ctx context.Context) ([]*models.Avatar, error) {
	avatars, err := s.avatarRepo.ListDefaults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list default avatars: %w", err)
	}
	return avatars, nil
}

func (s *AvatarService) GetByID(ctx context.Context, avatarID string) (*models.Avatar, error) {
	id, err := uuid.Parse(avatarID)
	if err != nil {
		return nil, ErrAvatarNotFound
	}

	avatar, err := s.avatarRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get avatar: %w", err)
	}
	if avatar == nil {
		return nil, ErrAvatarNotFound
	}
	return avatar, nil
}

func (s *AvatarService) Create(ctx context.Context, req *CreateAvatarRequest, image []byte, imageContentType string) (*models.Avatar, error) {
	category := req.Category
	if category == "" {
		category = models.AvatarCategoryCustom
	}

	result, err := s.media.Upload(ctx, image, imageContentType, avatarImageFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar image: %w", err)
	}

	avatar := &models.Avatar{
		Name:      req.Name,
		ImageURL:  result.URL,
		PublicID:  result.Key,
		IsDefault: req.IsDefault,
		Category:  category,
	}

	if err := s.avatarRepo.Create(ctx, avatar); err != nil {
		return nil, fmt.Errorf("failed to create avatar: %w", err)
	}

	s.logger.WithField("avatar_id", avatar.ID).Info("Avatar created successfully")
	return avatar, nil
}

// Delete removes a non-default avatar and its hosted image. The hosted
// image is best-effort: a hosting failure is logged but does not keep
// the avatar row alive.
func (s *AvatarService) Delete(ctx context.Context, avatarID string) error {
	id, err := uuid.Parse(avatarID)
	if err != nil {
		return ErrAvatarNotFound
	}

	avatar, err := s.avatarRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get avatar: %w", err)
	}
	if avatar == nil {
		return ErrAvatarNotFound
	}

	if avatar.IsDefault {
		return ErrDefaultAvatar
	}

	if err := s.media.Delete(ctx, avatar.PublicID); err != nil {
		s.logger.WithError(err).WithField("avatar_id", avatarID).Error("Failed to delete hosted avatar image")
	}

	if err := s.avatarRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}

	s.logger.WithField("avatar_id", avatarID).Info("Avatar deleted successfully")
	return nil
}
