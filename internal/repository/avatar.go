package repository

import (
	"context"
	"fmt"

	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvatarRepository struct {
	db *gorm.DB
}

func NewAvatarRepository(db *gorm.DB) *AvatarRepository {
	return &AvatarRepository{db: db}
}

func (r *AvatarRepository) Create(ctx context.Context, avatar *models.Avatar) error {
	if err := r.db.WithContext(ctx).Create(avatar).Error; err != nil {
		return fmt.Errorf("failed to create avatar: %w", err)
	}
	return nil
}

func (r *AvatarRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Avatar, error) {
	var avatar models.Avatar
	if err := r.db.WithContext(ctx).First(&avatar, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get avatar: %w", err)
	}
	return &avatar, nil
}

// List returns avatars with the defaults first; category is an optional
// filter.
func (r *AvatarRepository) List(ctx context.Context, category string) ([]*models.Avatar, error) {
	var avatars []*models.Avatar
	db := r.db.WithContext(ctx)

	if category != "" {
		db = db.Where("category = ?", category)
	}

	if err := db.
		Order("is_default DESC").
		Order("created_at DESC").
		Find(&avatars).Error; err != nil {
		return nil, fmt.Errorf("failed to list avatars: %w", err)
	}
	return avatars, nil
}

func (r *AvatarRepository) ListDefaults(ctx context.Context) ([]*models.Avatar, error) {
	var avatars []*models.Avatar
	if err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		Order("name ASC").
		Find(&avatars).Error; err != nil {
		return nil, fmt.Errorf("failed to list default avatars: %w", err)
	}
	return avatars, nil
}

func (r *AvatarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Avatar{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}
