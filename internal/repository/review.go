package repository

import (
	"context"
	"fmt"

	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Preload("User.Avatar").
		Preload("Item.Category").
		First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepository) ExistsForUserItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return count > 0, nil
}

// ListPage returns one feed page, newest first with id as the
// tiebreaker so the total order is stable across requests. A nil
// itemIDs slice means no item filter; callers must not pass an empty
// non-nil slice (the no-matching-filter case is short-circuited above
// this layer).
func (r *ReviewRepository) ListPage(ctx context.Context, itemIDs []uuid.UUID, offset, limit int) ([]*models.Review, error) {
	var reviews []*models.Review
	db := r.db.WithContext(ctx).
		Preload("User.Avatar").
		Preload("Item.Category")

	if itemIDs != nil {
		db = db.Where("item_id IN ?", itemIDs)
	}

	if err := db.
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) Count(ctx context.Context, itemIDs []uuid.UUID) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&models.Review{})

	if itemIDs != nil {
		db = db.Where("item_id IN ?", itemIDs)
	}

	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
