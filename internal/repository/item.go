package repository

import (
	"context"
	"fmt"

	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// Search matches title or description case-insensitively within one
// category, newest first.
func (r *ItemRepository) Search(ctx context.Context, categoryID uuid.UUID, search string, offset, limit int) ([]*models.Item, error) {
	var items []*models.Item
	db := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ?", categoryID)

	if search != "" {
		db = db.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := db.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) CountSearch(ctx context.Context, categoryID uuid.UUID, search string) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("category_id = ?", categoryID)

	if search != "" {
		db = db.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// IDsByCategoryIDs collects the ids of every item living in one of the
// given categories; the feed uses the result to constrain its review
// query.
func (r *ItemRepository) IDsByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("category_id IN ?", categoryIDs).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve items by category: %w", err)
	}
	return ids, nil
}
