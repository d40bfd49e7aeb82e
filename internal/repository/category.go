package repository

import (
	"context"
	"fmt"

	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// IDsBySlugs resolves the subset of slugs that exist; unknown slugs are
// silently dropped, which is what lets the feed treat an all-unknown
// filter as "no results".
func (r *CategoryRepository) IDsBySlugs(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("slug IN ?", slugs).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve category slugs: %w", err)
	}
	return ids, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// SeedDefaults inserts the reference categories once; reruns are no-ops.
func (r *CategoryRepository) SeedDefaults(ctx context.Context) error {
	defaults := []models.Category{
		{Name: "Games", Slug: "game"},
		{Name: "Movies", Slug: "movie"},
		{Name: "Series", Slug: "series"},
		{Name: "Books", Slug: "book"},
	}

	for _, category := range defaults {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Category{}).
			Where("slug = ?", category.Slug).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check category %s: %w", category.Slug, err)
		}
		if count > 0 {
			continue
		}
		if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.Slug, err)
		}
	}
	return nil
}
