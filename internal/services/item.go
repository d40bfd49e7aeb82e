package services

import (
	"context"
	"fmt"
	"math"

	"github.com/CamiloArboledaG/reviewHub/internal/config"
	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/google/uuid"
)

const itemImageFolder = "reviewhub/items"

type ItemService struct {
	itemRepo     ItemStore
	categoryRepo CategoryStore
	media        MediaStore
	config       *config.FeedConfig
	logger       *logger.Logger
}

func NewItemService(itemRepo ItemStore, categoryRepo CategoryStore, media MediaStore, config *config.FeedConfig, logger *logger.Logger) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		media:        media,
		config:       config,
		logger:       logger,
	}
}

type CreateItemRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description" binding:"required"`
	CategoryID  string `form:"category" binding:"required"`
}

type ItemPage struct {
	Items       []*models.Item `json:"items"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalItems  int64          `json:"totalItems"`
	HasNextPage bool           `json:"hasNextPage"`
}

// Search pages through one category's items, optionally narrowed by a
// case-insensitive title/description match.
func (s *ItemService) Search(ctx context.Context, categoryID, search string, page, limit int) (*ItemPage, error) {
	categoryUUID, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.config.DefaultPageSize
	}
	if limit > s.config.MaxPageSize {
		limit = s.config.MaxPageSize
	}

	offset := (page - 1) * limit
	items, err := s.itemRepo.Search(ctx, categoryUUID, search, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	total, err := s.itemRepo.CountSearch(ctx, categoryUUID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &ItemPage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: page < totalPages,
	}, nil
}

func (s *ItemService) GetByID(ctx context.Context, itemID string) (*models.Item, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, ErrItemNotFound
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Create records a user suggestion. Suggested items start out pending
// and carry the suggesting user; the optional image goes to the media
// store first so a failed upload never leaves a half-created item.
func (s *ItemService) Create(ctx context.Context, userID string, req *CreateItemRequest, image []byte, imageContentType string) (*models.Item, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	categoryUUID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	imageURL := ""
	if len(image) > 0 {
		result, err := s.media.Upload(ctx, image, imageContentType, itemImageFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload item image: %w", err)
		}
		imageURL = result.URL
	}

	item := &models.Item{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      imageURL,
		CategoryID:    categoryUUID,
		Status:        models.ItemStatusPending,
		SuggestedByID: &userUUID,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	created, err := s.itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created item: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"item_id": item.ID,
		"user_id": userID,
	}).Info("Item suggested successfully")

	return created, nil
}
