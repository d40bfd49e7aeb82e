package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/CamiloArboledaG/reviewHub/internal/config"
	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/CamiloArboledaG/reviewHub/pkg/queue"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedService builds the paginated, filterable, follow-aware review
// feed and owns review creation.
type FeedService struct {
	reviewRepo   ReviewStore
	itemRepo     ItemStore
	categoryRepo CategoryStore
	userRepo     UserStore
	followRepo   FollowStore
	producer     EventPublisher
	config       *config.FeedConfig
	logger       *logger.Logger
}

func NewFeedService(
	reviewRepo ReviewStore,
	itemRepo ItemStore,
	categoryRepo CategoryStore,
	userRepo UserStore,
	followRepo FollowStore,
	producer EventPublisher,
	config *config.FeedConfig,
	logger *logger.Logger,
) *FeedService {
	return &FeedService{
		reviewRepo:   reviewRepo,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		followRepo:   followRepo,
		producer:     producer,
		config:       config,
		logger:       logger,
	}
}

type CreateReviewRequest struct {
	ItemID  string  `json:"itemId" binding:"required"`
	Rating  float64 `json:"rating" binding:"required"`
	Content string  `json:"content" binding:"required"`
}

// FeedReview is a feed entry: the review with its denormalized author,
// avatar, item and category, plus the viewer-relative follow flag.
type FeedReview struct {
	*models.Review
	IsFollowing bool `json:"isFollowing"`
}

type FeedPage struct {
	Reviews      []*FeedReview `json:"reviews"`
	CurrentPage  int           `json:"currentPage"`
	TotalPages   int           `json:"totalPages"`
	TotalReviews int64         `json:"totalReviews"`
	HasNextPage  bool          `json:"hasNextPage"`
}

// GetFeed returns page `page` of the review feed, newest first.
// viewerID may be empty for anonymous requests, in which case every
// entry carries isFollowing=false. A non-empty categorySlugs narrows
// the feed to reviews of items in those categories; if none of the
// slugs resolve, the result is an empty page rather than an unfiltered
// feed.
func (s *FeedService) GetFeed(ctx context.Context, viewerID string, categorySlugs []string, page, limit int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.config.DefaultPageSize
	}
	if limit > s.config.MaxPageSize {
		limit = s.config.MaxPageSize
	}

	var itemIDs []uuid.UUID
	if len(categorySlugs) > 0 {
		categoryIDs, err := s.categoryRepo.IDsBySlugs(ctx, categorySlugs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve categories: %w", err)
		}
		if len(categoryIDs) == 0 {
			return emptyFeedPage(page), nil
		}

		itemIDs, err = s.itemRepo.IDsByCategoryIDs(ctx, categoryIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve items: %w", err)
		}
		if len(itemIDs) == 0 {
			return emptyFeedPage(page), nil
		}
	}

	offset := (page - 1) * limit
	reviews, err := s.reviewRepo.ListPage(ctx, itemIDs, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	total, err := s.reviewRepo.Count(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	// One lookup for the whole page, not one per review.
	followingSet, err := s.viewerFollowingSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	entries := make([]*FeedReview, 0, len(reviews))
	for _, review := range reviews {
		entries = append(entries, &FeedReview{
			Review:      review,
			IsFollowing: followingSet[review.UserID],
		})
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &FeedPage{
		Reviews:      entries,
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalReviews: total,
		HasNextPage:  page < totalPages,
	}, nil
}

func (s *FeedService) viewerFollowingSet(ctx context.Context, viewerID string) (map[uuid.UUID]bool, error) {
	if viewerID == "" {
		return nil, nil
	}

	viewerUUID, err := uuid.Parse(viewerID)
	if err != nil {
		return nil, fmt.Errorf("invalid viewer ID: %w", err)
	}

	ids, err := s.followRepo.FollowingIDs(ctx, viewerUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load following set: %w", err)
	}

	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func emptyFeedPage(page int) *FeedPage {
	return &FeedPage{
		Reviews:      []*FeedReview{},
		CurrentPage:  page,
		TotalPages:   0,
		TotalReviews: 0,
		HasNextPage:  false,
	}
}

// CreateReview validates and persists a new review. Duplicates are
// caught by a pre-check for the friendly path and by the unique
// (user, item) index for the race between check and insert.
func (s *FeedService) CreateReview(ctx context.Context, userID string, req *CreateReviewRequest) (*FeedReview, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	itemUUID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, ErrItemNotFound
	}

	if !validRating(req.Rating) {
		return nil, ErrInvalidRating
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	item, err := s.itemRepo.GetByID(ctx, itemUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	exists, err := s.reviewRepo.ExistsForUserItem(ctx, userUUID, itemUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &models.Review{
		UserID:  userUUID,
		ItemID:  itemUUID,
		Rating:  req.Rating,
		Content: content,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	enriched, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created review: %w", err)
	}
	if enriched == nil {
		return nil, ErrReviewNotFound
	}

	event, err := queue.NewEvent(queue.EventReviewCreated, review.CreatedAt, queue.ReviewEventData{
		ReviewID:  review.ID.String(),
		UserID:    userID,
		ItemID:    req.ItemID,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt.Format("2006-01-02T15:04:05Z"),
	})
	if err == nil {
		if err := s.producer.Publish(ctx, req.ItemID, event); err != nil {
			s.logger.WithError(err).Error("Failed to publish review created event")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"review_id": review.ID,
		"user_id":   userID,
		"item_id":   req.ItemID,
	}).Info("Review created successfully")

	return &FeedReview{Review: enriched, IsFollowing: false}, nil
}

// validRating accepts 0.5 through 5.0 in half-star increments.
func validRating(rating float64) bool {
	if rating < models.RatingMin || rating > models.RatingMax {
		return false
	}
	doubled := rating * 2
	return doubled == math.Trunc(doubled)
}
