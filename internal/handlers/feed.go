package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloArboledaG/reviewHub/internal/middleware"
	"github.com/CamiloArboledaG/reviewHub/internal/services"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
)

type FeedHandler struct {
	feedService *services.FeedService
	logger      *logger.Logger
}

func NewFeedHandler(feedService *services.FeedService, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		logger:      logger,
	}
}

// GetFeed serves the review feed. Anonymous viewers get the same page
// with every isFollowing flag false; `category` may repeat for a
// multi-category filter.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	viewerID := middleware.GetUserID(c)
	categories := c.QueryArray("category")
	page, limit := parsePageQuery(c)

	feed, err := h.feedService.GetFeed(c.Request.Context(), viewerID, categories, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *FeedHandler) CreateReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.feedService.CreateReview(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}
