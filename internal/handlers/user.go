package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloArboledaG/reviewHub/internal/middleware"
	"github.com/CamiloArboledaG/reviewHub/internal/services"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
)

type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func (h *UserHandler) Follow(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	targetID := c.Param("id")

	if err := h.userService.Follow(c.Request.Context(), actorID, targetID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Followed successfully"})
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	targetID := c.Param("id")

	if err := h.userService.Unfollow(c.Request.Context(), actorID, targetID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

func (h *UserHandler) GetFollowing(c *gin.Context) {
	following, err := h.userService.GetFollowing(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *UserHandler) GetFollowers(c *gin.Context) {
	followers, err := h.userService.GetFollowers(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers})
}
