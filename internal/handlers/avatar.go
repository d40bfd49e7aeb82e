package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloArboledaG/reviewHub/internal/services"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
)

type AvatarHandler struct {
	avatarService *services.AvatarService
	logger        *logger.Logger
}

func NewAvatarHandler(avatarService *services.AvatarService, logger *logger.Logger) *AvatarHandler {
	return &AvatarHandler{
		avatarService: avatarService,
		logger:        logger,
	}
}

func (h *AvatarHandler) List(c *gin.Context) {
	avatars, err := h.avatarService.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, avatars)
}

func (h *AvatarHandler) ListDefaults(c *gin.Context) {
	avatars, err := h.avatarService.ListDefaults(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, avatars)
}

func (h *AvatarHandler) GetByID(c *gin.Context) {
	avatar, err := h.avatarService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, avatar)
}

func (h *AvatarHandler) Create(c *gin.Context) {
	var req services.CreateAvatarRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return
	}

	image, contentType, err := readUpload(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	avatar, err := h.avatarService.Create(c.Request.Context(), &req, image, contentType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, avatar)
}

func (h *AvatarHandler) Delete(c *gin.Context) {
	if err := h.avatarService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Avatar deleted successfully"})
}
