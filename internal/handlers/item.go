package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloArboledaG/reviewHub/internal/middleware"
	"github.com/CamiloArboledaG/reviewHub/internal/services"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
)

type ItemHandler struct {
	itemService *services.ItemService
	logger      *logger.Logger
}

func NewItemHandler(itemService *services.ItemService, logger *logger.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger,
	}
}

func (h *ItemHandler) Search(c *gin.Context) {
	categoryID := c.Query("category")
	if categoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category is required"})
		return
	}

	search := c.Query("search")
	page, limit := parsePageQuery(c)

	items, err := h.itemService.Search(c.Request.Context(), categoryID, search, page, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) GetByID(c *gin.Context) {
	item, err := h.itemService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create accepts a multipart form with an optional image part.
func (h *ItemHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req services.CreateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var image []byte
	var contentType string
	if fileHeader, err := c.FormFile("image"); err == nil {
		image, contentType, err = readUpload(fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	item, err := h.itemService.Create(c.Request.Context(), userID, &req, image, contentType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}
