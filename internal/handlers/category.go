package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloArboledaG/reviewHub/internal/services"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
)

type CategoryHandler struct {
	categoryStore services.CategoryStore
	logger        *logger.Logger
}

func NewCategoryHandler(categoryStore services.CategoryStore, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryStore: categoryStore,
		logger:        logger,
	}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryStore.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
