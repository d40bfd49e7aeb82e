package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CamiloArboledaG/reviewHub/internal/services"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
)

const uploadFolder = "reviewhub/items"

// UploadHandler is a thin passthrough to the image host; the returned
// publicId is the object key needed to delete the image later.
type UploadHandler struct {
	media  services.MediaStore
	logger *logger.Logger
}

func NewUploadHandler(media services.MediaStore, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{
		media:  media,
		logger: logger,
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	data, contentType, err := readUpload(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.media.Upload(c.Request.Context(), data, contentType, uploadFolder)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imageUrl": result.URL,
		"publicId": result.Key,
	})
}

// Delete removes a hosted image by its public id. The id contains
// slashes, so the route binds it as a wildcard and the value arrives
// URL-encoded.
func (h *UploadHandler) Delete(c *gin.Context) {
	publicID := strings.TrimPrefix(c.Param("publicId"), "/")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Public ID is required"})
		return
	}

	if decoded, err := url.PathUnescape(publicID); err == nil {
		publicID = decoded
	}

	if err := h.media.Delete(c.Request.Context(), publicID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted successfully"})
}
