package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CamiloArboledaG/reviewHub/internal/services"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/CamiloArboledaG/reviewHub/pkg/mediastore"
)

// respondError translates service errors to the HTTP taxonomy:
// validation and conflicts 400, bad credentials 401, missing resources
// 404, anything unexpected 500 with the cause logged server-side only.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case services.IsConflict(err) || services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, mediastore.ErrInvalidImageType) || errors.Is(err, mediastore.ErrEmptyUpload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parsePageQuery reads page/limit, leaving zero values for anything
// absent or non-numeric so the service applies its defaults.
func parsePageQuery(c *gin.Context) (int, int) {
	page := 0
	limit := 0

	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	return page, limit
}

// readUpload loads a multipart image into memory, bounding its size.
func readUpload(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	if fileHeader.Size > mediastore.MaxImageSizeBytes {
		return nil, "", errors.New("file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, mediastore.MaxImageSizeBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > mediastore.MaxImageSizeBytes {
		return nil, "", errors.New("file too large")
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}
