package mediastore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CamiloArboledaG/reviewHub/internal/config"
)

func TestNewStoreRequiresConfig(t *testing.T) {
	_, err := NewStore(context.Background(), &config.MediaConfig{})
	assert.Error(t, err)

	_, err = NewStore(context.Background(), &config.MediaConfig{
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "images",
	})
	assert.Error(t, err, "public URL is mandatory")
}

func TestUploadRejectsBeforeNetwork(t *testing.T) {
	store := &Store{bucket: "images", publicURL: "https://img.example.com"}

	_, err := store.Upload(context.Background(), nil, "image/png", "reviewhub/items")
	assert.ErrorIs(t, err, ErrEmptyUpload)

	_, err = store.Upload(context.Background(), []byte("hello world"), "text/plain", "reviewhub/items")
	assert.ErrorIs(t, err, ErrInvalidImageType)
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		ext         string
		ok          bool
	}{
		{"image/jpeg", ".jpg", true},
		{"image/png", ".png", true},
		{"image/webp", ".webp", true},
		{"image/gif", ".gif", true},
		{"application/pdf", "", false},
		{"text/html", "", false},
	}

	for _, tt := range tests {
		ext, ok := extensionFor(tt.contentType)
		assert.Equal(t, tt.ok, ok, tt.contentType)
		assert.Equal(t, tt.ext, ext, tt.contentType)
	}
}
