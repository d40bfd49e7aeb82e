package services

import (
	"context"
	"time"

	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/CamiloArboledaG/reviewHub/pkg/mediastore"
	"github.com/google/uuid"
)

// Storage interfaces consumed by the service layer. The gorm
// repositories satisfy them in production; tests use in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type FollowStore interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error
	Get(ctx context.Context, followerID, followingID uuid.UUID) (*models.Follow, error)
	GetFollowing(ctx context.Context, userID uuid.UUID) ([]*models.User, error)
	GetFollowers(ctx context.Context, userID uuid.UUID) ([]*models.User, error)
	FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ExistsForUserItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error)
	ListPage(ctx context.Context, itemIDs []uuid.UUID, offset, limit int) ([]*models.Review, error)
	Count(ctx context.Context, itemIDs []uuid.UUID) (int64, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]*models.Category, error)
	IDsBySlugs(ctx context.Context, slugs []string) ([]uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Search(ctx context.Context, categoryID uuid.UUID, search string, offset, limit int) ([]*models.Item, error)
	CountSearch(ctx context.Context, categoryID uuid.UUID, search string) (int64, error)
	IDsByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) ([]uuid.UUID, error)
}

type AvatarStore interface {
	Create(ctx context.Context, avatar *models.Avatar) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Avatar, error)
	List(ctx context.Context, category string) ([]*models.Avatar, error)
	ListDefaults(ctx context.Context) ([]*models.Avatar, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher is satisfied by queue.KafkaProducer.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

// MediaStore is satisfied by mediastore.Store.
type MediaStore interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (*mediastore.UploadResult, error)
	Delete(ctx context.Context, key string) error
}

// SessionRevoker tracks logged-out token ids until their natural
// expiry.
type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
