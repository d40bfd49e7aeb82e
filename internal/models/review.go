package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RatingMin  = 0.5
	RatingMax  = 5.0
	RatingStep = 0.5
)

// Review is immutable after creation; there are no update or delete
// paths. The composite unique index enforces one review per
// (user, item) pair at the storage layer.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_item"`
	ItemID    uuid.UUID `json:"item_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_item"`
	Rating    float64   `json:"rating" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	User User `json:"user" gorm:"foreignKey:UserID"`
	Item Item `json:"item" gorm:"foreignKey:ItemID"`
}

func (Review) TableName() string {
	return "reviews"
}
