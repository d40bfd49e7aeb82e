package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	ItemStatusActive  = "active"
	ItemStatusPending = "pending"
)

type Item struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title         string     `json:"title" gorm:"not null"`
	Description   string     `json:"description" gorm:"type:text;not null"`
	ImageURL      string     `json:"image_url"`
	CategoryID    uuid.UUID  `json:"category_id" gorm:"type:uuid;not null;index"`
	Status        string     `json:"status" gorm:"default:active"`
	SuggestedByID *uuid.UUID `json:"suggested_by,omitempty" gorm:"type:uuid"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Category Category `json:"category" gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string {
	return "categories"
}

func (Item) TableName() string {
	return "items"
}
