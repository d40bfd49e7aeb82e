package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"not null"`
	Username  string     `json:"username" gorm:"uniqueIndex;not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"`
	AvatarID  *uuid.UUID `json:"avatar_id" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Avatar *Avatar `json:"avatar,omitempty" gorm:"foreignKey:AvatarID"`
}

// Follow is a single directed edge; the followers list of a user is the
// reverse join over this table, so both directions always agree.
type Follow struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FollowerID  uuid.UUID `json:"follower_id" gorm:"type:uuid;not null;uniqueIndex:idx_follower_following"`
	FollowingID uuid.UUID `json:"following_id" gorm:"type:uuid;not null;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `json:"-" gorm:"foreignKey:FollowerID"`
	Following User `json:"-" gorm:"foreignKey:FollowingID"`
}

type Avatar struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	ImageURL  string    `json:"image_url" gorm:"not null"`
	PublicID  string    `json:"public_id" gorm:"not null"`
	IsDefault bool      `json:"is_default" gorm:"default:false"`
	Category  string    `json:"category" gorm:"default:custom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	AvatarCategoryHuman    = "human"
	AvatarCategoryAnimal   = "animal"
	AvatarCategoryFantasy  = "fantasy"
	AvatarCategoryAbstract = "abstract"
	AvatarCategoryCustom   = "custom"
)

// UserSummary is the denormalized author shape embedded in feed entries
// and following lists.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Avatar   *Avatar   `json:"avatar,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}

func (User) TableName() string {
	return "users"
}

func (Follow) TableName() string {
	return "follows"
}

func (Avatar) TableName() string {
	return "avatars"
}
