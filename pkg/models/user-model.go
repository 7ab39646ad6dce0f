package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered traveller account
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Name         string `gorm:"not null" json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`
	AvatarURL    string `json:"avatar_url,omitempty"`

	// User preferences
	HomeCurrency string `gorm:"default:'USD'" json:"home_currency"`

	// Relationships
	Trips []Trip `gorm:"foreignKey:UserID" json:"trips,omitempty"`
}
