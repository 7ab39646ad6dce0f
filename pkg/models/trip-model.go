package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip represents a multi-city journey planned by a user.
// StartDate and EndDate are calendar dates (no meaningful time component);
// both nil while the trip is still being sketched out.
type Trip struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Name          string     `gorm:"not null" json:"name"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`

	// Sharing: a trip is reachable without authentication only while
	// IsPublic is true and ShareCode is set.
	IsPublic  bool   `gorm:"default:false;index" json:"is_public"`
	ShareCode string `gorm:"index" json:"share_code,omitempty"`

	// TotalBudget is the user-declared spending ceiling, not a derived figure.
	TotalBudget float64 `gorm:"default:0" json:"total_budget"`

	// Relationships
	Stops []TripStop `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"stops,omitempty"`
}
