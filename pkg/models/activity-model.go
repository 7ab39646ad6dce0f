package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity is a catalog entry travellers can add to a stop. Like City it
// is read-only reference data.
type Activity struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CityID *uint `gorm:"index" json:"city_id,omitempty"`
	City   *City `gorm:"foreignKey:CityID" json:"city,omitempty"`

	Name          string  `gorm:"not null;index" json:"name"`
	Description   string  `gorm:"type:text" json:"description,omitempty"`
	Category      string  `gorm:"index" json:"category,omitempty"`
	DurationHours float64 `gorm:"default:0" json:"duration_hours"`
	AverageCost   float64 `gorm:"default:0" json:"average_cost"`
	ImageURL      string  `json:"image_url,omitempty"`
}
