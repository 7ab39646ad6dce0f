package models

import (
	"time"

	"gorm.io/gorm"
)

// City is read-only reference data the trip builder consults when adding
// stops. Cities never own trip data.
type City struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string  `gorm:"not null;index" json:"name"`
	Country     string  `gorm:"not null;index" json:"country"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	CostIndex   float64 `gorm:"default:0" json:"cost_index"` // relative daily cost, 0-100
	Popularity  int     `gorm:"default:0" json:"popularity"`
}
