package models

import (
	"time"

	"gorm.io/gorm"
)

// TripActivity is a plannable action attached to a stop, either picked
// from the activity catalog or entered by hand (IsCustom).
type TripActivity struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	TripStopID uint     `gorm:"not null;index" json:"trip_stop_id"`
	TripStop   TripStop `gorm:"foreignKey:TripStopID" json:"trip_stop,omitempty"`

	// ActivityID references the catalog entry this was sourced from, nil
	// for custom activities.
	ActivityID *uint     `json:"activity_id,omitempty"`
	Activity   *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	DurationHours float64    `gorm:"default:0" json:"duration_hours"`
	EstimatedCost float64    `gorm:"default:0" json:"estimated_cost"`
	OrderIndex    int        `gorm:"not null;default:0" json:"order_index"`
	Category      string     `json:"category,omitempty"` // e.g. "Food", "Adventure", "Sightseeing"
	IsCustom      bool       `gorm:"default:false" json:"is_custom"`
}
