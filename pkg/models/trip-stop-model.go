package models

import (
	"time"

	"gorm.io/gorm"
)

// TripStop represents one city visited within a trip.
// OrderIndex establishes the display order among the stops of a trip;
// values are unique per trip but not required to be contiguous.
type TripStop struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	TripID uint `gorm:"not null;index" json:"trip_id"`
	Trip   Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`

	// CityID references the read-only city catalog; CityName is always
	// populated even when the stop was entered free-form.
	CityID   *uint  `json:"city_id,omitempty"`
	City     *City  `gorm:"foreignKey:CityID" json:"city,omitempty"`
	CityName string `gorm:"not null" json:"city_name"`
	Country  string `json:"country,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	OrderIndex int `gorm:"not null;default:0" json:"order_index"`

	TransportCost     float64 `gorm:"default:0" json:"transport_cost"`
	AccommodationCost float64 `gorm:"default:0" json:"accommodation_cost"`
	Notes             string  `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Activities []TripActivity `gorm:"foreignKey:TripStopID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
}
