package models

import (
	"gorm.io/gorm"
)

// Database migration function
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Trip{},
		&TripStop{},
		&TripActivity{},
		&City{},
		&Activity{},
	)
}

func CreateIndexes(db *gorm.DB) error {
	// Composite indexes for common queries
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trip_stops_trip_order ON trip_stops(trip_id, order_index)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_share_public ON trips(share_code, is_public)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_user_created ON trips(user_id, created_at DESC)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trip_activities_stop_order ON trip_activities(trip_stop_id, order_index)").Error; err != nil {
		return err
	}

	return nil
}
