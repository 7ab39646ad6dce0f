package db

import (
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
	"gorm.io/gorm"
)

// Repository provides database operations for specific models
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *DB {
	return r.db
}

// User repository methods
func (r *Repository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *Repository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *Repository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *Repository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *Repository) DeleteUser(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// Trip repository methods
func (r *Repository) CreateTrip(trip *models.Trip) error {
	return r.db.Create(trip).Error
}

// GetTripByID loads a trip with its stops ordered by order_index and each
// stop's activities ordered by order_index.
func (r *Repository) GetTripByID(id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("trip_stops.order_index ASC")
		}).
		Preload("Stops.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("trip_activities.order_index ASC")
		}).
		First(&trip, id).Error
	return &trip, err
}

// GetTripRecordByID loads only the trip row, without its stops.
// Ownership checks and flows that fetch stops separately use this.
func (r *Repository) GetTripRecordByID(id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.First(&trip, id).Error
	return &trip, err
}

func (r *Repository) GetTripsByUserID(userID uint, limit, offset int) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&trips).Error
	return trips, err
}

func (r *Repository) GetTripsCount(userID uint) (int, error) {
	var count int64
	err := r.db.Model(&models.Trip{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}

// GetTripByShareCode resolves a share link: the trip must be public and
// carry exactly this code.
func (r *Repository) GetTripByShareCode(code string) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.
		Where("share_code = ? AND is_public = ?", code, true).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("trip_stops.order_index ASC")
		}).
		Preload("Stops.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("trip_activities.order_index ASC")
		}).
		First(&trip).Error
	return &trip, err
}

func (r *Repository) UpdateTrip(trip *models.Trip) error {
	return r.db.Save(trip).Error
}

// DeleteTrip removes a trip together with its stops and their activities.
func (r *Repository) DeleteTrip(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var stopIDs []uint
		if err := tx.Model(&models.TripStop{}).Where("trip_id = ?", id).Pluck("id", &stopIDs).Error; err != nil {
			return err
		}
		if len(stopIDs) > 0 {
			if err := tx.Where("trip_stop_id IN ?", stopIDs).Delete(&models.TripActivity{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("trip_id = ?", id).Delete(&models.TripStop{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Trip{}, id).Error
	})
}

// TripStop repository methods
func (r *Repository) CreateStop(stop *models.TripStop) error {
	return r.db.Create(stop).Error
}

func (r *Repository) GetStopByID(id uint) (*models.TripStop, error) {
	var stop models.TripStop
	err := r.db.
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("trip_activities.order_index ASC")
		}).
		First(&stop, id).Error
	return &stop, err
}

func (r *Repository) GetStopsByTripID(tripID uint) ([]models.TripStop, error) {
	var stops []models.TripStop
	err := r.db.Where("trip_id = ?", tripID).
		Order("order_index ASC").
		Find(&stops).Error
	return stops, err
}

// GetNextStopOrderIndex returns the order_index a newly appended stop
// should receive.
func (r *Repository) GetNextStopOrderIndex(tripID uint) (int, error) {
	var max *int
	err := r.db.Model(&models.TripStop{}).
		Where("trip_id = ?", tripID).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (r *Repository) UpdateStop(stop *models.TripStop) error {
	return r.db.Save(stop).Error
}

// UpdateStopOrder persists a single stop's order_index without touching
// the rest of the record.
func (r *Repository) UpdateStopOrder(stopID uint, orderIndex int) error {
	return r.db.Model(&models.TripStop{}).
		Where("id = ?", stopID).
		Update("order_index", orderIndex).Error
}

func (r *Repository) DeleteStop(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_stop_id = ?", id).Delete(&models.TripActivity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TripStop{}, id).Error
	})
}

// TripActivity repository methods
func (r *Repository) CreateActivity(activity *models.TripActivity) error {
	return r.db.Create(activity).Error
}

func (r *Repository) GetActivityByID(id uint) (*models.TripActivity, error) {
	var activity models.TripActivity
	err := r.db.First(&activity, id).Error
	return &activity, err
}

func (r *Repository) GetActivitiesByStopID(stopID uint) ([]models.TripActivity, error) {
	var activities []models.TripActivity
	err := r.db.Where("trip_stop_id = ?", stopID).
		Order("order_index ASC").
		Find(&activities).Error
	return activities, err
}

func (r *Repository) GetNextActivityOrderIndex(stopID uint) (int, error) {
	var max *int
	err := r.db.Model(&models.TripActivity{}).
		Where("trip_stop_id = ?", stopID).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (r *Repository) UpdateActivity(activity *models.TripActivity) error {
	return r.db.Save(activity).Error
}

func (r *Repository) DeleteActivity(id uint) error {
	return r.db.Delete(&models.TripActivity{}, id).Error
}

// City catalog methods (read-only reference data)
func (r *Repository) GetCities(search string, limit, offset int) ([]models.City, error) {
	var cities []models.City
	query := r.db.Model(&models.City{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR country LIKE ?", like, like)
	}
	err := query.Order("popularity DESC").
		Limit(limit).
		Offset(offset).
		Find(&cities).Error
	return cities, err
}

func (r *Repository) GetCitiesCount(search string) (int, error) {
	var count int64
	query := r.db.Model(&models.City{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR country LIKE ?", like, like)
	}
	err := query.Count(&count).Error
	return int(count), err
}

func (r *Repository) GetCityByID(id uint) (*models.City, error) {
	var city models.City
	err := r.db.First(&city, id).Error
	return &city, err
}

// Activity catalog methods (read-only reference data)
func (r *Repository) GetCatalogActivities(search, category string, limit, offset int) ([]models.Activity, error) {
	var activities []models.Activity
	query := r.db.Model(&models.Activity{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&activities).Error
	return activities, err
}

func (r *Repository) GetCatalogActivitiesCount(search, category string) (int, error) {
	var count int64
	query := r.db.Model(&models.Activity{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Count(&count).Error
	return int(count), err
}

func (r *Repository) GetCatalogActivityByID(id uint) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.First(&activity, id).Error
	return &activity, err
}
