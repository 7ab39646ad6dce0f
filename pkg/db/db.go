package db

import (
	"context"
	"fmt"
	"time"

	"github.com/MANIXH-Z8/GlobalTrotter/pkg/config"
	"github.com/MANIXH-Z8/GlobalTrotter/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the gorm.DB instance with additional functionality
type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

// New creates a new database connection
func New(cfg *config.DatabaseConfig) (*DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	// Configure GORM
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	// Open database connection
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

// Migrate runs database migrations
func (db *DB) Migrate() error {
	if err := models.AutoMigrate(db.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := models.CreateIndexes(db.DB); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// SeedInitialData seeds the city and activity catalogs
func (db *DB) SeedInitialData() error {
	cities := []models.City{
		{Name: "Paris", Country: "France", Description: "Capital of France, museums and cafés", CostIndex: 78, Popularity: 98},
		{Name: "Tokyo", Country: "Japan", Description: "Dense, modern and endlessly walkable", CostIndex: 72, Popularity: 95},
		{Name: "Rome", Country: "Italy", Description: "Ancient ruins and modern life side by side", CostIndex: 65, Popularity: 92},
		{Name: "Barcelona", Country: "Spain", Description: "Gaudí, beaches and late dinners", CostIndex: 60, Popularity: 90},
		{Name: "Bangkok", Country: "Thailand", Description: "Street food capital of the world", CostIndex: 35, Popularity: 88},
		{Name: "New York", Country: "United States", Description: "The city that never sleeps", CostIndex: 92, Popularity: 96},
		{Name: "Lisbon", Country: "Portugal", Description: "Hills, trams and pastel de nata", CostIndex: 52, Popularity: 85},
		{Name: "Reykjavik", Country: "Iceland", Description: "Gateway to glaciers and hot springs", CostIndex: 95, Popularity: 70},
	}

	for _, city := range cities {
		var existing models.City
		result := db.Where("name = ? AND country = ?", city.Name, city.Country).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := db.Create(&city).Error; err != nil {
				return fmt.Errorf("failed to seed city %s: %w", city.Name, err)
			}
		}
	}

	activities := []models.Activity{
		{Name: "Louvre Museum", Category: "Culture", Description: "World's largest art museum", DurationHours: 4, AverageCost: 22},
		{Name: "Seine River Cruise", Category: "Sightseeing", Description: "One-hour boat tour past the landmarks", DurationHours: 1, AverageCost: 18},
		{Name: "Tsukiji Food Walk", Category: "Food", Description: "Guided tasting through the outer market", DurationHours: 3, AverageCost: 60},
		{Name: "Colosseum Tour", Category: "Culture", Description: "Skip-the-line guided tour", DurationHours: 2.5, AverageCost: 35},
		{Name: "Sagrada Familia", Category: "Sightseeing", Description: "Gaudí's unfinished basilica", DurationHours: 2, AverageCost: 26},
		{Name: "Thai Cooking Class", Category: "Food", Description: "Market visit plus four-dish class", DurationHours: 4, AverageCost: 40},
		{Name: "Broadway Show", Category: "Entertainment", Description: "Evening performance, orchestra seats", DurationHours: 3, AverageCost: 120},
		{Name: "Golden Circle Day Trip", Category: "Adventure", Description: "Geysir, Gullfoss and Þingvellir", DurationHours: 8, AverageCost: 90},
		{Name: "Fado Night", Category: "Entertainment", Description: "Traditional music with dinner", DurationHours: 3, AverageCost: 55},
		{Name: "Central Park Bike Ride", Category: "Adventure", Description: "Self-guided loop, rental included", DurationHours: 2, AverageCost: 25},
	}

	for _, activity := range activities {
		var existing models.Activity
		result := db.Where("name = ?", activity.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := db.Create(&activity).Error; err != nil {
				return fmt.Errorf("failed to seed activity %s: %w", activity.Name, err)
			}
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

// Transaction executes a function within a database transaction
func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}
