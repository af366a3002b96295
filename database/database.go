// File: /database/database.go
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"localevents-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite index backing the main search path: date bucket range scan
	// narrowed by category.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_date_category ON events(event_date, category)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events date/category: %v\n", err)
	}

	// The bounding box turns into two independent range predicates.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_lat_lng ON events(latitude, longitude)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events coordinates: %v\n", err)
	}

	return nil
}

// SeedData populates the database with initial data for development/testing.
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testUsers := []models.User{
		{
			ID:       "user-1",
			Username: "demo_admin",
			Email:    "admin@example.com",
			Password: "$2a$10$dummy", // replace with a real hash before using
			Role:     models.RoleAdmin,
		},
		{
			ID:       "user-2",
			Username: "demo_user",
			Email:    "demo@example.com",
			Password: "$2a$10$dummy",
			Role:     models.RoleUser,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Username, err)
		}
	}

	testEvents := []models.Event{
		{
			ID:          "event-1",
			Name:        "Jazz Night Downtown",
			Location:    "Blue Note Club",
			Latitude:    47.4979,
			Longitude:   19.0402,
			Description: "An evening of live jazz with local bands.",
			Link:        "https://example.com/jazz-night",
			Paid:        true,
			Category:    models.CategoryMusic,
			UserID:      "user-2",
			UserName:    "demo_user",
			UserImage:   "/uploads/demo.png",
			EventDate:   time.Now().AddDate(0, 0, 3),
		},
		{
			ID:          "event-2",
			Name:        "Go Meetup",
			Location:    "Tech Hub",
			Latitude:    47.5070,
			Longitude:   19.0460,
			Description: "Monthly meetup for Go developers.",
			Link:        "https://example.com/go-meetup",
			Paid:        false,
			Category:    models.CategoryTech,
			UserID:      "user-2",
			UserName:    "demo_user",
			UserImage:   "/uploads/demo.png",
			EventDate:   time.Now().AddDate(0, 0, 7),
		},
	}

	for _, event := range testEvents {
		if err := db.Create(&event).Error; err != nil {
			fmt.Printf("Warning: Could not create test event %s: %v\n", event.Name, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
