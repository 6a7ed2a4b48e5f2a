package db

import (
	"fmt"
	"log"

	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Image{},
		&model.Category{},
		&model.Material{},
		&model.Color{},
		&model.Size{},
		&model.AdditionalService{},
		&model.Product{},
		&model.ProductVariant{},
		&model.DiscountCode{},
		&model.CartSession{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.ClientReview{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}
