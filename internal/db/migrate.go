package db

import (
	"github.com/makeey/notsofluffy.pl-sub000/internal/app/model"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
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
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
