package db

import (
	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Subcategory{},
		&model.AttributeValue{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Banner{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Setting{},
		&model.RevenueSnapshot{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedSettings(); err != nil {
		logger.Error("Failed to seed default settings", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedSettings inserts the settings the storefront expects to exist.
func seedSettings() error {
	defaults := map[string]string{
		"store_name":              "Arte Living",
		"currency":                "EUR",
		"free_shipping_threshold": "150",
	}

	for key, value := range defaults {
		var count int64
		if err := DB.Model(&model.Setting{}).Where("key = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&model.Setting{Key: key, Value: value}).Error; err != nil {
			return err
		}
	}

	logger.Info("Default settings ensured", map[string]interface{}{
		"keys": len(defaults),
	})
	return nil
}
