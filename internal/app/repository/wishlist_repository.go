package repository

import (
	"github.com/arteliving/arteliving-backend/internal/app/model"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	FindByUser(userID uint) ([]model.WishlistItem, error)
	Exists(userID, productID uint) (bool, error)
	Create(item *model.WishlistItem) error
	Delete(userID, productID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) FindByUser(userID uint) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) Exists(userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	return r.db.Create(item).Error
}

func (r *wishlistRepository) Delete(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{}).Error
}
