package service

import (
	"errors"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"gorm.io/gorm"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

type WishlistService interface {
	GetWishlist(userID uint) ([]model.WishlistItem, error)
	// Toggle adds the product if missing and removes it if present. The
	// returned bool reports whether the product is wishlisted afterwards.
	Toggle(userID, productID uint) (bool, error)
	Remove(userID, productID uint) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetWishlist(userID uint) ([]model.WishlistItem, error) {
	return s.wishlistRepo.FindByUser(userID)
}

func (s *wishlistService) Toggle(userID, productID uint) (bool, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductNotFound
		}
		return false, err
	}

	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.wishlistRepo.Delete(userID, productID); err != nil {
			return true, err
		}
		return false, nil
	}

	item := &model.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.wishlistRepo.Create(item); err != nil {
		return false, err
	}
	return true, nil
}

func (s *wishlistService) Remove(userID, productID uint) error {
	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrWishlistItemNotFound
	}
	return s.wishlistRepo.Delete(userID, productID)
}
