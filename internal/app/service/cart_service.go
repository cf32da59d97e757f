package service

import (
	"errors"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrVariantRequired   = errors.New("variant selection is required")
	ErrUnknownVariant    = errors.New("unknown variant for product")
)

type CartService interface {
	GetCart(userID uint) ([]model.CartItem, float64, error)
	AddItem(userID, productID uint, variantID string, quantity int) (*model.CartItem, error)
	UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(userID, itemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetCart(userID uint) ([]model.CartItem, float64, error) {
	items, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, item := range items {
		total += s.unitPrice(&item) * float64(item.Quantity)
	}
	return items, total, nil
}

func (s *cartService) AddItem(userID, productID uint, variantID string, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	stock, err := s.availableStock(product, variantID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindItem(userID, productID, variantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.Quantity+quantity > stock {
			return nil, ErrInsufficientStock
		}
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if quantity > stock {
		return nil, ErrInsufficientStock
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return item, nil
}

func (s *cartService) UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.findOwnedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	stock, err := s.availableStock(product, item.VariantID)
	if err != nil {
		return nil, err
	}
	if quantity > stock {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, itemID uint) error {
	item, err := s.findOwnedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(item.ID)
}

func (s *cartService) ClearCart(userID uint) error {
	return s.cartRepo.Clear(userID)
}

func (s *cartService) findOwnedItem(userID, itemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

// availableStock resolves the purchasable stock for a product or one of its
// variants. Variant products must be bought through a concrete variant.
func (s *cartService) availableStock(product *model.Product, variantID string) (int, error) {
	if !product.HasVariants {
		return product.Inventory, nil
	}
	if variantID == "" {
		return 0, ErrVariantRequired
	}
	for _, row := range product.Variants {
		if row.VariantID == variantID {
			return row.Inventory, nil
		}
	}
	return 0, ErrUnknownVariant
}

func (s *cartService) unitPrice(item *model.CartItem) float64 {
	if item.Product.ID == 0 {
		return 0
	}
	if item.Product.HasVariants && item.VariantID != "" {
		for _, row := range item.Product.Variants {
			if row.VariantID == item.VariantID {
				return row.Price
			}
		}
	}
	return item.Product.Price
}
