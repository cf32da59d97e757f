package service

import (
	"errors"
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrShippingIncomplete = errors.New("recipient name and address are required")
)

// OrderNotifier receives newly placed orders. The websocket hub implements it
// to push live updates to the back-office.
type OrderNotifier interface {
	NotifyNewOrder(order *model.Order)
}

type ShippingInfo struct {
	RecipientName  string
	RecipientPhone string
	AddressLine1   string
	AddressLine2   string
	City           string
	PostalCode     string
	Note           string
}

type OrderService interface {
	CreateOrder(userID uint, shipping ShippingInfo) (*model.Order, error)
	GetOrder(id uint) (*model.Order, error)
	GetUserOrder(userID, orderID uint) (*model.Order, error)
	ListUserOrders(userID uint, limit, offset int) ([]model.Order, error)
	ListOrders(filter repository.OrderFilter) ([]model.Order, error)
	UpdateStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	notifier    OrderNotifier
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	notifier OrderNotifier,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		notifier:    notifier,
	}
}

// CreateOrder turns the user's cart into an order. Every line is price- and
// stock-checked against the current catalog, item rows snapshot the product
// data at purchase time, then stock is decremented and the cart cleared.
func (s *orderService) CreateOrder(userID uint, shipping ShippingInfo) (*model.Order, error) {
	if shipping.RecipientName == "" || shipping.AddressLine1 == "" {
		return nil, ErrShippingIncomplete
	}

	cartItems, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	order := &model.Order{
		UserID:         userID,
		Status:         model.OrderStatusPending,
		RecipientName:  shipping.RecipientName,
		RecipientPhone: shipping.RecipientPhone,
		AddressLine1:   shipping.AddressLine1,
		AddressLine2:   shipping.AddressLine2,
		City:           shipping.City,
		PostalCode:     shipping.PostalCode,
		Note:           shipping.Note,
	}

	for _, ci := range cartItems {
		product, err := s.productRepo.FindByID(ci.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}

		line, err := buildOrderItem(product, ci.VariantID, ci.Quantity)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *line)
		order.Total += line.Subtotal
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	for _, line := range order.Items {
		if err := s.productRepo.AdjustInventory(line.ProductID, -line.Quantity); err != nil {
			logger.Error("Failed to decrement product inventory", err, map[string]interface{}{
				"order_id":   order.ID,
				"product_id": line.ProductID,
			})
		}
		if line.VariantID != "" {
			if err := s.productRepo.AdjustVariantInventory(line.ProductID, line.VariantID, -line.Quantity); err != nil {
				logger.Error("Failed to decrement variant inventory", err, map[string]interface{}{
					"order_id":   order.ID,
					"variant_id": line.VariantID,
				})
			}
		}
		if err := s.productRepo.AddSoldCount(line.ProductID, line.Quantity); err != nil {
			logger.Error("Failed to bump sold count", err, map[string]interface{}{
				"product_id": line.ProductID,
			})
		}
	}

	if err := s.cartRepo.Clear(userID); err != nil {
		logger.Error("Failed to clear cart after order", err, map[string]interface{}{
			"user_id": userID,
		})
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":   order.ID,
		"user_id":    userID,
		"total":      order.Total,
		"item_count": len(order.Items),
	})

	if s.notifier != nil {
		s.notifier.NotifyNewOrder(order)
	}
	return order, nil
}

func (s *orderService) GetOrder(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetUserOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListUserOrders(userID uint, limit, offset int) ([]model.Order, error) {
	return s.orderRepo.FindWithFilter(repository.OrderFilter{
		UserID: &userID,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *orderService) ListOrders(filter repository.OrderFilter) ([]model.Order, error) {
	return s.orderRepo.FindWithFilter(filter)
}

// UpdateStatus moves an order through its lifecycle. Cancelling puts the
// reserved stock back and rolls the sold counters down.
func (s *orderService) UpdateStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return order, nil
	}

	if status == model.OrderStatusCancelled && order.Status != model.OrderStatusCancelled {
		s.restoreStock(order)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return order, nil
}

func (s *orderService) restoreStock(order *model.Order) {
	for _, line := range order.Items {
		if err := s.productRepo.AdjustInventory(line.ProductID, line.Quantity); err != nil {
			logger.Error("Failed to restore product inventory", err, map[string]interface{}{
				"order_id":   order.ID,
				"product_id": line.ProductID,
			})
		}
		if line.VariantID != "" {
			if err := s.productRepo.AdjustVariantInventory(line.ProductID, line.VariantID, line.Quantity); err != nil {
				logger.Error("Failed to restore variant inventory", err, map[string]interface{}{
					"order_id":   order.ID,
					"variant_id": line.VariantID,
				})
			}
		}
		if err := s.productRepo.AddSoldCount(line.ProductID, -line.Quantity); err != nil {
			logger.Error("Failed to roll back sold count", err, map[string]interface{}{
				"product_id": line.ProductID,
			})
		}
	}
}

func buildOrderItem(product *model.Product, variantID string, quantity int) (*model.OrderItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	line := &model.OrderItem{
		ProductID:   product.ID,
		VariantID:   variantID,
		ProductName: product.Name,
		SKU:         product.SKU,
		Color:       product.Color,
		UnitPrice:   product.Price,
		Quantity:    quantity,
	}

	if product.HasVariants {
		if variantID == "" {
			return nil, ErrVariantRequired
		}
		var found *model.ProductVariant
		for i := range product.Variants {
			if product.Variants[i].VariantID == variantID {
				found = &product.Variants[i]
				break
			}
		}
		if found == nil {
			return nil, ErrUnknownVariant
		}
		if found.Inventory < quantity {
			return nil, ErrInsufficientStock
		}
		line.SKU = found.SKU
		line.Color = found.Color
		line.Size = found.Size
		line.UnitPrice = found.Price
	} else if product.Inventory < quantity {
		return nil, ErrInsufficientStock
	}

	line.Subtotal = line.UnitPrice * float64(quantity)
	return line, nil
}
