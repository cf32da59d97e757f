package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/internal/app/service"
	apperrors "github.com/arteliving/arteliving-backend/internal/errors"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CreateOrderRequest struct {
	RecipientName  string `json:"recipient_name" binding:"required"`
	RecipientPhone string `json:"recipient_phone"`
	AddressLine1   string `json:"address_line1" binding:"required"`
	AddressLine2   string `json:"address_line2"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	Note           string `json:"note"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// CreateOrder checks out the authenticated user's cart
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	order, err := ctrl.orderService.CreateOrder(userID, service.ShippingInfo{
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		PostalCode:     req.PostalCode,
		Note:           req.Note,
	})
	if err != nil {
		ctrl.respondError(c, err, "failed to place order")
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
	})
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListMyOrders returns the authenticated user's order history
// GET /api/v1/orders
func (ctrl *OrderController) ListMyOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	limit := parsePositiveInt(c.DefaultQuery("limit", "20"), 20)
	offset := parsePositiveInt(c.DefaultQuery("offset", "0"), 0)

	orders, err := ctrl.orderService.ListUserOrders(userID, limit, offset)
	if err != nil {
		apperrors.InternalError(c, "failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetMyOrder returns one of the authenticated user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetMyOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetUserOrder(userID, orderID)
	if err != nil {
		ctrl.respondError(c, err, "failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListOrders returns orders across all users (Admin only)
// GET /api/v1/admin/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	filter := repository.OrderFilter{
		Limit:  parsePositiveInt(c.DefaultQuery("limit", "50"), 50),
		Offset: parsePositiveInt(c.DefaultQuery("offset", "0"), 0),
	}
	if v := c.Query("status"); v != "" {
		status := model.OrderStatus(v)
		if !model.ValidOrderStatus(status) {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "unknown order status")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("from"); v != "" {
		if from, err := time.Parse("2006-01-02", v); err == nil {
			filter.From = &from
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := time.Parse("2006-01-02", v); err == nil {
			end := to.Add(24 * time.Hour)
			filter.To = &end
		}
	}

	orders, err := ctrl.orderService.ListOrders(filter)
	if err != nil {
		apperrors.InternalError(c, "failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns any order by ID (Admin only)
// GET /api/v1/admin/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(orderID)
	if err != nil {
		ctrl.respondError(c, err, "failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateStatus moves an order through its lifecycle (Admin only)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	order, err := ctrl.orderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		ctrl.respondError(c, err, "failed to update order status")
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   req.Status,
	})
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (ctrl *OrderController) respondError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "order not found")
	case errors.Is(err, service.ErrEmptyCart):
		apperrors.BadRequest(c, apperrors.CartEmpty, "cart is empty")
	case errors.Is(err, service.ErrShippingIncomplete):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "recipient name and address are required")
	case errors.Is(err, service.ErrInsufficientStock):
		apperrors.Conflict(c, apperrors.CartInsufficientStock, "not enough stock available")
	case errors.Is(err, service.ErrInvalidOrderStatus):
		apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "unknown order status")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "product not found")
	case errors.Is(err, service.ErrVariantRequired), errors.Is(err, service.ErrUnknownVariant):
		apperrors.BadRequest(c, apperrors.CatalogVariantNotFound, "variant selection is invalid")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}
