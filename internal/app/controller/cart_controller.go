package controller

import (
	"errors"
	"net/http"

	"github.com/arteliving/arteliving-backend/internal/app/service"
	apperrors "github.com/arteliving/arteliving-backend/internal/errors"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// GetCart returns the authenticated user's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	items, total, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		apperrors.InternalError(c, "failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
	})
}

// AddItem adds a product (or one of its variants) to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	item, err := ctrl.cartService.AddItem(userID, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		ctrl.respondError(c, err, "failed to add item to cart")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateItem changes the quantity of one cart line
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	item, err := ctrl.cartService.UpdateQuantity(userID, itemID, req.Quantity)
	if err != nil {
		ctrl.respondError(c, err, "failed to update cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveItem removes one cart line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, itemID); err != nil {
		ctrl.respondError(c, err, "failed to remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		apperrors.InternalError(c, "failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

func (ctrl *CartController) respondError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "product not found")
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.CartItemNotFound, "cart item not found")
	case errors.Is(err, service.ErrInsufficientStock):
		apperrors.Conflict(c, apperrors.CartInsufficientStock, "not enough stock available")
	case errors.Is(err, service.ErrInvalidQuantity):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "quantity must be at least 1")
	case errors.Is(err, service.ErrVariantRequired):
		apperrors.BadRequest(c, apperrors.CatalogNoVariants, "variant selection is required")
	case errors.Is(err, service.ErrUnknownVariant):
		apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "variant not found")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}
