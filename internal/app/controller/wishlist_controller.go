package controller

import (
	"errors"
	"net/http"

	"github.com/arteliving/arteliving-backend/internal/app/service"
	apperrors "github.com/arteliving/arteliving-backend/internal/errors"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type WishlistToggleRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist returns the authenticated user's wishlist
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	items, err := ctrl.wishlistService.GetWishlist(userID)
	if err != nil {
		apperrors.InternalError(c, "failed to fetch wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Toggle flips a product's wishlisted state
// POST /api/v1/wishlist/toggle
func (ctrl *WishlistController) Toggle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req WishlistToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	wishlisted, err := ctrl.wishlistService.Toggle(userID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "product not found")
			return
		}
		apperrors.InternalError(c, "failed to update wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlisted": wishlisted})
}

// Remove deletes a product from the wishlist
// DELETE /api/v1/wishlist/:id
func (ctrl *WishlistController) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.wishlistService.Remove(userID, productID); err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "wishlist item not found")
			return
		}
		apperrors.InternalError(c, "failed to remove wishlist item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}
