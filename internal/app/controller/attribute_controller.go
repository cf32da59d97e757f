package controller

import (
	"errors"
	"net/http"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/service"
	apperrors "github.com/arteliving/arteliving-backend/internal/errors"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AttributeController struct {
	attributeService service.AttributeService
}

func NewAttributeController(attributeService service.AttributeService) *AttributeController {
	return &AttributeController{
		attributeService: attributeService,
	}
}

type CreateAttributeValueRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code"`
}

// ListKinds returns the attribute kinds the registry supports
// GET /api/v1/attributes
func (ctrl *AttributeController) ListKinds(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"kinds": catalog.Kinds()})
}

// ListValues returns the registered values of one attribute kind
// GET /api/v1/attributes/:kind
func (ctrl *AttributeController) ListValues(c *gin.Context) {
	values, err := ctrl.attributeService.ListValues(catalog.Kind(c.Param("kind")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidAttributeKind) {
			apperrors.BadRequest(c, apperrors.CatalogInvalidAttribute, "unknown attribute kind")
			return
		}
		apperrors.InternalError(c, "failed to fetch attribute values")
		return
	}

	c.JSON(http.StatusOK, gin.H{"values": values})
}

// CreateValue registers an attribute value (Admin only). Creating an existing
// value returns the stored one unchanged.
// POST /api/v1/admin/attributes/:kind
func (ctrl *AttributeController) CreateValue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateAttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	value, err := ctrl.attributeService.CreateValue(catalog.Kind(c.Param("kind")), req.Name, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAttributeKind) {
			apperrors.BadRequest(c, apperrors.CatalogInvalidAttribute, "unknown attribute kind")
			return
		}
		log.Error("Failed to create attribute value", err, nil)
		apperrors.InternalError(c, "failed to create attribute value")
		return
	}
	if value == nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "name must not be blank")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"value": value})
}
