package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arteliving/arteliving-backend/internal/app/service"
	apperrors "github.com/arteliving/arteliving-backend/internal/errors"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url"`
	Position int    `json:"position"`
}

type SubcategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories returns all categories with subcategories
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		apperrors.InternalError(c, "failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory returns one category by slug
// GET /api/v1/categories/:slug
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	category, err := ctrl.categoryService.GetCategoryBySlug(c.Param("slug"))
	if err != nil {
		ctrl.respondError(c, err, "failed to fetch category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// CreateCategory creates a category (Admin only)
// POST /api/v1/admin/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.Name, req.ImageURL, req.Position)
	if err != nil {
		ctrl.respondError(c, err, "failed to create category")
		return
	}

	log.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"slug":        category.Slug,
	})
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory updates a category (Admin only)
// PUT /api/v1/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, req.Name, req.ImageURL, req.Position)
	if err != nil {
		ctrl.respondError(c, err, "failed to update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category (Admin only)
// DELETE /api/v1/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		ctrl.respondError(c, err, "failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// AddSubcategory adds a subcategory to a category (Admin only)
// POST /api/v1/admin/categories/:id/subcategories
func (ctrl *CategoryController) AddSubcategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	sub, err := ctrl.categoryService.AddSubcategory(id, req.Name)
	if err != nil {
		ctrl.respondError(c, err, "failed to add subcategory")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subcategory": sub})
}

// DeleteSubcategory removes a subcategory (Admin only)
// DELETE /api/v1/admin/subcategories/:id
func (ctrl *CategoryController) DeleteSubcategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid id")
		return
	}

	if err := ctrl.categoryService.DeleteSubcategory(uint(id)); err != nil {
		apperrors.InternalError(c, "failed to delete subcategory")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subcategory deleted"})
}

func (ctrl *CategoryController) respondError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "category not found")
	case errors.Is(err, service.ErrCategoryInvalid):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "category name is required")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}
