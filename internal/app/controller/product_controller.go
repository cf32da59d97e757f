package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/service"
	apperrors "github.com/arteliving/arteliving-backend/internal/errors"
	"github.com/arteliving/arteliving-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type CreateSimpleProductRequest struct {
	SKU         string             `json:"sku" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	Brand       string             `json:"brand"`
	Model       string             `json:"model"`
	Category    string             `json:"category" binding:"required"`
	Subcategory string             `json:"subcategory"`
	Description string             `json:"description"`
	Details     []string           `json:"details"`
	Price       float64            `json:"price" binding:"required,gt=0"`
	Material    string             `json:"material" binding:"required"`
	Color       string             `json:"color" binding:"required"`
	ColorCode   string             `json:"color_code"`
	MainImage   string             `json:"main_image" binding:"required"`
	Images      []string           `json:"images"`
	Video       string             `json:"video"`
	APlusImage  string             `json:"a_plus_image"`
	Weight      float64            `json:"weight"`
	Dimensions  catalog.Dimensions `json:"dimensions"`
	Inventory   int                `json:"inventory" binding:"gte=0"`
	NewArrival  bool               `json:"new_arrival"`
	Sale        bool               `json:"sale"`
}

type CreateVariantProductRequest struct {
	SKU         string            `json:"sku"`
	Name        string            `json:"name" binding:"required"`
	Brand       string            `json:"brand"`
	Model       string            `json:"model"`
	Category    string            `json:"category" binding:"required"`
	Subcategory string            `json:"subcategory" binding:"required"`
	Description string            `json:"description"`
	Details     []string          `json:"details"`
	APlusImage  string            `json:"a_plus_image"`
	NewArrival  bool              `json:"new_arrival"`
	Sale        bool              `json:"sale"`
	Variants    []catalog.Variant `json:"variants" binding:"required,min=1"`
}

type UpdateProductRequest struct {
	SKU         string   `json:"sku"`
	Name        string   `json:"name" binding:"required"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Category    string   `json:"category" binding:"required"`
	Subcategory string   `json:"subcategory"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
	APlusImage  string   `json:"a_plus_image"`
	NewArrival  bool     `json:"new_arrival"`
	BestSeller  bool     `json:"best_seller"`
	Sale        bool     `json:"sale"`
}

type DiscountRequest struct {
	Percentage float64 `json:"percentage"`
}

// ListProducts returns the filtered, sorted product listing
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ProductListOptions{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Color:       c.Query("color"),
		Material:    c.Query("material"),
		Search:      c.Query("search"),
		Sort:        service.ProductSort(c.DefaultQuery("sort", "created_at")),
	}
	opts.SortAscending = c.Query("order") == "asc"
	opts.IncludeVariants = c.Query("include_variants") == "true"

	if v := c.Query("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MinPrice = &price
		}
	}
	if v := c.Query("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MaxPrice = &price
		}
	}
	for query, target := range map[string]**bool{
		"new_arrival": &opts.NewArrival,
		"best_seller": &opts.BestSeller,
		"sale":        &opts.Sale,
	} {
		if v := c.Query(query); v != "" {
			flag := v == "true"
			*target = &flag
		}
	}

	opts.Limit = parsePositiveInt(c.DefaultQuery("limit", "20"), 20)
	opts.Offset = parsePositiveInt(c.DefaultQuery("offset", "0"), 0)

	products, total, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})
}

// GetProduct returns a product by ID
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		ctrl.respondError(c, err, "failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// GetProductBySlug returns a product by its URL slug
// GET /api/v1/products/slug/:slug
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	product, err := ctrl.productService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		ctrl.respondError(c, err, "failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// GetFilters returns the filter values available across the catalog
// GET /api/v1/products/filters
func (ctrl *ProductController) GetFilters(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filters, err := ctrl.productService.GetAvailableFilters()
	if err != nil {
		log.Error("Failed to fetch filters", err, nil)
		apperrors.InternalError(c, "failed to fetch filters")
		return
	}

	c.JSON(http.StatusOK, gin.H{"filters": filters})
}

// CreateSimpleProduct creates a product without variants (Admin only)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateSimpleProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateSimpleProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.CreateSimpleProduct(catalog.SimpleInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Brand:       req.Brand,
		Model:       req.Model,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Details:     req.Details,
		Price:       req.Price,
		Material:    req.Material,
		Color:       req.Color,
		ColorCode:   req.ColorCode,
		MainImage:   req.MainImage,
		Images:      req.Images,
		Video:       req.Video,
		APlusImage:  req.APlusImage,
		Weight:      req.Weight,
		Dimensions:  req.Dimensions,
		Inventory:   req.Inventory,
		NewArrival:  req.NewArrival,
		Sale:        req.Sale,
	})
	if err != nil {
		ctrl.respondError(c, err, "failed to create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// CreateVariantProduct creates a product with variants (Admin only)
// POST /api/v1/admin/products/variants
func (ctrl *ProductController) CreateVariantProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateVariantProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.CreateVariantProduct(catalog.BaseInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Brand:       req.Brand,
		Model:       req.Model,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Details:     req.Details,
		APlusImage:  req.APlusImage,
		NewArrival:  req.NewArrival,
		Sale:        req.Sale,
	}, req.Variants)
	if err != nil {
		ctrl.respondError(c, err, "failed to create product")
		return
	}

	log.Info("Variant product created", map[string]interface{}{
		"product_id":    product.ID,
		"variant_count": len(req.Variants),
	})
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct updates the shared base fields of a product (Admin only)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, catalog.BaseInput{
		SKU:         req.SKU,
		Name:        req.Name,
		Brand:       req.Brand,
		Model:       req.Model,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Description: req.Description,
		Details:     req.Details,
		APlusImage:  req.APlusImage,
		NewArrival:  req.NewArrival,
		BestSeller:  req.BestSeller,
		Sale:        req.Sale,
	})
	if err != nil {
		ctrl.respondError(c, err, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes a product (Admin only)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		ctrl.respondError(c, err, "failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// AddVariant appends a variant to a product (Admin only)
// POST /api/v1/admin/products/:id/variants
func (ctrl *ProductController) AddVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var data catalog.Variant
	if err := c.ShouldBindJSON(&data); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.AddVariant(id, data)
	if err != nil {
		ctrl.respondError(c, err, "failed to add variant")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateVariant edits one variant of a product (Admin only)
// PUT /api/v1/admin/products/:id/variants/:variantId
func (ctrl *ProductController) UpdateVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var data catalog.Variant
	if err := c.ShouldBindJSON(&data); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.UpdateVariant(id, c.Param("variantId"), data)
	if err != nil {
		ctrl.respondError(c, err, "failed to update variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteVariant removes one variant of a product (Admin only)
// DELETE /api/v1/admin/products/:id/variants/:variantId
func (ctrl *ProductController) DeleteVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.DeleteVariant(id, c.Param("variantId"))
	if err != nil {
		ctrl.respondError(c, err, "failed to delete variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DuplicateVariant clones one variant of a product (Admin only)
// POST /api/v1/admin/products/:id/variants/:variantId/duplicate
func (ctrl *ProductController) DuplicateVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.DuplicateVariant(id, c.Param("variantId"))
	if err != nil {
		ctrl.respondError(c, err, "failed to duplicate variant")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// SetDefaultVariant moves the default flag to another variant (Admin only)
// PUT /api/v1/admin/products/:id/variants/:variantId/default
func (ctrl *ProductController) SetDefaultVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.SetDefaultVariant(id, c.Param("variantId"))
	if err != nil {
		ctrl.respondError(c, err, "failed to set default variant")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// ApplyDiscount puts a product on sale (Admin only)
// POST /api/v1/admin/products/:id/discount
func (ctrl *ProductController) ApplyDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	product, err := ctrl.productService.ApplyDiscount(id, req.Percentage)
	if err != nil {
		ctrl.respondError(c, err, "failed to apply discount")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// RemoveDiscount restores the original price (Admin only)
// DELETE /api/v1/admin/products/:id/discount
func (ctrl *ProductController) RemoveDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.RemoveDiscount(id)
	if err != nil {
		ctrl.respondError(c, err, "failed to remove discount")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// SuggestSKU proposes a SKU for the variant editor (Admin only)
// GET /api/v1/admin/products/sku-suggestion
func (ctrl *ProductController) SuggestSKU(c *gin.Context) {
	base := c.Query("base")
	if base == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "base is required")
		return
	}

	sku := ctrl.productService.SuggestSKU(base, c.Query("color"), c.Query("size"), c.Query("material"))
	c.JSON(http.StatusOK, gin.H{"sku": sku})
}

// respondError maps domain errors onto the shared response shapes.
func (ctrl *ProductController) respondError(c *gin.Context, err error, fallback string) {
	log := middleware.GetLoggerFromContext(c)

	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		apperrors.RespondWithValidationError(c, verr.Fields)
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "product not found")
	case errors.Is(err, catalog.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "variant not found")
	case errors.Is(err, catalog.ErrNoVariants):
		apperrors.BadRequest(c, apperrors.CatalogNoVariants, "at least one variant is required")
	case errors.Is(err, catalog.ErrNoDiscount):
		apperrors.BadRequest(c, apperrors.CatalogNoDiscount, "no discount is applied")
	default:
		log.Error(fallback, err, nil)
		apperrors.InternalError(c, fallback)
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func parsePositiveInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
