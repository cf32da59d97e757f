package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/internal/app/service"
	"github.com/arteliving/arteliving-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductControllerTest(t *testing.T) (*ProductController, *gin.Engine, service.ProductService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	attributeRepo := repository.NewAttributeRepository(testDB)
	productService := service.NewProductService(productRepo, attributeRepo)
	productController := NewProductController(productService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return productController, router, productService
}

func seedSofa(t *testing.T, productService service.ProductService) uint {
	t.Helper()
	product, err := productService.CreateVariantProduct(catalog.BaseInput{
		Name:        "Oslo Sofa",
		Category:    "furniture",
		Subcategory: "sofas",
	}, []catalog.Variant{
		{SKU: "SOFA-GRY", Color: "Gray", Size: "3-seater", Material: "Linen", Price: 1299, Inventory: 4, MainImage: "https://cdn.example.com/gry.jpg"},
		{SKU: "SOFA-BLU", Color: "Blue", Size: "3-seater", Material: "Linen", Price: 1349, Inventory: 6, MainImage: "https://cdn.example.com/blu.jpg"},
	})
	require.NoError(t, err)
	return product.ID
}

func TestProductController_ListProducts(t *testing.T) {
	controller, router, productService := setupProductControllerTest(t)
	seedSofa(t, productService)

	router.GET("/products", controller.ListProducts)

	req := httptest.NewRequest(http.MethodGet, "/products?category=furniture", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	products := response["products"].([]interface{})
	assert.Len(t, products, 1)
	assert.Equal(t, float64(1), response["total"])
}

func TestProductController_GetProduct_NotFound(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.GET("/products/:id", controller.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/products/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CATALOG_PRODUCT_NOT_FOUND", response["error"])
}

func TestProductController_CreateVariantProduct(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.POST("/admin/products/variants", controller.CreateVariantProduct)

	payload := map[string]interface{}{
		"name":        "Luna Armchair",
		"category":    "furniture",
		"subcategory": "armchairs",
		"variants": []map[string]interface{}{
			{
				"sku":        "LUNA-GRN",
				"color":      "Green",
				"size":       "standard",
				"material":   "Velvet",
				"price":      649.0,
				"inventory":  3,
				"main_image": "https://cdn.example.com/luna.jpg",
			},
		},
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/admin/products/variants", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	product := response["product"].(map[string]interface{})
	assert.Equal(t, "luna-armchair", product["slug"])
	assert.Equal(t, true, product["has_variants"])
	assert.Equal(t, 649.0, product["price"])
}

func TestProductController_AddVariant_ValidationFields(t *testing.T) {
	controller, router, productService := setupProductControllerTest(t)
	productID := seedSofa(t, productService)

	router.POST("/admin/products/:id/variants", controller.AddVariant)

	// Missing color, sku, price and main image.
	body := []byte(`{"inventory": 5}`)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/admin/products/%d/variants", productID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VALIDATION_INVALID_INPUT", response["error"])

	fields := response["fields"].(map[string]interface{})
	assert.Contains(t, fields, "color")
	assert.Contains(t, fields, "sku")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "main_image")
}

func TestProductController_ApplyDiscount_OutOfRange(t *testing.T) {
	controller, router, productService := setupProductControllerTest(t)
	productID := seedSofa(t, productService)

	router.POST("/admin/products/:id/discount", controller.ApplyDiscount)

	body := []byte(`{"percentage": 150}`)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/admin/products/%d/discount", productID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_SuggestSKU(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.GET("/admin/products/sku-suggestion", controller.SuggestSKU)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/sku-suggestion?base=SOFA&color=Gray&material=Linen", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Regexp(t, `^SOFA-GRA-LIN-[A-Z]{3}$`, response["sku"])

	// base is mandatory
	req = httptest.NewRequest(http.MethodGet, "/admin/products/sku-suggestion", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
