package service

import (
	"testing"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	attributeRepo := repository.NewAttributeRepository(testDB)
	return NewProductService(productRepo, attributeRepo), testDB
}

func sofaBase() catalog.BaseInput {
	return catalog.BaseInput{
		Name:        "Oslo Sofa",
		Category:    "furniture",
		Subcategory: "sofas",
	}
}

func sofaVariant(sku, color string, price float64, inventory int) catalog.Variant {
	return catalog.Variant{
		SKU:       sku,
		Color:     color,
		Size:      "3-seater",
		Material:  "Linen",
		Price:     price,
		Inventory: inventory,
		MainImage: "https://cdn.example.com/" + sku + ".jpg",
	}
}

func createSofa(t *testing.T, svc ProductService) *model.Product {
	t.Helper()
	product, err := svc.CreateVariantProduct(sofaBase(), []catalog.Variant{
		sofaVariant("SOFA-GRY", "Gray", 1299, 4),
		sofaVariant("SOFA-BLU", "Blue", 1349, 6),
	})
	require.NoError(t, err)
	return product
}

func TestProductService_CreateSimpleProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product, err := svc.CreateSimpleProduct(catalog.SimpleInput{
		SKU:       "LAMP-BRS",
		Name:      "Brass Table Lamp",
		Category:  "lighting",
		Material:  "Brass",
		Color:     "Gold",
		Price:     149.5,
		Inventory: 12,
		MainImage: "https://cdn.example.com/lamp.jpg",
	})
	require.NoError(t, err)

	assert.False(t, product.HasVariants)
	assert.Equal(t, "brass-table-lamp", product.Slug)
	assert.Equal(t, 149.5, product.Price)

	found, err := svc.GetProductBySlug("brass-table-lamp")
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
}

func TestProductService_CreateSimpleProduct_Invalid(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	_, err := svc.CreateSimpleProduct(catalog.SimpleInput{Name: "No SKU"})

	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "sku")
	assert.Contains(t, verr.Fields, "price")
}

func TestProductService_CreateVariantProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product := createSofa(t, svc)

	assert.True(t, product.HasVariants)
	// Flat fields mirror the default (first-added) variant.
	assert.Equal(t, "Gray", product.Color)
	assert.Equal(t, 1299.0, product.Price)
	assert.Equal(t, 10, product.Inventory)
	assert.ElementsMatch(t, []string{"Gray", "Blue"}, []string(product.AvailableColors))

	reloaded, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Variants, 2)
	assert.True(t, reloaded.Variants[0].IsDefault)
	assert.False(t, reloaded.Variants[1].IsDefault)
}

func TestProductService_CreateVariantProduct_RegistersAttributes(t *testing.T) {
	svc, testDB := setupProductServiceTest(t)

	createSofa(t, svc)

	attributeRepo := repository.NewAttributeRepository(testDB)
	colors, err := attributeRepo.ListByKind(string(catalog.KindColor))
	require.NoError(t, err)
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Gray", "Blue"}, names)

	materials, err := attributeRepo.ListByKind(string(catalog.KindMaterial))
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, "Linen", materials[0].Name)
}

func TestProductService_AddVariant_SyncsAggregates(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	product := createSofa(t, svc)

	updated, err := svc.AddVariant(product.ID, sofaVariant("SOFA-GRN", "Green", 1399, 3))
	require.NoError(t, err)

	assert.Equal(t, 13, updated.Inventory)
	assert.ElementsMatch(t, []string{"Gray", "Blue", "Green"}, []string(updated.AvailableColors))
	// Default unchanged, so flat price still mirrors the gray variant.
	assert.Equal(t, 1299.0, updated.Price)
}

func TestProductService_SetDefaultVariant_SyncsFlatFields(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	product := createSofa(t, svc)

	reloaded, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	blueID := reloaded.Variants[1].VariantID

	updated, err := svc.SetDefaultVariant(product.ID, blueID)
	require.NoError(t, err)

	assert.Equal(t, "Blue", updated.Color)
	assert.Equal(t, 1349.0, updated.Price)
	assert.Equal(t, "SOFA-BLU", updated.SKU)
}

func TestProductService_DeleteDefaultVariant_PromotesNext(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	product := createSofa(t, svc)

	reloaded, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	grayID := reloaded.Variants[0].VariantID

	updated, err := svc.DeleteVariant(product.ID, grayID)
	require.NoError(t, err)

	assert.True(t, updated.HasVariants)
	assert.Equal(t, "Blue", updated.Color)
	assert.Equal(t, 6, updated.Inventory)

	reloaded, err = svc.GetProductByID(product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Variants, 1)
	assert.True(t, reloaded.Variants[0].IsDefault)
}

func TestProductService_DeleteLastVariant_FallsBackToSimple(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product, err := svc.CreateVariantProduct(sofaBase(), []catalog.Variant{
		sofaVariant("SOFA-GRY", "Gray", 1299, 4),
	})
	require.NoError(t, err)

	reloaded, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	onlyID := reloaded.Variants[0].VariantID

	updated, err := svc.DeleteVariant(product.ID, onlyID)
	require.NoError(t, err)

	assert.False(t, updated.HasVariants)
	assert.Equal(t, 0, updated.Inventory)
	assert.Empty(t, updated.AvailableColors)

	reloaded, err = svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Variants, 0)
}

func TestProductService_DuplicateVariant(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	product := createSofa(t, svc)

	reloaded, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	grayID := reloaded.Variants[0].VariantID

	updated, err := svc.DuplicateVariant(product.ID, grayID)
	require.NoError(t, err)
	assert.Equal(t, 14, updated.Inventory)

	reloaded, err = svc.GetProductByID(product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Variants, 3)

	copySKUs := 0
	for _, v := range reloaded.Variants {
		if v.SKU == "SOFA-GRY"+catalog.DuplicateSKUSuffix {
			copySKUs++
			assert.False(t, v.IsDefault)
		}
	}
	assert.Equal(t, 1, copySKUs)
}

func TestProductService_UpdateVariant_FailedValidationLeavesProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	product := createSofa(t, svc)

	reloaded, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	grayID := reloaded.Variants[0].VariantID

	bad := sofaVariant("", "", -1, 0)
	bad.MainImage = ""
	_, err = svc.UpdateVariant(product.ID, grayID, bad)

	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)

	// Nothing was persisted.
	after, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "SOFA-GRY", after.Variants[0].SKU)
	assert.Equal(t, 1299.0, after.Price)
}

func TestProductService_VariantNotFound(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	product := createSofa(t, svc)

	_, err := svc.DeleteVariant(product.ID, "no-such-variant")
	assert.ErrorIs(t, err, catalog.ErrVariantNotFound)

	_, err = svc.AddVariant(9999, sofaVariant("X", "Red", 10, 1))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Discounts(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product, err := svc.CreateSimpleProduct(catalog.SimpleInput{
		SKU:       "RUG-WOOL",
		Name:      "Wool Rug",
		Category:  "textiles",
		Material:  "Wool",
		Color:     "Beige",
		Price:     200,
		Inventory: 5,
		MainImage: "https://cdn.example.com/rug.jpg",
	})
	require.NoError(t, err)

	discounted, err := svc.ApplyDiscount(product.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, 150.0, discounted.Price)
	assert.Equal(t, 200.0, discounted.OldPrice)
	assert.True(t, discounted.Sale)

	// A second discount is computed from the original price.
	discounted, err = svc.ApplyDiscount(product.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 180.0, discounted.Price)
	assert.Equal(t, 200.0, discounted.OldPrice)

	restored, err := svc.RemoveDiscount(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, restored.Price)
	assert.Equal(t, 0.0, restored.OldPrice)
	assert.False(t, restored.Sale)

	_, err = svc.RemoveDiscount(product.ID)
	assert.ErrorIs(t, err, catalog.ErrNoDiscount)
}

func TestProductService_ListProducts_Filters(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	createSofa(t, svc)
	_, err := svc.CreateSimpleProduct(catalog.SimpleInput{
		SKU:       "LAMP-BRS",
		Name:      "Brass Table Lamp",
		Category:  "lighting",
		Material:  "Brass",
		Color:     "Gold",
		Price:     149.5,
		Inventory: 12,
		MainImage: "https://cdn.example.com/lamp.jpg",
	})
	require.NoError(t, err)

	products, total, err := svc.ListProducts(ProductListOptions{Category: "furniture"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Oslo Sofa", products[0].Name)

	// Variant colors match through the availability list.
	products, _, err = svc.ListProducts(ProductListOptions{Color: "Blue"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Oslo Sofa", products[0].Name)

	products, _, err = svc.ListProducts(ProductListOptions{Search: "lamp"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Brass Table Lamp", products[0].Name)

	maxPrice := 200.0
	products, _, err = svc.ListProducts(ProductListOptions{MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Brass Table Lamp", products[0].Name)
}

func TestProductService_SuggestSKU(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	sku := svc.SuggestSKU("SOFA", "Gray", "3-seater", "Linen")
	assert.Regexp(t, `^SOFA-GRA-3-SEATER-LIN-[A-Z]{3}$`, sku)
}
