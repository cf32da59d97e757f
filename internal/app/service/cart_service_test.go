package service

import (
	"testing"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartServiceTest(t *testing.T) (CartService, ProductService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	attributeRepo := repository.NewAttributeRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	return NewCartService(cartRepo, productRepo), NewProductService(productRepo, attributeRepo)
}

func createCartLamp(t *testing.T, products ProductService, inventory int) *model.Product {
	t.Helper()
	product, err := products.CreateSimpleProduct(catalog.SimpleInput{
		SKU:       "LAMP-BRS",
		Name:      "Brass Table Lamp",
		Category:  "lighting",
		Material:  "Brass",
		Color:     "Gold",
		Price:     150,
		Inventory: inventory,
		MainImage: "https://cdn.example.com/lamp.jpg",
	})
	require.NoError(t, err)
	return product
}

func TestCartService_AddItem(t *testing.T) {
	carts, products := setupCartServiceTest(t)
	lamp := createCartLamp(t, products, 5)

	item, err := carts.AddItem(1, lamp.ID, "", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	// Adding the same product merges into one line.
	item, err = carts.AddItem(1, lamp.ID, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	items, total, err := carts.GetCart(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 450.0, total)
}

func TestCartService_AddItem_StockAndValidation(t *testing.T) {
	carts, products := setupCartServiceTest(t)
	lamp := createCartLamp(t, products, 2)

	_, err := carts.AddItem(1, lamp.ID, "", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = carts.AddItem(1, lamp.ID, "", 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = carts.AddItem(1, 9999, "", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Merging past the stock limit is also rejected.
	_, err = carts.AddItem(1, lamp.ID, "", 2)
	require.NoError(t, err)
	_, err = carts.AddItem(1, lamp.ID, "", 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_VariantLines(t *testing.T) {
	carts, products := setupCartServiceTest(t)

	sofa, err := products.CreateVariantProduct(sofaBase(), []catalog.Variant{
		sofaVariant("SOFA-GRY", "Gray", 1299, 4),
		sofaVariant("SOFA-BLU", "Blue", 1349, 6),
	})
	require.NoError(t, err)

	// A variant product cannot be added without choosing a variant.
	_, err = carts.AddItem(1, sofa.ID, "", 1)
	assert.ErrorIs(t, err, ErrVariantRequired)

	_, err = carts.AddItem(1, sofa.ID, "no-such-variant", 1)
	assert.ErrorIs(t, err, ErrUnknownVariant)

	reloaded, err := products.GetProductByID(sofa.ID)
	require.NoError(t, err)
	blue := reloaded.Variants[1]

	_, err = carts.AddItem(1, sofa.ID, blue.VariantID, 2)
	require.NoError(t, err)

	// The cart total uses the variant price, not the flat product price.
	_, total, err := carts.GetCart(1)
	require.NoError(t, err)
	assert.Equal(t, 2698.0, total)
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	carts, products := setupCartServiceTest(t)
	lamp := createCartLamp(t, products, 5)

	item, err := carts.AddItem(1, lamp.ID, "", 1)
	require.NoError(t, err)

	updated, err := carts.UpdateQuantity(1, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = carts.UpdateQuantity(1, item.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Another user cannot touch the line.
	_, err = carts.UpdateQuantity(2, item.ID, 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	err = carts.RemoveItem(2, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	require.NoError(t, carts.RemoveItem(1, item.ID))
	items, _, err := carts.GetCart(1)
	require.NoError(t, err)
	assert.Len(t, items, 0)
}

func TestCartService_ClearCart(t *testing.T) {
	carts, products := setupCartServiceTest(t)
	lamp := createCartLamp(t, products, 5)

	_, err := carts.AddItem(1, lamp.ID, "", 2)
	require.NoError(t, err)

	require.NoError(t, carts.ClearCart(1))
	items, total, err := carts.GetCart(1)
	require.NoError(t, err)
	assert.Len(t, items, 0)
	assert.Equal(t, 0.0, total)
}
