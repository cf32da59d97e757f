package service

import (
	"testing"
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type capturedNotifier struct {
	orders []*model.Order
}

func (n *capturedNotifier) NotifyNewOrder(order *model.Order) {
	n.orders = append(n.orders, order)
}

type orderTestEnv struct {
	db       *gorm.DB
	products ProductService
	carts    CartService
	orders   OrderService
	notifier *capturedNotifier
}

func setupOrderServiceTest(t *testing.T) *orderTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	attributeRepo := repository.NewAttributeRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	notifier := &capturedNotifier{}

	return &orderTestEnv{
		db:       testDB,
		products: NewProductService(productRepo, attributeRepo),
		carts:    NewCartService(cartRepo, productRepo),
		orders:   NewOrderService(orderRepo, cartRepo, productRepo, notifier),
		notifier: notifier,
	}
}

func shippingFixture() ShippingInfo {
	return ShippingInfo{
		RecipientName: "Ana Pereira",
		AddressLine1:  "12 Harbour Street",
		City:          "Lisbon",
		PostalCode:    "1100-148",
	}
}

func (e *orderTestEnv) createLamp(t *testing.T, inventory int) *model.Product {
	t.Helper()
	product, err := e.products.CreateSimpleProduct(catalog.SimpleInput{
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

func TestOrderService_CreateOrder(t *testing.T) {
	env := setupOrderServiceTest(t)
	lamp := env.createLamp(t, 10)

	_, err := env.carts.AddItem(1, lamp.ID, "", 2)
	require.NoError(t, err)

	order, err := env.orders.CreateOrder(1, shippingFixture())
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 300.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Brass Table Lamp", order.Items[0].ProductName)
	assert.Equal(t, "LAMP-BRS", order.Items[0].SKU)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Stock was reserved and the cart emptied.
	reloaded, err := env.products.GetProductByID(lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, reloaded.Inventory)
	assert.Equal(t, 2, reloaded.SoldCount)

	items, _, err := env.carts.GetCart(1)
	require.NoError(t, err)
	assert.Len(t, items, 0)

	require.Len(t, env.notifier.orders, 1)
	assert.Equal(t, order.ID, env.notifier.orders[0].ID)
}

func TestOrderService_CreateOrder_VariantLineSnapshotsVariant(t *testing.T) {
	env := setupOrderServiceTest(t)

	sofa, err := env.products.CreateVariantProduct(sofaBase(), []catalog.Variant{
		sofaVariant("SOFA-GRY", "Gray", 1299, 4),
		sofaVariant("SOFA-BLU", "Blue", 1349, 6),
	})
	require.NoError(t, err)

	reloaded, err := env.products.GetProductByID(sofa.ID)
	require.NoError(t, err)
	blue := reloaded.Variants[1]

	_, err = env.carts.AddItem(1, sofa.ID, blue.VariantID, 2)
	require.NoError(t, err)

	order, err := env.orders.CreateOrder(1, shippingFixture())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	line := order.Items[0]
	assert.Equal(t, "SOFA-BLU", line.SKU)
	assert.Equal(t, "Blue", line.Color)
	assert.Equal(t, 1349.0, line.UnitPrice)
	assert.Equal(t, 2698.0, order.Total)

	// Both the variant row and the flat inventory were decremented.
	after, err := env.products.GetProductByID(sofa.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, after.Inventory)
	for _, v := range after.Variants {
		if v.VariantID == blue.VariantID {
			assert.Equal(t, 4, v.Inventory)
		}
	}
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	env := setupOrderServiceTest(t)

	_, err := env.orders.CreateOrder(1, shippingFixture())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_CreateOrder_MissingShipping(t *testing.T) {
	env := setupOrderServiceTest(t)

	_, err := env.orders.CreateOrder(1, ShippingInfo{RecipientName: "Ana Pereira"})
	assert.ErrorIs(t, err, ErrShippingIncomplete)
}

func TestOrderService_CreateOrder_InsufficientStock(t *testing.T) {
	env := setupOrderServiceTest(t)
	lamp := env.createLamp(t, 3)

	_, err := env.carts.AddItem(1, lamp.ID, "", 3)
	require.NoError(t, err)

	// Someone else buys the stock before checkout.
	_, err = env.carts.AddItem(2, lamp.ID, "", 3)
	require.NoError(t, err)
	_, err = env.orders.CreateOrder(2, shippingFixture())
	require.NoError(t, err)

	_, err = env.orders.CreateOrder(1, shippingFixture())
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	env := setupOrderServiceTest(t)
	lamp := env.createLamp(t, 10)

	_, err := env.carts.AddItem(1, lamp.ID, "", 2)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(1, shippingFixture())
	require.NoError(t, err)

	updated, err := env.orders.UpdateStatus(order.ID, model.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, updated.Status)

	_, err = env.orders.UpdateStatus(order.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = env.orders.UpdateStatus(9999, model.OrderStatusPaid)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_CancelRestoresStock(t *testing.T) {
	env := setupOrderServiceTest(t)
	lamp := env.createLamp(t, 10)

	_, err := env.carts.AddItem(1, lamp.ID, "", 4)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(1, shippingFixture())
	require.NoError(t, err)

	_, err = env.orders.UpdateStatus(order.ID, model.OrderStatusCancelled)
	require.NoError(t, err)

	reloaded, err := env.products.GetProductByID(lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.Inventory)
	assert.Equal(t, 0, reloaded.SoldCount)

	// Cancelling twice must not restore twice.
	_, err = env.orders.UpdateStatus(order.ID, model.OrderStatusCancelled)
	require.NoError(t, err)
	reloaded, err = env.products.GetProductByID(lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.Inventory)
}

func TestOrderService_UserScopedReads(t *testing.T) {
	env := setupOrderServiceTest(t)
	lamp := env.createLamp(t, 10)

	_, err := env.carts.AddItem(1, lamp.ID, "", 1)
	require.NoError(t, err)
	order, err := env.orders.CreateOrder(1, shippingFixture())
	require.NoError(t, err)

	found, err := env.orders.GetUserOrder(1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = env.orders.GetUserOrder(2, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	mine, err := env.orders.ListUserOrders(1, 10, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := env.orders.ListUserOrders(2, 10, 0)
	require.NoError(t, err)
	assert.Len(t, theirs, 0)
}

func TestReportService_RevenueAndBestSellers(t *testing.T) {
	env := setupOrderServiceTest(t)
	lamp := env.createLamp(t, 50)

	_, err := env.carts.AddItem(1, lamp.ID, "", 3)
	require.NoError(t, err)
	_, err = env.orders.CreateOrder(1, shippingFixture())
	require.NoError(t, err)

	orderRepo := repository.NewOrderRepository(env.db)
	productRepo := repository.NewProductRepository(env.db)
	reports := NewReportService(orderRepo, productRepo)

	from := time.Now().Add(-24 * time.Hour)
	to := time.Now().Add(24 * time.Hour)

	summary, err := reports.RevenueSummary(from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.OrderCount)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, 450.0, summary.Total)
	require.Len(t, summary.Days, 1)

	payload, err := reports.ExportRevenueXLSX(from, to)
	require.NoError(t, err)
	assert.NotEmpty(t, payload)

	snapshot, err := reports.SnapshotDay(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 450.0, snapshot.Total)

	// Re-running the snapshot overwrites instead of duplicating.
	_, err = reports.SnapshotDay(time.Now())
	require.NoError(t, err)
	snapshots, err := reports.Snapshots(from, to)
	require.NoError(t, err)
	assert.Len(t, snapshots, 1)

	require.NoError(t, reports.RecomputeBestSellers(5))
	reloaded, err := env.products.GetProductByID(lamp.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.BestSeller)
}
