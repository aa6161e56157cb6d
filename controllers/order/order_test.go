package orderControllers

import (
	"fmt"
	"testing"
	"time"

	"github.com/Rajatkhanna801/store-backend/config"
	checkoutControllers "github.com/Rajatkhanna801/store-backend/controllers/checkout"
	"github.com/Rajatkhanna801/store-backend/errs"
	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Address{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Checkout{}, &models.CheckoutItem{},
		&models.Order{}, &models.OrderItem{}, &models.StoreSettings{},
	))
	return db
}

func testConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		TTL:                2 * time.Hour,
		SweepInterval:      time.Minute,
		MinimumOrderAmount: decimal.Zero,
		DeliveryCharge:     decimal.Zero,
		MerchantVPA:        "merchant@upi",
	}
}

// seedCheckout builds a user with a cart holding one product line and runs
// it through checkout, returning the reserved checkout ready to finalize.
func seedCheckout(t *testing.T, db *gorm.DB, userID string, price int64, stock, reserve int) (*models.Checkout, models.Product) {
	t.Helper()
	user := models.User{ID: userID, Email: userID + "@example.com", Name: "Test User"}
	require.NoError(t, db.Create(&user).Error)
	address := models.Address{UserID: user.ID, Line1: "12 MG Road", City: "Bengaluru", Pincode: "560001"}
	require.NoError(t, db.Create(&address).Error)
	cart := models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)

	product := models.Product{Name: "Widget", Price: decimal.NewFromInt(price), Quantity: stock}
	require.NoError(t, db.Create(&product).Error)
	item := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: reserve, Status: models.CartItemStatusActive}
	require.NoError(t, db.Create(&item).Error)

	checkout, err := checkoutControllers.CreateCheckout(db, testConfig(), user.ID, checkoutControllers.CreateCheckoutRequest{
		CartItemIDs:       []uint{item.ID},
		ShippingAddressID: address.ID,
	})
	require.NoError(t, err)
	return checkout, product
}

func productQuantity(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, productID).Error)
	return product.Quantity
}

func TestCreateOrderFromCheckout(t *testing.T) {
	db := setupTestDB(t)
	checkout, product := seedCheckout(t, db, "u1", 100, 10, 3)
	require.Equal(t, 7, productQuantity(t, db, product.ID))

	order, err := CreateOrderFromCheckout(db, testConfig(), "u1", checkout.ID, "leave at the door")
	require.NoError(t, err)

	require.NotEmpty(t, order.OrderRef)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	require.Equal(t, "leave at the door", order.Notes)

	require.Len(t, order.Items, 1)
	require.Equal(t, product.ID, order.Items[0].ProductID)
	require.Equal(t, 3, order.Items[0].Quantity)
	require.Equal(t, "100.00", order.Items[0].PriceAtPurchase.StringFixed(2))

	// Finalizing transfers the reservation; stock does not move again.
	require.Equal(t, 7, productQuantity(t, db, product.ID))

	var got models.Checkout
	require.NoError(t, db.First(&got, checkout.ID).Error)
	require.Equal(t, models.CheckoutStatusFinalized, got.Status)

	// Finalized checkouts shed their items; the lines live on the order now.
	var checkoutItems int64
	require.NoError(t, db.Model(&models.CheckoutItem{}).Where("checkout_id = ?", checkout.ID).Count(&checkoutItems).Error)
	require.Zero(t, checkoutItems)

	want := fmt.Sprintf("upi://pay?pa=merchant@upi&pn=Store&am=300.00&tn=Order#%d&cu=INR", order.ID)
	require.Equal(t, want, order.PaymentQRData)
}

func TestCreateOrderSnapshotSurvivesRepricing(t *testing.T) {
	db := setupTestDB(t)
	checkout, product := seedCheckout(t, db, "u1", 100, 10, 2)

	// Price changes between reservation and finalization must not leak
	// into the order.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.NewFromInt(250)).Error)

	order, err := CreateOrderFromCheckout(db, testConfig(), "u1", checkout.ID, "")
	require.NoError(t, err)
	require.Equal(t, "100.00", order.Items[0].PriceAtPurchase.StringFixed(2))
	require.Equal(t, "200.00", order.Subtotal().StringFixed(2))
}

func TestCreateOrderExpiredCheckout(t *testing.T) {
	db := setupTestDB(t)
	checkout, product := seedCheckout(t, db, "u1", 100, 10, 3)

	require.NoError(t, db.Model(&models.Checkout{}).Where("id = ?", checkout.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err := CreateOrderFromCheckout(db, testConfig(), "u1", checkout.ID, "")
	require.ErrorIs(t, err, errs.ErrCheckoutExpired)

	// The expired reservation is released, not consumed.
	require.Equal(t, 10, productQuantity(t, db, product.ID))
	var got models.Checkout
	require.NoError(t, db.First(&got, checkout.ID).Error)
	require.Equal(t, models.CheckoutStatusReleased, got.Status)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
}

func TestCreateOrderInactiveCheckout(t *testing.T) {
	db := setupTestDB(t)
	checkout, product := seedCheckout(t, db, "u1", 100, 10, 3)

	require.NoError(t, checkoutControllers.CancelCheckout(db, "u1", checkout.ID))
	require.Equal(t, 10, productQuantity(t, db, product.ID))

	_, err := CreateOrderFromCheckout(db, testConfig(), "u1", checkout.ID, "")
	require.ErrorIs(t, err, errs.ErrCheckoutNotActive)

	// No double credit, no order.
	require.Equal(t, 10, productQuantity(t, db, product.ID))
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)
}

func TestCreateOrderForeignCheckout(t *testing.T) {
	db := setupTestDB(t)
	checkout, _ := seedCheckout(t, db, "u1", 100, 10, 1)

	_, err := CreateOrderFromCheckout(db, testConfig(), "someone-else", checkout.ID, "")
	require.Error(t, err)
	require.True(t, errs.IsValidation(err))
}

func TestOrderTotalReflectsLatestDeliveryCharge(t *testing.T) {
	db := setupTestDB(t)
	checkout, _ := seedCheckout(t, db, "u1", 100, 10, 3)

	require.NoError(t, db.Create(&models.StoreSettings{
		MinimumOrderAmount: decimal.Zero,
		DeliveryCharge:     decimal.NewFromInt(25),
	}).Error)

	order, err := CreateOrderFromCheckout(db, testConfig(), "u1", checkout.ID, "")
	require.NoError(t, err)

	want := fmt.Sprintf("upi://pay?pa=merchant@upi&pn=Store&am=325.00&tn=Order#%d&cu=INR", order.ID)
	require.Equal(t, want, order.PaymentQRData)

	total, err := models.OrderTotalAmount(db, order, decimal.Zero)
	require.NoError(t, err)
	require.Equal(t, "325.00", total.StringFixed(2))

	// The total is computed, never stored: a new settings row moves it.
	require.NoError(t, db.Create(&models.StoreSettings{
		MinimumOrderAmount: decimal.Zero,
		DeliveryCharge:     decimal.NewFromInt(40),
	}).Error)
	total, err = models.OrderTotalAmount(db, order, decimal.Zero)
	require.NoError(t, err)
	require.Equal(t, "340.00", total.StringFixed(2))
}

func TestMapOrderStatus(t *testing.T) {
	status, err := mapOrderStatus("shipped")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusShipped, status)

	_, err = mapOrderStatus("teleported")
	require.Error(t, err)
	require.True(t, errs.IsValidation(err))
}
