package models

import (
	"testing"

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
		&User{}, &Address{}, &Category{}, &Product{},
		&Cart{}, &CartItem{}, &Checkout{}, &CheckoutItem{},
		&Order{}, &OrderItem{}, &StoreSettings{},
	))
	return db
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestEffectivePrice(t *testing.T) {
	lower := decimal.NewFromInt(80)
	higher := decimal.NewFromInt(120)

	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{
			name:    "no discount",
			product: Product{Price: decimal.NewFromInt(100)},
			want:    "100.00",
		},
		{
			name:    "discount lower than price",
			product: Product{Price: decimal.NewFromInt(100), DiscountedPrice: &lower},
			want:    "80.00",
		},
		{
			name:    "discount higher than price is ignored",
			product: Product{Price: decimal.NewFromInt(100), DiscountedPrice: &higher},
			want:    "100.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.product.EffectivePrice().StringFixed(2))
		})
	}
}

func TestReserveProductStock(t *testing.T) {
	db := setupTestDB(t)
	product := Product{Name: "Widget", Price: decimal.NewFromInt(100), Quantity: 10}
	require.NoError(t, db.Create(&product).Error)

	require.NoError(t, ReserveProductStock(db, product.ID, 3))

	var got Product
	require.NoError(t, db.First(&got, product.ID).Error)
	require.Equal(t, 7, got.Quantity)

	// Asking for more than remains fails and leaves stock untouched.
	err := ReserveProductStock(db, product.ID, 8)
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.NoError(t, db.First(&got, product.ID).Error)
	require.Equal(t, 7, got.Quantity)

	// Draining to exactly zero is allowed; going below never is.
	require.NoError(t, ReserveProductStock(db, product.ID, 7))
	require.NoError(t, db.First(&got, product.ID).Error)
	require.Equal(t, 0, got.Quantity)
	require.ErrorIs(t, ReserveProductStock(db, product.ID, 1), ErrInsufficientStock)
}

func TestRestoreProductStock(t *testing.T) {
	db := setupTestDB(t)
	product := Product{Name: "Widget", Price: decimal.NewFromInt(100), Quantity: 2}
	require.NoError(t, db.Create(&product).Error)

	require.NoError(t, RestoreProductStock(db, product.ID, 5))

	var got Product
	require.NoError(t, db.First(&got, product.ID).Error)
	require.Equal(t, 7, got.Quantity)
}

func TestProductReferenced(t *testing.T) {
	db := setupTestDB(t)
	product := Product{Name: "Widget", Price: decimal.NewFromInt(100), Quantity: 10}
	require.NoError(t, db.Create(&product).Error)

	referenced, err := ProductReferenced(db, product.ID)
	require.NoError(t, err)
	require.False(t, referenced)

	user := User{ID: "u1", Email: "u1@example.com"}
	require.NoError(t, db.Create(&user).Error)
	cart := Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1, Status: CartItemStatusActive}).Error)

	referenced, err = ProductReferenced(db, product.ID)
	require.NoError(t, err)
	require.True(t, referenced)
}

func TestLatestStoreSettings(t *testing.T) {
	db := setupTestDB(t)

	settings, err := LatestStoreSettings(db)
	require.NoError(t, err)
	require.Nil(t, settings)

	require.NoError(t, db.Create(&StoreSettings{
		MinimumOrderAmount: dec(t, "100"),
		DeliveryCharge:     dec(t, "10"),
	}).Error)
	require.NoError(t, db.Create(&StoreSettings{
		MinimumOrderAmount: dec(t, "250"),
		DeliveryCharge:     dec(t, "25"),
	}).Error)

	settings, err = LatestStoreSettings(db)
	require.NoError(t, err)
	require.NotNil(t, settings)
	require.Equal(t, "250.00", settings.MinimumOrderAmount.StringFixed(2))
	require.Equal(t, "25.00", settings.DeliveryCharge.StringFixed(2))
}

func TestCartSubtotalDetails(t *testing.T) {
	discounted := decimal.NewFromInt(80)
	items := []CartItem{
		{
			Quantity: 2,
			Status:   CartItemStatusActive,
			Product:  Product{Price: decimal.NewFromInt(100), DiscountedPrice: &discounted},
		},
		{
			Quantity: 1,
			Status:   CartItemStatusActive,
			Product:  Product{Price: decimal.NewFromInt(50)},
		},
		{
			// saved-for-later items never count towards the subtotal
			Quantity: 4,
			Status:   CartItemStatusSaved,
			Product:  Product{Price: decimal.NewFromInt(999)},
		},
	}

	actual, total, discount := CartSubtotalDetails(items)
	require.Equal(t, "250.00", actual.StringFixed(2))
	require.Equal(t, "210.00", total.StringFixed(2))
	require.Equal(t, "40.00", discount.StringFixed(2))
}
