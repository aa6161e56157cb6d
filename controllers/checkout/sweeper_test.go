package checkoutControllers

import (
	"testing"
	"time"

	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func expireCheckout(t *testing.T, db *gorm.DB, checkoutID uint) {
	t.Helper()
	require.NoError(t, db.Model(&models.Checkout{}).Where("id = ?", checkoutID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)
}

func TestSweepExpiredCheckouts(t *testing.T) {
	db := setupTestDB(t)
	fx := seedUserWithCart(t, db, "u1")
	product := seedProduct(t, db, "Widget", 100, 20)

	var checkouts []*models.Checkout
	for i := 0; i < 3; i++ {
		item := addCartItem(t, db, fx.cart, product, 2)
		checkout, err := CreateCheckout(db, testConfig(), fx.user.ID, CreateCheckoutRequest{
			CartItemIDs:       []uint{item.ID},
			ShippingAddressID: fx.address.ID,
		})
		require.NoError(t, err)
		checkouts = append(checkouts, checkout)
	}
	require.Equal(t, 14, productQuantity(t, db, product.ID))

	// Two of the three expire; the third stays live.
	expireCheckout(t, db, checkouts[0].ID)
	expireCheckout(t, db, checkouts[1].ID)

	processed, failed := SweepExpiredCheckouts(db)
	require.Equal(t, 2, processed)
	require.Zero(t, failed)

	require.Equal(t, 18, productQuantity(t, db, product.ID))

	for i, want := range []models.CheckoutStatus{
		models.CheckoutStatusReleased,
		models.CheckoutStatusReleased,
		models.CheckoutStatusActive,
	} {
		var got models.Checkout
		require.NoError(t, db.First(&got, checkouts[i].ID).Error)
		require.Equal(t, want, got.Status, "checkout %d", i)
	}
}

func TestSweepSkipsAlreadyReleased(t *testing.T) {
	db := setupTestDB(t)
	fx := seedUserWithCart(t, db, "u1")
	product := seedProduct(t, db, "Widget", 100, 10)

	item := addCartItem(t, db, fx.cart, product, 5)
	checkout, err := CreateCheckout(db, testConfig(), fx.user.ID, CreateCheckoutRequest{
		CartItemIDs:       []uint{item.ID},
		ShippingAddressID: fx.address.ID,
	})
	require.NoError(t, err)
	expireCheckout(t, db, checkout.ID)

	// Cancelled between expiry and the sweep.
	require.NoError(t, CancelCheckout(db, fx.user.ID, checkout.ID))
	require.Equal(t, 10, productQuantity(t, db, product.ID))

	processed, failed := SweepExpiredCheckouts(db)
	require.Zero(t, processed)
	require.Zero(t, failed)
	require.Equal(t, 10, productQuantity(t, db, product.ID))
}

func TestSweepNothingToDo(t *testing.T) {
	db := setupTestDB(t)
	processed, failed := SweepExpiredCheckouts(db)
	require.Zero(t, processed)
	require.Zero(t, failed)
}
