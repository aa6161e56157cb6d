package checkoutControllers

import (
	"errors"
	"time"

	"github.com/Rajatkhanna801/store-backend/config"
	"github.com/Rajatkhanna801/store-backend/errs"
	"github.com/Rajatkhanna801/store-backend/metrics"
	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CreateCheckoutRequest struct {
	CartItemIDs       []uint `json:"cart_item_ids" binding:"required,min=1,dive,min=1"`
	ShippingAddressID uint   `json:"shipping_address_id" binding:"required"`
}

// -------- Core Logic --------

// CreateCheckout converts the selected active cart items into a time-boxed
// reservation. Everything runs in one transaction: validation, checkout and
// item creation, stock decrement, and removal of the consumed cart items
// commit together or not at all.
func CreateCheckout(db *gorm.DB, cfg config.CheckoutConfig, userID string, req CreateCheckoutRequest) (*models.Checkout, error) {
	var checkout models.Checkout

	err := db.Transaction(func(tx *gorm.DB) error {
		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", req.ShippingAddressID, userID).
			First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Validation("shipping address not found")
			}
			return err
		}

		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Validation("no valid cart items found")
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Where("id IN ? AND cart_id = ? AND status = ?",
			req.CartItemIDs, cart.ID, models.CartItemStatusActive).
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return errs.Validation("no valid cart items found")
		}

		products := make(map[uint]*models.Product, len(items))
		for _, item := range items {
			if _, ok := products[item.ProductID]; ok {
				continue
			}
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			products[item.ProductID] = &product
		}

		minAmount := cfg.MinimumOrderAmount
		settings, err := models.LatestStoreSettings(tx)
		if err != nil {
			return err
		}
		if settings != nil {
			minAmount = settings.MinimumOrderAmount
		}

		total := decimal.Zero
		for _, item := range items {
			price := products[item.ProductID].EffectivePrice()
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		if total.LessThan(minAmount) {
			return errs.Validation("order total %s is below the minimum order amount %s",
				total.StringFixed(2), minAmount.StringFixed(2))
		}

		// Batch stock validation: collect every shortfall, not just the first.
		var shortfalls []errs.StockShortfall
		for _, item := range items {
			product := products[item.ProductID]
			if item.Quantity > product.Quantity {
				shortfalls = append(shortfalls, errs.StockShortfall{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   item.Quantity,
					Available:   product.Quantity,
				})
			}
		}
		if len(shortfalls) > 0 {
			return &errs.InsufficientStockError{Shortfalls: shortfalls}
		}

		checkout = models.Checkout{
			UserID:            userID,
			ShippingAddressID: address.ID,
			Status:            models.CheckoutStatusActive,
			ExpiresAt:         time.Now().Add(cfg.TTL),
		}
		if err := tx.Create(&checkout).Error; err != nil {
			return err
		}

		for _, item := range items {
			product := products[item.ProductID]
			checkoutItem := models.CheckoutItem{
				CheckoutID:      checkout.ID,
				ProductID:       product.ID,
				Quantity:        item.Quantity,
				PriceAtCheckout: product.EffectivePrice(),
			}
			if err := tx.Create(&checkoutItem).Error; err != nil {
				return err
			}
			// The reservation itself: stock is held, not just checked.
			if err := models.ReserveProductStock(tx, product.ID, item.Quantity); err != nil {
				if errors.Is(err, models.ErrInsufficientStock) {
					return &errs.InsufficientStockError{Shortfalls: []errs.StockShortfall{{
						ProductID:   product.ID,
						ProductName: product.Name,
						Requested:   item.Quantity,
						Available:   product.Quantity,
					}}}
				}
				return err
			}
		}

		// The consumed items move from cart to checkout. Delete by the
		// resolved ids only; a saved-for-later id slipped into the request
		// was never reserved and must stay in the cart.
		consumed := make([]uint, len(items))
		for i, item := range items {
			consumed[i] = item.ID
		}
		return tx.Where("id IN ?", consumed).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.CheckoutsCreated.Inc()

	if err := db.Preload("Items").Preload("Items.Product").Preload("ShippingAddress").
		First(&checkout, checkout.ID).Error; err != nil {
		return nil, err
	}
	return &checkout, nil
}

// GetCheckout loads a user's checkout. Reading an expired-but-still-active
// checkout triggers the release transition in place and reports expiry to
// the caller instead of returning checkout data.
func GetCheckout(db *gorm.DB, userID string, checkoutID uint) (*models.Checkout, error) {
	var checkout models.Checkout
	err := db.Preload("Items").Preload("Items.Product").Preload("ShippingAddress").
		Where("id = ? AND user_id = ?", checkoutID, userID).
		First(&checkout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Validation("checkout not found")
	}
	if err != nil {
		return nil, err
	}

	if checkout.Status == models.CheckoutStatusActive && checkout.Expired() {
		if err := ReleaseCheckout(db, checkout.ID); err != nil && !errors.Is(err, errs.ErrCheckoutNotActive) {
			return nil, err
		}
		return nil, errs.ErrCheckoutExpired
	}
	return &checkout, nil
}

// CancelCheckout releases an active checkout and restores its reserved
// stock. Cancelling an already-inactive checkout fails with a state
// conflict and has no side effects.
func CancelCheckout(db *gorm.DB, userID string, checkoutID uint) error {
	var checkout models.Checkout
	err := db.Where("id = ? AND user_id = ?", checkoutID, userID).First(&checkout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Validation("checkout not found")
	}
	if err != nil {
		return err
	}
	if checkout.Status != models.CheckoutStatusActive {
		return errs.ErrCheckoutNotActive
	}
	return ReleaseCheckout(db, checkout.ID)
}

// ReleaseCheckout runs the shared expire/release transition in its own
// transaction: flip the checkout out of the active state and credit every
// reserved quantity back to its product. The guarded status flip makes the
// transition idempotent at the checkout level, so concurrent triggers
// (cancel, expiry-on-read, sweeper, finalize racing) can never credit
// inventory twice.
func ReleaseCheckout(db *gorm.DB, checkoutID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return releaseCheckout(tx, checkoutID)
	})
	if err != nil {
		return err
	}
	metrics.CheckoutsReleased.Inc()
	return nil
}

// releaseCheckout must run inside a transaction. Item rows are kept as an
// audit trail of what the released checkout held.
func releaseCheckout(tx *gorm.DB, checkoutID uint) error {
	res := tx.Model(&models.Checkout{}).
		Where("id = ? AND status = ?", checkoutID, models.CheckoutStatusActive).
		Update("status", models.CheckoutStatusReleased)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race: another transition already consumed this checkout.
		return errs.ErrCheckoutNotActive
	}

	var items []models.CheckoutItem
	if err := tx.Where("checkout_id = ?", checkoutID).Find(&items).Error; err != nil {
		return err
	}
	for _, item := range items {
		if err := models.RestoreProductStock(tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
