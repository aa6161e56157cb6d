package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	checkoutControllers "github.com/Rajatkhanna801/store-backend/controllers/checkout"

	"github.com/Rajatkhanna801/store-backend/config"
	"github.com/Rajatkhanna801/store-backend/errs"
	"github.com/Rajatkhanna801/store-backend/metrics"
	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CreateOrderRequest struct {
	CheckoutID uint   `json:"checkout_id" binding:"required"`
	Notes      string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(status) {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return models.OrderStatus(status), nil
	default:
		return "", errs.Validation("invalid order status %q", status)
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch models.PaymentStatus(status) {
	case models.PaymentStatusPending, models.PaymentStatusPaid,
		models.PaymentStatusFailed, models.PaymentStatusRefunded:
		return models.PaymentStatus(status), nil
	default:
		return "", errs.Validation("invalid payment status %q", status)
	}
}

// Generate unique order reference, e.g. 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// generateUPIPaymentData renders the static payment-reference string the
// client turns into a QR code.
func generateUPIPaymentData(merchantVPA string, amount decimal.Decimal, orderID uint) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=Store&am=%s&tn=Order#%d&cu=INR",
		merchantVPA, amount.StringFixed(2), orderID)
}

// -------- Core Logic --------

// CreateOrderFromCheckout converts an active, non-expired checkout into a
// permanent order. Stock was already decremented when the checkout was
// created, so no inventory moves here: the reservation is transferred, not
// re-applied. An expired checkout is released instead and the expiry is
// reported to the caller.
func CreateOrderFromCheckout(db *gorm.DB, cfg config.CheckoutConfig, userID string, checkoutID uint, notes string) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var checkout models.Checkout
		err := tx.Where("id = ? AND user_id = ?", checkoutID, userID).
			First(&checkout).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Validation("checkout not found")
		}
		if err != nil {
			return err
		}
		if checkout.Status != models.CheckoutStatusActive {
			return errs.ErrCheckoutNotActive
		}
		if checkout.Expired() {
			// Roll back and let the caller-side release run in its own
			// transaction; a failed order must leave the checkout intact.
			return errs.ErrCheckoutExpired
		}

		var checkoutItems []models.CheckoutItem
		if err := tx.Preload("Product").
			Where("checkout_id = ?", checkout.ID).
			Find(&checkoutItems).Error; err != nil {
			return err
		}

		order = models.Order{
			OrderRef:          generateOrderRef(),
			UserID:            userID,
			ShippingAddressID: checkout.ShippingAddressID,
			Status:            models.OrderStatusPending,
			PaymentStatus:     models.PaymentStatusPending,
			Notes:             notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		subtotal := decimal.Zero
		for _, item := range checkoutItems {
			price := item.PriceAtCheckout
			if price.IsZero() {
				// Snapshot missing; should not normally occur.
				price = item.Product.EffectivePrice()
			}
			orderItem := models.OrderItem{
				OrderID:         order.ID,
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				PriceAtPurchase: price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			subtotal = subtotal.Add(orderItem.TotalPrice())
		}

		// Guarded flip active → finalized; losing the race to a concurrent
		// release means the reservation is gone and no order may be built
		// from it.
		res := tx.Model(&models.Checkout{}).
			Where("id = ? AND status = ?", checkout.ID, models.CheckoutStatusActive).
			Update("status", models.CheckoutStatusFinalized)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrCheckoutNotActive
		}

		// The items now live on the order.
		if err := tx.Where("checkout_id = ?", checkout.ID).
			Delete(&models.CheckoutItem{}).Error; err != nil {
			return err
		}

		delivery := cfg.DeliveryCharge
		settings, err := models.LatestStoreSettings(tx)
		if err != nil {
			return err
		}
		if settings != nil {
			delivery = settings.DeliveryCharge
		}

		order.PaymentQRData = generateUPIPaymentData(cfg.MerchantVPA, subtotal.Add(delivery), order.ID)
		return tx.Model(&order).Update("payment_qr_data", order.PaymentQRData).Error
	})
	if errors.Is(err, errs.ErrCheckoutExpired) {
		if rerr := checkoutControllers.ReleaseCheckout(db, checkoutID); rerr != nil && !errors.Is(rerr, errs.ErrCheckoutNotActive) {
			log.Printf("❌ Failed to release expired checkout %d: %v", checkoutID, rerr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	metrics.CheckoutsFinalized.Inc()

	if err := db.Preload("Items").Preload("Items.Product").Preload("ShippingAddress").
		First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	broadcastNewOrder(order)
	return &order, nil
}
