package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (fulfillment state, independent of payment)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by seller
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the item
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

type Order struct {
	ID                uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef          string        `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID            string        `gorm:"not null;index" json:"user_id"`
	User              User          `gorm:"foreignKey:UserID" json:"-"`
	ShippingAddressID uint          `gorm:"not null" json:"shipping_address_id"`
	ShippingAddress   Address       `gorm:"foreignKey:ShippingAddressID" json:"shipping_address"`
	Status            OrderStatus   `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:VARCHAR(20);default:'pending';index" json:"payment_status"`
	// PaymentQRData is the UPI deeplink rendered as a QR code client-side.
	// Set once at order creation, immutable afterwards.
	PaymentQRData string      `gorm:"type:VARCHAR(512)" json:"payment_qr_data"`
	Notes         string      `json:"notes"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Subtotal sums price_at_purchase x quantity over the order's items.
// Requires preloaded items.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	// PriceAtPurchase is copied from the checkout item's snapshot at
	// order-creation time.
	PriceAtPurchase decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price_at_purchase"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (it *OrderItem) TotalPrice() decimal.Decimal {
	return it.PriceAtPurchase.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// OrderTotalAmount is the order subtotal plus the currently configured
// delivery charge. Computed on every read, never stored, so it always
// combines immutable line-item snapshots with live delivery configuration.
func OrderTotalAmount(db *gorm.DB, o *Order, fallbackDeliveryCharge decimal.Decimal) (decimal.Decimal, error) {
	delivery := fallbackDeliveryCharge
	settings, err := LatestStoreSettings(db)
	if err != nil {
		return decimal.Zero, err
	}
	if settings != nil {
		delivery = settings.DeliveryCharge
	}
	return o.Subtotal().Add(delivery), nil
}
