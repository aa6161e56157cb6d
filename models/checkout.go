package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutStatus is the explicit state of a checkout's lifecycle:
// active → finalized (consumed by an order) | released (cancelled or
// expired, stock credited back). There is no way back to active.
type CheckoutStatus string

const (
	CheckoutStatusActive    CheckoutStatus = "active"
	CheckoutStatusFinalized CheckoutStatus = "finalized"
	CheckoutStatusReleased  CheckoutStatus = "released"
)

// Checkout is a time-boxed reservation: its items hold product stock until
// it is finalized into an order, cancelled, or expires.
type Checkout struct {
	ID                uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            string         `gorm:"not null;index:idx_checkouts_user_status" json:"user_id"`
	User              User           `gorm:"foreignKey:UserID" json:"-"`
	ShippingAddressID uint           `gorm:"not null" json:"shipping_address_id"`
	ShippingAddress   Address        `gorm:"foreignKey:ShippingAddressID" json:"shipping_address"`
	Status            CheckoutStatus `gorm:"type:VARCHAR(20);not null;default:'active';index:idx_checkouts_user_status;index" json:"status"`
	ExpiresAt         time.Time      `gorm:"not null;index" json:"expires_at"`
	Items             []CheckoutItem `gorm:"foreignKey:CheckoutID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (ck *Checkout) Expired() bool {
	return time.Now().After(ck.ExpiresAt)
}

// TimeUntilExpiry is the remaining reservation window, zero once expired.
func (ck *Checkout) TimeUntilExpiry() time.Duration {
	if remaining := time.Until(ck.ExpiresAt); remaining > 0 {
		return remaining
	}
	return 0
}

type CheckoutItem struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CheckoutID uint    `gorm:"not null;index" json:"checkout_id"`
	ProductID  uint    `gorm:"not null" json:"product_id"`
	Product    Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity   int     `gorm:"not null;default:1" json:"quantity"`
	// PriceAtCheckout is the effective price snapshotted at reservation
	// time, decoupled from later product price changes.
	PriceAtCheckout decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price_at_checkout"`
	CreatedAt       time.Time       `json:"created_at"`
}
