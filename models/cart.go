package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItemStatus string

const (
	CartItemStatusActive CartItemStatus = "active"
	CartItemStatusSaved  CartItemStatus = "saved_for_later"
)

type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one line in a cart. A product may appear once per status
// bucket, so the same product can be both active and saved for later.
type CartItem struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint           `gorm:"not null;uniqueIndex:idx_cart_product_status" json:"cart_id"`
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_product_status" json:"product_id"`
	Product   Product        `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	Status    CartItemStatus `gorm:"type:VARCHAR(20);not null;default:'active';uniqueIndex:idx_cart_product_status" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CartSubtotalDetails sums the active items of a cart. Requires items with
// preloaded products. Returns the undiscounted total, the effective total,
// and the difference between the two.
func CartSubtotalDetails(items []CartItem) (actual, total, discount decimal.Decimal) {
	for _, item := range items {
		if item.Status != CartItemStatusActive {
			continue
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		actual = actual.Add(item.Product.Price.Mul(qty))
		total = total.Add(item.Product.EffectivePrice().Mul(qty))
	}
	discount = actual.Sub(total)
	return actual, total, discount
}
