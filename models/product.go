package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Description string    `json:"description"`
	Products    []Product `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID              uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID      uint             `gorm:"index" json:"category_id"`
	Category        Category         `gorm:"foreignKey:CategoryID" json:"category"`
	Name            string           `gorm:"not null;index" json:"name"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `gorm:"not null;type:decimal(12,2)" json:"price"`
	DiscountedPrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"discounted_price"`
	Quantity        int              `gorm:"not null;default:0" json:"quantity"` // current stock
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// EffectivePrice is the discounted price when one is set and lower than the
// base price, otherwise the base price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil && p.DiscountedPrice.LessThan(p.Price) {
		return *p.DiscountedPrice
	}
	return p.Price
}

// ErrInsufficientStock is returned by ReserveProductStock when the guarded
// decrement matches no row, i.e. stock cannot cover the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// ReserveProductStock decrements a product's stock with a single conditional
// update. The WHERE quantity >= ? guard makes concurrent reservations safe:
// two callers racing over the same product can never drive stock negative.
// This is the only stock-decrementing write in the codebase.
func ReserveProductStock(tx *gorm.DB, productID uint, quantity int) error {
	res := tx.Model(&Product{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// RestoreProductStock credits reserved stock back to a product when a
// checkout is cancelled or expires.
func RestoreProductStock(tx *gorm.DB, productID uint, quantity int) error {
	return tx.Model(&Product{}).
		Where("id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

// ProductReferenced reports whether any cart, checkout or order item still
// points at the product. Referenced products are delete-protected.
func ProductReferenced(db *gorm.DB, productID uint) (bool, error) {
	var count int64
	for _, model := range []any{&CartItem{}, &CheckoutItem{}, &OrderItem{}} {
		if err := db.Model(model).Where("product_id = ?", productID).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
