package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StoreSettings is append-only configuration; the most recent row wins.
type StoreSettings struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	MinimumOrderAmount decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"minimum_order_amount"`
	DeliveryCharge     decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"delivery_charge"`
	CreatedAt          time.Time       `json:"created_at"`
}

// LatestStoreSettings returns the most recently created settings row, or
// nil when none has been configured yet.
func LatestStoreSettings(db *gorm.DB) (*StoreSettings, error) {
	var settings StoreSettings
	err := db.Order("created_at DESC, id DESC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
