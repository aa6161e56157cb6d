package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses"`
	Cart      Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Address is a shipping address owned by a user. Checkouts and orders
// reference it by id; it must not be deleted while referenced.
type Address struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"not null;index:idx_addresses_user_default" json:"user_id"`
	Label     string    `json:"label"` // Home, Work, etc.
	Line1     string    `gorm:"not null" json:"line1"`
	Line2     string    `json:"line2"`
	City      string    `gorm:"not null" json:"city"`
	State     string    `json:"state"`
	Country   string    `gorm:"default:'India'" json:"country"`
	Pincode   string    `gorm:"not null" json:"pincode"`
	IsDefault bool      `gorm:"index:idx_addresses_user_default" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
