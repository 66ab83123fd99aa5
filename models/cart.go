package models

import "time"

// Cart is owned by exactly one of GuestID / CustomerID. Ownership is
// monotonic: once CustomerID is set the cart never reverts to guest-owned.
type Cart struct {
	CartID     uint       `gorm:"primaryKey" json:"cart_id"`
	GuestID    *string    `gorm:"uniqueIndex" json:"guest_id,omitempty"`    // One cart per guest
	CustomerID *string    `gorm:"uniqueIndex" json:"customer_id,omitempty"` // One cart per customer
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index:idx_cart_product,unique" json:"cart_id"`
	ProductID uint      `gorm:"index:idx_cart_product,unique" json:"product_id"` // At most one row per (cart, product)
	LVName    string    `json:"lv_name"` // Latvian name snapshot
	RUName    string    `json:"ru_name"` // Russian name snapshot
	ENName    string    `json:"en_name"` // English name snapshot
	Image     string    `json:"image"`
	Price     float64   `json:"price"` // Unit price snapshot
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
