package models

import "time"

type Customer struct {
	ID            string  `gorm:"primaryKey" json:"id"`
	Email         string  `gorm:"unique;not null" json:"email"`
	EmailVerified bool    `json:"email_verified"`
	Phone         string  `json:"phone"`
	Name          string  `json:"name"`
	Picture       string  `json:"picture"`
	Provider      string  `json:"provider"`
	Address       Address `gorm:"embedded" json:"address"` // Embeds address fields directly
	Cart          *Cart   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	Orders        []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Address model embedded in Customer
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}
