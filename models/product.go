package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement"`
	LVName        string  `gorm:"not null"` // Latvian Name
	RUName        string  // Russian Name
	ENName        string  // English Name
	LVDescription string  // Latvian Description
	RUDescription string  // Russian Description
	ENDescription string  // English Description
	SalePrice     float64 `gorm:"not null"` // Required
	RegularPrice  float64
	Image         string
	Categories    []Category `gorm:"many2many:product_categories;"`
	Stock         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
