package models

type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	LVName   string `gorm:"unique;not null"`
	RUName   string `gorm:"unique;not null"`
	ENName   string
	Image    string
	Products []Product `gorm:"many2many:product_categories"`
}
