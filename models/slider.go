package models

import "time"

// Slider is a homepage hero slide managed from the admin panel.
type Slider struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	LVCaption string    `json:"lv_caption"`
	RUCaption string    `json:"ru_caption"`
	ENCaption string    `json:"en_caption"`
	LinkURL   string    `json:"link_url"`
	SortOrder int       `gorm:"index" json:"sort_order"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
