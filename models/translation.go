package models

import "time"

// Translation is a runtime-editable UI string. The storefront loads the
// full key/value map per locale instead of shipping static message files.
type Translation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Locale    string    `gorm:"index:idx_locale_key,unique;not null" json:"locale"` // "lv", "ru", "en"
	Key       string    `gorm:"index:idx_locale_key,unique;not null" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
