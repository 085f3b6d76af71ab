package models

import "time"

// PickupAddress is a location where a producer hands goods to buyers.
// Independent of cart/order addresses.
type PickupAddress struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"not null;index" json:"user_id"`
	Name           string    `gorm:"not null" json:"name"`
	Street         string    `gorm:"not null" json:"street"`
	Number         string    `gorm:"not null" json:"number"`
	City           string    `gorm:"not null" json:"city"`
	State          string    `gorm:"not null" json:"state"`
	ZipCode        string    `gorm:"not null" json:"zip_code"`
	Country        string    `gorm:"not null;default:'España'" json:"country"`
	AdditionalInfo string    `json:"additional_info"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	IsActive       bool      `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
