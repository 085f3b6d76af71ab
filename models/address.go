package models

import "time"

// Address rows attached to an order are snapshots created for that order
// only; user addresses carry UserID and are reusable from the address book.
type Address struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Street    string    `gorm:"not null" json:"street"`
	Number    string    `gorm:"not null" json:"number"`
	City      string    `gorm:"not null" json:"city"`
	State     string    `gorm:"not null" json:"state"`
	ZipCode   string    `gorm:"not null" json:"zip_code"`
	Country   string    `gorm:"not null;default:'España'" json:"country"`
	UserID    *string   `gorm:"index" json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
