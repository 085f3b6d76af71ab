package models

import "time"

type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "PICKUP"
	DeliveryShipping DeliveryType = "SHIPPING"
)

// Cart is owned by exactly one of UserID or SessionID. Neither column is
// unique-constrained; lookups always order by created_at DESC and take the
// newest row.
type Cart struct {
	ID           string       `gorm:"primaryKey" json:"id"`
	UserID       *string      `gorm:"index" json:"user_id,omitempty"`
	SessionID    *string      `gorm:"index" json:"session_id,omitempty"`
	AddressID    *uint        `json:"address_id,omitempty"`
	Address      *Address     `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	DeliveryType DeliveryType `gorm:"type:VARCHAR(20);not null;default:'PICKUP'" json:"delivery_type"`
	Total        float64      `gorm:"not null;default:0" json:"total"`
	Items        []CartItem   `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    string    `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	SubTotal  float64   `gorm:"not null" json:"sub_total"` // quantity x product price at mutation time
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
