package models

import "time"

type OrderStatus string

const (
	// Orders are created as PENDING_PAYMENT; the remaining values exist in
	// the schema but nothing transitions to them yet.
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

type Order struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string       `gorm:"not null" json:"email"`
	Name         string       `gorm:"not null" json:"name"`
	Phone        string       `json:"phone"`
	Total        float64      `gorm:"not null" json:"total"`
	DeliveryType DeliveryType `gorm:"type:VARCHAR(20);not null" json:"delivery_type"`
	Status       OrderStatus  `gorm:"type:VARCHAR(32);not null;default:'PENDING_PAYMENT'" json:"status"`
	Notes        string       `json:"notes"`
	AddressID    *uint        `json:"address_id,omitempty"`
	Address      *Address     `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items        []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time    `json:"created_at"`
}

// OrderItem is an immutable snapshot taken at placement time; later product
// edits do not change it.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Title     string  `gorm:"not null" json:"title"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	SubTotal  float64 `gorm:"not null" json:"sub_total"`
	ImageURL  string  `json:"image_url"`
}
