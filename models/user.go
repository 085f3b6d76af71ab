package models

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProducer Role = "PRODUCER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Email           string          `gorm:"unique;not null" json:"email"`
	Password        string          `gorm:"not null" json:"-"`
	Roles           []Role          `gorm:"serializer:json" json:"roles"`
	Products        []Product       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	Addresses       []Address       `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	PickupAddresses []PickupAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"pickup_addresses,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// HasRole reports whether the user carries any of the given roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
