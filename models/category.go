package models

import "time"

// Category forms a three level tree: level 1 has no parent, levels 2 and 3
// hang from a parent with a strictly lower level.
type Category struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	IDName    string     `gorm:"uniqueIndex;not null" json:"id_name"` // slug derived from Name
	Level     int        `gorm:"not null" json:"level"`
	ParentID  *uint      `json:"parent_id,omitempty"`
	Parent    *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children  []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Products  []Product  `gorm:"many2many:product_categories" json:"products,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
