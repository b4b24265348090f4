package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem is a catalog entry for the food business. Read-mostly from the
// storefront; created and edited from the admin dashboard.
type MenuItem struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	Name            string             `gorm:"not null" json:"name"`
	Description     *string            `json:"description"`
	Category        string             `gorm:"not null;index" json:"category"`
	Price           float64            `gorm:"not null" json:"price"`
	Available       bool               `gorm:"not null;default:true" json:"available"`
	ImageURL        *string            `json:"image_url"`
	Ingredients     []string           `gorm:"serializer:json" json:"ingredients"`
	Allergens       []string           `gorm:"serializer:json" json:"allergens"`
	NutritionalInfo map[string]string  `gorm:"serializer:json" json:"nutritional_info"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
