package models

import (
	"time"

	"gorm.io/gorm"
)

// Fashion design lifecycle statuses.
const (
	DesignStatusDraft    = "draft"
	DesignStatusInReview = "in-review"
	DesignStatusApproved = "approved"
	DesignStatusArchived = "archived"
)

// FashionDesign is a catalog entry for the fashion business.
type FashionDesign struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `gorm:"not null" json:"description"`
	Category       string         `gorm:"not null;index" json:"category"`
	DesignImages   []string       `gorm:"serializer:json" json:"design_images"`
	Status         string         `gorm:"not null;default:'draft'" json:"status"`
	TechnicalSpecs *string        `json:"technical_specs"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the FashionDesign model
func (FashionDesign) TableName() string {
	return "fashion_designs"
}
