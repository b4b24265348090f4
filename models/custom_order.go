package models

import (
	"time"

	"gorm.io/gorm"
)

// Custom order submission statuses. Only admin-side updates move an order
// out of "submitted"; the client never deletes a submission.
const (
	CustomOrderStatusSubmitted  = "submitted"
	CustomOrderStatusReviewed   = "reviewed"
	CustomOrderStatusAccepted   = "accepted"
	CustomOrderStatusInProgress = "in-progress"
	CustomOrderStatusCompleted  = "completed"
	CustomOrderStatusRejected   = "rejected"
)

// CustomMeasurements holds the measurements supplied when size is "custom".
// All fields are optional; centimetres.
type CustomMeasurements struct {
	Bust     *float64 `json:"bust,omitempty"`
	Waist    *float64 `json:"waist,omitempty"`
	Hip      *float64 `json:"hip,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Shoulder *float64 `json:"shoulder,omitempty"`
}

// DeliveryAddress is the structured shipping destination for a custom order.
type DeliveryAddress struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// CustomOrderSubmission is a customer request for a bespoke fashion item,
// created by the order submission workflow once all reference images have
// been uploaded, and reviewed by staff afterwards.
type CustomOrderSubmission struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	Name              string              `gorm:"not null" json:"name"`
	Email             string              `gorm:"not null;index" json:"email"`
	Phone             string              `gorm:"not null" json:"phone"`
	OrderType         string              `gorm:"not null" json:"order_type"`
	OtherOrderType    *string             `json:"other_order_type"`
	Description       string              `gorm:"not null" json:"description"`
	Size              string              `gorm:"not null" json:"size"`
	CustomSize        *CustomMeasurements `gorm:"serializer:json" json:"custom_size"`
	Budget            float64             `gorm:"not null" json:"budget"`
	Timeline          string              `gorm:"not null" json:"timeline"`
	ReferenceImages   []string            `gorm:"serializer:json" json:"reference_images"`
	FabricPreferences *string             `json:"fabric_preferences"`
	DeliveryAddress   DeliveryAddress     `gorm:"serializer:json" json:"delivery_address"`
	AdditionalNotes   *string             `json:"additional_notes"`
	Status            string              `gorm:"not null;default:'submitted'" json:"status"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	DeletedAt         gorm.DeletedAt      `gorm:"index" json:"-"`
}

// TableName specifies the table name for the CustomOrderSubmission model
func (CustomOrderSubmission) TableName() string {
	return "custom_order_submissions"
}
