package models

import (
	"time"

	"gorm.io/gorm"
)

// Food order statuses, in kitchen order.
const (
	FoodOrderStatusPending        = "pending"
	FoodOrderStatusPreparing      = "preparing"
	FoodOrderStatusReadyForPickup = "ready-for-pickup"
	FoodOrderStatusOutForDelivery = "out-for-delivery"
	FoodOrderStatusDelivered      = "delivered"
	FoodOrderStatusCancelled      = "cancelled"
)

// Payment statuses for a food order.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Food order fulfilment types.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeDelivery = "delivery"
)

// FoodOrder is a cart checkout record. TotalAmount is computed from the
// cart at submission time and must equal the sum of item subtotals plus
// the delivery fee when one applies.
type FoodOrder struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CustomerName    string          `gorm:"not null" json:"customer_name"`
	CustomerPhone   *string         `json:"customer_phone"`
	TotalAmount     float64         `gorm:"not null" json:"total_amount"`
	Status          string          `gorm:"not null;default:'pending'" json:"status"`
	PaymentStatus   string          `gorm:"not null;default:'pending'" json:"payment_status"`
	OrderType       string          `gorm:"not null" json:"order_type"`
	DeliveryAddress *string         `json:"delivery_address"`
	DeliveryFee     *float64        `json:"delivery_fee"`
	Notes           *string         `json:"notes"`
	Items           []FoodOrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the FoodOrder model
func (FoodOrder) TableName() string {
	return "food_orders"
}

// FoodOrderItem is one line of a food order. MenuItemName and UnitPrice are
// snapshots taken at checkout so later menu edits do not rewrite history.
type FoodOrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"not null;index" json:"order_id"`
	MenuItemID   uint    `gorm:"not null" json:"menu_item_id"`
	MenuItemName string  `gorm:"not null" json:"menu_item_name"`
	Quantity     int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice    float64 `gorm:"not null" json:"unit_price"`
	Notes        *string `json:"notes"`
}

// TableName specifies the table name for the FoodOrderItem model
func (FoodOrderItem) TableName() string {
	return "food_order_items"
}

// Subtotal returns quantity times the captured unit price.
func (i *FoodOrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
