package services

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"

	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/utils"
)

// ErrSubmissionInFlight is returned when a submission starts while another
// one is still running on the same workflow instance.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// CustomOrderForm is the validated payload for a bespoke fashion order.
type CustomOrderForm struct {
	Name              string                     `json:"name" binding:"required"`
	Email             string                     `json:"email" binding:"required,email"`
	Phone             string                     `json:"phone" binding:"required"`
	OrderType         string                     `json:"order_type" binding:"required,oneof=dress top skirt pants suit other"`
	OtherOrderType    string                     `json:"other_order_type" binding:"required_if=OrderType other"`
	Description       string                     `json:"description" binding:"required,min=20"`
	Size              string                     `json:"size" binding:"required,oneof=xs s m l xl xxl custom"`
	CustomSize        *models.CustomMeasurements `json:"custom_size"`
	Budget            float64                    `json:"budget" binding:"required,gte=5000"`
	Timeline          string                     `json:"timeline" binding:"required,oneof=standard rush flexible"`
	FabricPreferences string                     `json:"fabric_preferences"`
	DeliveryAddress   models.DeliveryAddress     `json:"delivery_address" binding:"required"`
	AdditionalNotes   string                     `json:"additional_notes"`
}

// Validate runs the binding-tag validation outside of a request context.
func (f *CustomOrderForm) Validate() error {
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(f)
}

// FoodCartItem is one cart line at checkout. The name and unit price are
// snapshots of the menu item at submission time.
type FoodCartItem struct {
	MenuItemID   uint    `json:"menu_item_id" binding:"required"`
	MenuItemName string  `json:"menu_item_name" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gte=1"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
	Notes        string  `json:"notes"`
}

// FoodOrderForm is the validated payload for a food cart checkout.
type FoodOrderForm struct {
	CustomerName    string         `json:"customer_name" binding:"required"`
	CustomerPhone   string         `json:"customer_phone"`
	OrderType       string         `json:"order_type" binding:"required,oneof=dine-in takeaway delivery"`
	DeliveryAddress string         `json:"delivery_address" binding:"required_if=OrderType delivery"`
	DeliveryFee     *float64       `json:"delivery_fee"`
	Notes           string         `json:"notes"`
	Items           []FoodCartItem `json:"items" binding:"required,min=1,dive"`
}

// Validate runs the binding-tag validation outside of a request context.
func (f *FoodOrderForm) Validate() error {
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(f)
}

// Total computes the order total from the cart: Σ quantity×unit_price plus
// the delivery fee when one applies.
func (f *FoodOrderForm) Total() float64 {
	total := 0.0
	for _, item := range f.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	if f.DeliveryFee != nil {
		total += *f.DeliveryFee
	}
	return total
}

// OrderService holds the storage backend for order submissions and hands
// out per-caller workflows.
type OrderService struct {
	storage StorageInterface
}

// OrderWorkflow runs one caller's submission pipeline: validation,
// sequential reference-image uploads, then persistence. The in-flight
// guard and the progress counter live on the workflow, so one caller's
// submission never blocks another's; concurrent callers create independent
// rows. One submission may be in flight per workflow; the progress counter
// is a per-file heuristic, not a byte-level signal.
type OrderWorkflow struct {
	storage StorageInterface

	mu         sync.Mutex
	submitting bool
	progress   int
	progressFn func(int)
}

var orderServiceInstance *OrderService

// InitOrderService initializes the order service with a storage backend
func InitOrderService(storage StorageInterface) *OrderService {
	orderServiceInstance = &OrderService{storage: storage}
	return orderServiceInstance
}

// GetOrderService returns the initialized order service instance
func GetOrderService() *OrderService {
	return orderServiceInstance
}

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(s *OrderService) {
	orderServiceInstance = s
}

// NewWorkflow returns a fresh workflow for one caller's submission.
func (s *OrderService) NewWorkflow() *OrderWorkflow {
	return &OrderWorkflow{storage: s.storage}
}

// SetProgressFunc registers an optional callback invoked on every progress
// change during a submission.
func (s *OrderWorkflow) SetProgressFunc(fn func(int)) {
	s.mu.Lock()
	s.progressFn = fn
	s.mu.Unlock()
}

// Progress returns the current upload progress percentage.
func (s *OrderWorkflow) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// SubmitCustomOrder validates the form, uploads the attached reference
// images in order, then inserts the submission row with the resolved URLs.
// Any failure aborts the remaining steps; files already uploaded are left
// in the bucket.
func (s *OrderWorkflow) SubmitCustomOrder(form *CustomOrderForm, files []*multipart.FileHeader) (*models.CustomOrderSubmission, error) {
	// Validate before any network call
	if err := form.Validate(); err != nil {
		return nil, err
	}
	for _, fh := range files {
		if err := utils.ValidateImageFile(fh); err != nil {
			return nil, err
		}
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	// Upload reference images sequentially, accumulating public URLs in
	// attachment order. Progress advances as each file completes and stays
	// below 100 until every upload has finished.
	urls := make([]string, 0, len(files))
	for i, fh := range files {
		key := utils.StorageKey("custom-orders", time.Now().UnixMilli(), fmt.Sprintf("%d-%s", i, fh.Filename))
		if _, err := s.storage.UploadFile(fh, key); err != nil {
			log.Printf("Error uploading reference image %d: %v", i+1, err)
			return nil, fmt.Errorf("failed to upload reference image: %w", err)
		}
		urls = append(urls, s.storage.PublicURL(key))

		pct := (i + 1) * 100 / len(files)
		if pct > 95 {
			pct = 95
		}
		s.setProgress(pct)
	}

	order := &models.CustomOrderSubmission{
		Name:            form.Name,
		Email:           form.Email,
		Phone:           form.Phone,
		OrderType:       form.OrderType,
		Description:     form.Description,
		Size:            form.Size,
		CustomSize:      form.CustomSize,
		Budget:          form.Budget,
		Timeline:        form.Timeline,
		ReferenceImages: urls,
		DeliveryAddress: form.DeliveryAddress,
		Status:          models.CustomOrderStatusSubmitted,
	}
	if form.OtherOrderType != "" {
		order.OtherOrderType = &form.OtherOrderType
	}
	if form.FabricPreferences != "" {
		order.FabricPreferences = &form.FabricPreferences
	}
	if form.AdditionalNotes != "" {
		order.AdditionalNotes = &form.AdditionalNotes
	}

	db := config.GetDB()
	if err := db.Create(order).Error; err != nil {
		log.Printf("Error creating custom order submission: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.setProgress(100)
	return order, nil
}

// SubmitFoodOrder validates the cart, computes the total, and writes the
// order header and its item rows in one transaction.
func (s *OrderWorkflow) SubmitFoodOrder(form *FoodOrderForm) (*models.FoodOrder, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	order := &models.FoodOrder{
		CustomerName:  form.CustomerName,
		TotalAmount:   form.Total(),
		Status:        models.FoodOrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		OrderType:     form.OrderType,
		DeliveryFee:   form.DeliveryFee,
	}
	if form.CustomerPhone != "" {
		order.CustomerPhone = &form.CustomerPhone
	}
	if form.DeliveryAddress != "" {
		order.DeliveryAddress = &form.DeliveryAddress
	}
	if form.Notes != "" {
		order.Notes = &form.Notes
	}

	db := config.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create food order: %w", err)
		}

		items := make([]models.FoodOrderItem, 0, len(form.Items))
		for _, line := range form.Items {
			item := models.FoodOrderItem{
				OrderID:      order.ID,
				MenuItemID:   line.MenuItemID,
				MenuItemName: line.MenuItemName,
				Quantity:     line.Quantity,
				UnitPrice:    line.UnitPrice,
			}
			if line.Notes != "" {
				notes := line.Notes
				item.Notes = &notes
			}
			items = append(items, item)
		}

		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create food order items: %w", err)
		}

		order.Items = items
		return nil
	})
	if err != nil {
		log.Printf("Error creating food order: %v", err)
		return nil, err
	}

	s.setProgress(100)
	return order, nil
}

func (s *OrderWorkflow) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmissionInFlight
	}
	s.submitting = true
	s.progress = 0
	return nil
}

func (s *OrderWorkflow) end() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

func (s *OrderWorkflow) setProgress(pct int) {
	s.mu.Lock()
	s.progress = pct
	fn := s.progressFn
	s.mu.Unlock()

	if fn != nil {
		fn(pct)
	}
}
