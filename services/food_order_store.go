package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/models"
)

// FoodOrderStore holds the fetched food order collection with line items,
// newest first. Status updates patch the cache only after the database
// write has succeeded.
type FoodOrderStore struct {
	mu      sync.RWMutex
	orders  []models.FoodOrder
	loading bool
}

var foodOrderStoreInstance *FoodOrderStore

// InitFoodOrderStore initializes the food order store and loads the
// collection.
func InitFoodOrderStore() *FoodOrderStore {
	s := &FoodOrderStore{}
	if err := s.Load(); err != nil {
		log.Printf("Error loading food orders: %v", err)
	}
	foodOrderStoreInstance = s
	return s
}

// GetFoodOrderStore returns the initialized food order store instance
func GetFoodOrderStore() *FoodOrderStore {
	return foodOrderStoreInstance
}

// SetFoodOrderStore sets the food order store instance (primarily for testing)
func SetFoodOrderStore(s *FoodOrderStore) {
	foodOrderStoreInstance = s
}

// Load fetches all orders with their items, newest first, replacing local
// state wholesale.
func (s *FoodOrderStore) Load() error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var orders []models.FoodOrder
	err := config.GetDB().Preload("Items").Order("created_at desc").Find(&orders).Error

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return fmt.Errorf("failed to fetch food orders: %w", err)
	}
	s.orders = orders
	return nil
}

// Refetch re-runs the initial fetch, replacing local state wholesale.
func (s *FoodOrderStore) Refetch() error {
	return s.Load()
}

// Orders returns a copy of the cached collection.
func (s *FoodOrderStore) Orders() []models.FoodOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]models.FoodOrder, len(s.orders))
	copy(orders, s.orders)
	return orders
}

// Loading reports whether a fetch is in flight.
func (s *FoodOrderStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Record prepends an already-persisted order to the cache. Used after the
// submission workflow has committed a new order.
func (s *FoodOrderStore) Record(order *models.FoodOrder) {
	s.mu.Lock()
	s.orders = append([]models.FoodOrder{*order}, s.orders...)
	s.mu.Unlock()
}

// UpdateStatus persists a new kitchen status and patches the cached entry
// on success.
func (s *FoodOrderStore) UpdateStatus(id uint, status string) (*models.FoodOrder, error) {
	return s.update(id, map[string]interface{}{"status": status})
}

// UpdatePaymentStatus persists a new payment status and patches the cached
// entry on success.
func (s *FoodOrderStore) UpdatePaymentStatus(id uint, paymentStatus string) (*models.FoodOrder, error) {
	return s.update(id, map[string]interface{}{"payment_status": paymentStatus})
}

func (s *FoodOrderStore) update(id uint, updates map[string]interface{}) (*models.FoodOrder, error) {
	db := config.GetDB()
	result := db.Model(&models.FoodOrder{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		log.Printf("Error updating food order %d: %v", id, result.Error)
		return nil, fmt.Errorf("failed to update food order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("food order %d not found", id)
	}

	var updated models.FoodOrder
	if err := db.Preload("Items").First(&updated, id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch updated food order: %w", err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return &updated, nil
}
