package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/models"
)

// DesignStore holds the fetched fashion design collection, newest first.
// Same caching contract as MenuStore: the cache only changes after a
// successful database call.
type DesignStore struct {
	mu      sync.RWMutex
	designs []models.FashionDesign
	loading bool
}

var designStoreInstance *DesignStore

// InitDesignStore initializes the design store and loads the collection.
func InitDesignStore() *DesignStore {
	s := &DesignStore{}
	if err := s.Load(); err != nil {
		log.Printf("Error loading fashion designs: %v", err)
	}
	designStoreInstance = s
	return s
}

// GetDesignStore returns the initialized design store instance
func GetDesignStore() *DesignStore {
	return designStoreInstance
}

// SetDesignStore sets the design store instance (primarily for testing)
func SetDesignStore(s *DesignStore) {
	designStoreInstance = s
}

// Load fetches the full collection ordered by creation time descending.
func (s *DesignStore) Load() error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var designs []models.FashionDesign
	err := config.GetDB().Order("created_at desc").Find(&designs).Error

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return fmt.Errorf("failed to fetch fashion designs: %w", err)
	}
	s.designs = designs
	return nil
}

// Refetch re-runs the initial fetch, replacing local state wholesale.
func (s *DesignStore) Refetch() error {
	return s.Load()
}

// Designs returns a copy of the cached collection.
func (s *DesignStore) Designs() []models.FashionDesign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	designs := make([]models.FashionDesign, len(s.designs))
	copy(designs, s.designs)
	return designs
}

// Loading reports whether a fetch is in flight.
func (s *DesignStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Add persists a new design and prepends it to the cache on success,
// keeping the newest-first ordering.
func (s *DesignStore) Add(design *models.FashionDesign) error {
	if err := config.GetDB().Create(design).Error; err != nil {
		log.Printf("Error adding fashion design: %v", err)
		return fmt.Errorf("failed to add fashion design: %w", err)
	}

	s.mu.Lock()
	s.designs = append([]models.FashionDesign{*design}, s.designs...)
	s.mu.Unlock()
	return nil
}

// Update persists a partial change and replaces the matching cached entry
// on success.
func (s *DesignStore) Update(id uint, updates map[string]interface{}) (*models.FashionDesign, error) {
	db := config.GetDB()
	result := db.Model(&models.FashionDesign{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		log.Printf("Error updating fashion design %d: %v", id, result.Error)
		return nil, fmt.Errorf("failed to update fashion design: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("fashion design %d not found", id)
	}

	var updated models.FashionDesign
	if err := db.First(&updated, id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch updated fashion design: %w", err)
	}

	s.mu.Lock()
	for i := range s.designs {
		if s.designs[i].ID == id {
			s.designs[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return &updated, nil
}

// Delete removes the row and filters it out of the cache on success.
func (s *DesignStore) Delete(id uint) error {
	result := config.GetDB().Delete(&models.FashionDesign{}, id)
	if result.Error != nil {
		log.Printf("Error deleting fashion design %d: %v", id, result.Error)
		return fmt.Errorf("failed to delete fashion design: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("fashion design %d not found", id)
	}

	s.mu.Lock()
	filtered := s.designs[:0]
	for _, design := range s.designs {
		if design.ID != id {
			filtered = append(filtered, design)
		}
	}
	s.designs = filtered
	s.mu.Unlock()
	return nil
}
