package services

import (
	"fmt"
	"log"
	"sync"

	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/models"
)

// MenuStore holds the fetched menu collection and keeps it in sync with the
// database. The cached slice is only patched after a database call has
// succeeded, so it never shows a row that failed to persist.
type MenuStore struct {
	mu      sync.RWMutex
	items   []models.MenuItem
	loading bool
	loaded  bool
}

var menuStoreInstance *MenuStore

// InitMenuStore initializes the menu store and loads the collection.
// A failed initial load is logged; the store starts empty and can be
// refetched later.
func InitMenuStore() *MenuStore {
	s := &MenuStore{}
	if err := s.Load(); err != nil {
		log.Printf("Error loading menu items: %v", err)
	}
	menuStoreInstance = s
	return s
}

// GetMenuStore returns the initialized menu store instance
func GetMenuStore() *MenuStore {
	return menuStoreInstance
}

// SetMenuStore sets the menu store instance (primarily for testing)
func SetMenuStore(s *MenuStore) {
	menuStoreInstance = s
}

// Load fetches the full collection ordered by category then name,
// replacing the cached state wholesale.
func (s *MenuStore) Load() error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var items []models.MenuItem
	err := config.GetDB().Order("category asc").Order("name asc").Find(&items).Error

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return fmt.Errorf("failed to fetch menu items: %w", err)
	}
	s.items = items
	s.loaded = true
	return nil
}

// Refetch re-runs the initial fetch, replacing local state wholesale.
func (s *MenuStore) Refetch() error {
	return s.Load()
}

// Items returns a copy of the cached collection.
func (s *MenuStore) Items() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.MenuItem, len(s.items))
	copy(items, s.items)
	return items
}

// Loading reports whether a fetch is in flight.
func (s *MenuStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Add persists a new menu item and appends it to the cached collection on
// success. On failure the cache is left unchanged.
func (s *MenuStore) Add(item *models.MenuItem) error {
	if err := config.GetDB().Create(item).Error; err != nil {
		log.Printf("Error adding menu item: %v", err)
		return fmt.Errorf("failed to add menu item: %w", err)
	}

	s.mu.Lock()
	s.items = append(s.items, *item)
	s.mu.Unlock()
	return nil
}

// Update persists a partial change and replaces the matching cached entry
// on success.
func (s *MenuStore) Update(id uint, updates map[string]interface{}) (*models.MenuItem, error) {
	db := config.GetDB()
	result := db.Model(&models.MenuItem{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		log.Printf("Error updating menu item %d: %v", id, result.Error)
		return nil, fmt.Errorf("failed to update menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("menu item %d not found", id)
	}

	var updated models.MenuItem
	if err := db.First(&updated, id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch updated menu item: %w", err)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return &updated, nil
}

// Delete removes the row and filters it out of the cached collection on
// success.
func (s *MenuStore) Delete(id uint) error {
	result := config.GetDB().Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		log.Printf("Error deleting menu item %d: %v", id, result.Error)
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("menu item %d not found", id)
	}

	s.mu.Lock()
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.mu.Unlock()
	return nil
}
