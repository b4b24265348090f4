package services

import (
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/utils"
)

// ProfileService resolves the role-bearing profile record for a signed-in
// user. Profiles are cached per user id; the cache is evicted whenever the
// session service reports a session change, so a fresh sign-in always
// re-reads the row.
type ProfileService struct {
	storage StorageInterface

	mu          sync.RWMutex
	cache       map[string]*models.Profile
	unsubscribe func()
}

var profileServiceInstance *ProfileService

// InitProfileService initializes the profile service and subscribes it to
// session changes when a session service is provided.
func InitProfileService(storage StorageInterface, sessions *SessionService) *ProfileService {
	s := &ProfileService{
		storage: storage,
		cache:   make(map[string]*models.Profile),
	}

	if sessions != nil {
		s.unsubscribe = sessions.Subscribe(func(session *ProviderSession) {
			if session == nil {
				s.EvictAll()
				return
			}
			s.Evict(session.User.ID)
		})
	}

	profileServiceInstance = s
	return s
}

// GetProfileService returns the initialized profile service instance
func GetProfileService() *ProfileService {
	return profileServiceInstance
}

// SetProfileService sets the profile service instance (primarily for testing)
func SetProfileService(s *ProfileService) {
	profileServiceInstance = s
}

// Resolve fetches the profile for a provider user id. An empty user id
// resolves to (nil, nil) with no database call.
func (s *ProfileService) Resolve(userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, nil
	}

	s.mu.RLock()
	cached, ok := s.cache[userID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	db := config.GetDB()
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	s.mu.Lock()
	s.cache[userID] = &profile
	s.mu.Unlock()

	return &profile, nil
}

// Update applies a partial update to the user's profile and returns the
// refreshed row. Requires an existing profile.
func (s *ProfileService) Update(userID string, updates map[string]interface{}) (*models.Profile, error) {
	profile, err := s.Resolve(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("user not authenticated")
	}

	if len(updates) == 0 {
		return profile, nil
	}

	db := config.GetDB()
	if err := db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	var refreshed models.Profile
	if err := db.Where("user_id = ?", userID).First(&refreshed).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch updated profile: %w", err)
	}

	s.mu.Lock()
	s.cache[userID] = &refreshed
	s.mu.Unlock()

	return &refreshed, nil
}

// UploadAvatar stores an avatar under the user's namespaced path and points
// the profile's avatar_url at its public URL. The uploaded object is not
// removed when the profile update fails.
func (s *ProfileService) UploadAvatar(userID string, fileHeader *multipart.FileHeader) (*models.Profile, error) {
	profile, err := s.Resolve(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("user not authenticated")
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return nil, err
	}

	// Unique path within the user's folder: {user_id}/{timestamp}-{filename}
	key := utils.StorageKey(fmt.Sprintf("profile-images/%s", userID), time.Now().UnixMilli(), fileHeader.Filename)

	if _, err := s.storage.UploadFile(fileHeader, key); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	publicURL := s.storage.PublicURL(key)
	return s.Update(userID, map[string]interface{}{"avatar_url": publicURL})
}

// Evict drops one user's cached profile.
func (s *ProfileService) Evict(userID string) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}

// EvictAll drops every cached profile.
func (s *ProfileService) EvictAll() {
	s.mu.Lock()
	s.cache = make(map[string]*models.Profile)
	s.mu.Unlock()
}

// Close unsubscribes from session changes.
func (s *ProfileService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
