package services

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/zuri-studios/zuri-api/utils"
)

// ImageService validates and stores image files and resolves their public
// URLs. Used for reference images, avatars and catalog photos.
type ImageService interface {
	// UploadImage validates and uploads an image under the given path
	// prefix, returning the storage key.
	UploadImage(fileHeader *multipart.FileHeader, prefix string) (string, error)

	// ImageURL returns the public URL for a stored image key
	ImageURL(imageKey string) string

	// DeleteImage removes an image from storage
	DeleteImage(imageKey string) error
}

// StorageImageService implements ImageService on top of StorageInterface
type StorageImageService struct {
	storage StorageInterface
}

var imageServiceInstance ImageService

// InitImageService initializes the image service with a storage backend
func InitImageService(storage StorageInterface) ImageService {
	imageServiceInstance = &StorageImageService{
		storage: storage,
	}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// UploadImage validates and uploads an image file
func (s *StorageImageService) UploadImage(fileHeader *multipart.FileHeader, prefix string) (string, error) {
	// Validate the image file
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key := utils.StorageKey(prefix, time.Now().UnixMilli(), fileHeader.Filename)

	uploadedKey, err := s.storage.UploadFile(fileHeader, key)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return uploadedKey, nil
}

// ImageURL returns the public URL for an image key
func (s *StorageImageService) ImageURL(imageKey string) string {
	return s.storage.PublicURL(imageKey)
}

// DeleteImage deletes an image from storage
func (s *StorageImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	if err := s.storage.DeleteFile(imageKey); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
