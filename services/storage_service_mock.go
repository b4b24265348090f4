package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

// MockStorageService is a mock implementation of StorageInterface for testing
type MockStorageService struct {
	uploadedFiles map[string][]byte // map of storage key to file content
	uploadOrder   []string          // keys in the order they were uploaded
	failOnUpload  int               // 1-based index of the upload that should fail; 0 = never
	mu            sync.RWMutex
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService() *MockStorageService {
	return &MockStorageService{
		uploadedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global storage service instance for testing
func (m *MockStorageService) SetAsMockForTesting() {
	SetStorageService(m)
}

// FailOnUpload makes the nth upload call (1-based) return an error.
// Pass 0 to disable failure injection.
func (m *MockStorageService) FailOnUpload(n int) {
	m.mu.Lock()
	m.failOnUpload = n
	m.mu.Unlock()
}

// UploadFile simulates uploading a file to the bucket
func (m *MockStorageService) UploadFile(fileHeader *multipart.FileHeader, key string) (string, error) {
	m.mu.Lock()
	attempt := len(m.uploadOrder) + 1
	shouldFail := m.failOnUpload != 0 && attempt == m.failOnUpload
	m.mu.Unlock()

	if shouldFail {
		return "", fmt.Errorf("mock storage: upload %d failed", attempt)
	}

	// Open and read the file
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Store in mock storage
	m.mu.Lock()
	m.uploadedFiles[key] = content
	m.uploadOrder = append(m.uploadOrder, key)
	m.mu.Unlock()

	return key, nil
}

// PublicURL returns a stable fake public URL for a key
func (m *MockStorageService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s", key)
}

// DeleteFile simulates deleting a file from the bucket
func (m *MockStorageService) DeleteFile(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedFiles, key)
	m.mu.Unlock()

	return nil
}

// UploadOrder returns the storage keys in the order they were uploaded
func (m *MockStorageService) UploadOrder() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order := make([]string, len(m.uploadOrder))
	copy(order, m.uploadOrder)
	return order
}

// UploadCount returns how many uploads have succeeded
func (m *MockStorageService) UploadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.uploadOrder)
}

// FileExists checks if a file exists in mock storage
func (m *MockStorageService) FileExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedFiles[key]
	return exists
}

// Clear removes all files from mock storage
func (m *MockStorageService) Clear() {
	m.mu.Lock()
	m.uploadedFiles = make(map[string][]byte)
	m.uploadOrder = nil
	m.failOnUpload = 0
	m.mu.Unlock()
}
