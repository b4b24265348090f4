package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// AllowedImageFormats are the image extensions accepted for reference
// images, avatars and catalog photos.
var AllowedImageFormats = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := AllowedImageFormats[ext]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only PNG, JPEG and WebP files are allowed",
		}
	}

	return nil
}

// ContentTypeFor returns the MIME type for a filename's extension, falling
// back to application/octet-stream for unknown extensions.
func ContentTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedImageFormats[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// SanitizeFilename strips path components and replaces characters that are
// awkward in storage keys. The extension is preserved.
func SanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	sanitized := b.String()
	if sanitized == "" || sanitized == "." {
		return "file"
	}
	return sanitized
}

// StorageKey builds a collision-resistant storage path:
// {prefix}/{timestamp}-{sanitized filename}.
func StorageKey(prefix string, timestamp int64, filename string) string {
	return fmt.Sprintf("%s/%d-%s", strings.TrimSuffix(prefix, "/"), timestamp, SanitizeFilename(filename))
}
