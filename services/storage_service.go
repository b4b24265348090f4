package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/utils"
)

// StorageInterface defines the operations the app needs from the storage
// bucket: upload a file under a given key, resolve a public URL, delete.
type StorageInterface interface {
	UploadFile(fileHeader *multipart.FileHeader, key string) (string, error)
	PublicURL(key string) string
	DeleteFile(key string) error
}

// StorageService handles all S3-related operations
type StorageService struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

var storageServiceInstance StorageInterface

// InitStorageService initializes the storage service with AWS credentials
func InitStorageService() (StorageInterface, error) {
	cfg := appConfig.GetConfig()

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	publicBase := cfg.StoragePublicBase
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.AWSS3Bucket, cfg.AWSRegion)
	}

	storageServiceInstance = &StorageService{
		client:     client,
		bucket:     cfg.AWSS3Bucket,
		publicBase: publicBase,
	}

	return storageServiceInstance, nil
}

// GetStorageService returns the initialized storage service instance
func GetStorageService() StorageInterface {
	return storageServiceInstance
}

// SetStorageService sets the storage service instance (primarily for testing)
func SetStorageService(service StorageInterface) {
	storageServiceInstance = service
}

// UploadFile uploads a file to the bucket under the given key and returns
// the key back on success.
func (s *StorageService) UploadFile(fileHeader *multipart.FileHeader, key string) (string, error) {
	// Open the uploaded file
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	// Read file content
	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := utils.ContentTypeFor(fileHeader.Filename)

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, nil
}

// PublicURL returns the public URL for a stored object. The bucket serves
// catalog and reference images publicly, so no presigning is involved.
func (s *StorageService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s", s.publicBase, key)
}

// DeleteFile deletes a file from the bucket
func (s *StorageService) DeleteFile(key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}
