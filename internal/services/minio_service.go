package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"shopmart/internal/config"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService stores product images in object storage and hands out
// presigned read URLs so image bytes never flow through the API server.
type StorageService interface {
	UploadProductImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	PresignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type minioService struct {
	client *minio.Client
	bucket string
}

func NewMinioService(ctx context.Context, cfg config.MinioConfig) (StorageService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &minioService{client: client, bucket: cfg.Bucket}, nil
}

// UploadProductImage writes the object under a per-product prefix with a
// random suffix so repeat uploads of the same filename never collide.
func (s *minioService) UploadProductImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("products/%s/%s%s", productID, random.String(12), filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return objectName, nil
}

func (s *minioService) PresignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, path, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", path, err)
	}
	return url.String(), nil
}
