package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioFileStore stores uploads in an S3-compatible bucket.
type MinioFileStore struct {
	client *minio.Client
	bucket string
}

// MinioConfig holds connection settings for the object store.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioFileStore connects to the object store and ensures the bucket exists.
func NewMinioFileStore(cfg MinioConfig) (*MinioFileStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio configuration incomplete")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	log.Printf("[MinioFileStore] Connected - endpoint:%s, bucket:%s", cfg.Endpoint, cfg.Bucket)
	return &MinioFileStore{client: client, bucket: cfg.Bucket}, nil
}

// Save streams the contents into the bucket under the filename's base
// component and returns the bucket-qualified object path. Objects of the
// same name are overwritten.
func (s *MinioFileStore) Save(ctx context.Context, filename string, contents io.Reader) (string, error) {
	name := path.Base(filename)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, name, contents, -1, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to store object: %w", err)
	}

	return s.bucket + "/" + name, nil
}

// Ensure MinioFileStore implements FileStore
var _ FileStore = (*MinioFileStore)(nil)
