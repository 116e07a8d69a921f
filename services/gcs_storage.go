package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/stridefoot/footwear-erp-api/errs"
)

// GCSStorage stores document blobs in a Google Cloud Storage bucket
type GCSStorage struct {
	client *storage.Client
	bucket string
}

func NewGCSStorage(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

func (s *GCSStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS upload: %w", err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, key), nil
}

func (s *GCSStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, errs.NewNotFoundError("file", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download from GCS: %w", err)
	}
	return r, nil
}

func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete file from GCS: %w", err)
	}
	return nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}
