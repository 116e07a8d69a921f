package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/stridefoot/footwear-erp-api/errs"
)

// LocalStorage keeps blobs on the local filesystem under a root directory
type LocalStorage struct {
	root string
}

// NewLocalStorage creates the upload directory if it doesn't exist
func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errs.NewValidationError("file_name", fmt.Sprintf("invalid storage key %q", key))
	}
	return filepath.Join(s.root, clean), nil
}

// Put writes to a temporary file in the target directory and renames it into
// place, so readers never observe a partially written blob
func (s *LocalStorage) Put(_ context.Context, key string, data []byte, _ string) (locator string, err error) {
	fullPath, err := s.path(key)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err = os.Rename(tmp.Name(), fullPath); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	return fullPath, nil
}

func (s *LocalStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewNotFoundError("file", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
