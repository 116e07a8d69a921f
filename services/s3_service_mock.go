package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/stridefoot/footwear-erp-api/errs"
)

// MockBlobStorage is an in-memory BlobStorage for testing
type MockBlobStorage struct {
	files map[string][]byte // map of key to file content
	mu    sync.RWMutex

	// PutErr, when set, is returned by every Put call
	PutErr error
}

// NewMockBlobStorage creates a new mock blob storage
func NewMockBlobStorage() *MockBlobStorage {
	return &MockBlobStorage{
		files: make(map[string][]byte),
	}
}

func (m *MockBlobStorage) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if m.PutErr != nil {
		return "", m.PutErr
	}

	content := make([]byte, len(data))
	copy(content, data)

	m.mu.Lock()
	m.files[key] = content
	m.mu.Unlock()

	return fmt.Sprintf("mem://%s", key), nil
}

func (m *MockBlobStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	content, exists := m.files[key]
	m.mu.RUnlock()

	if !exists {
		return nil, errs.NewNotFoundError("file", key)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (m *MockBlobStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.files, key)
	m.mu.Unlock()
	return nil
}

// Files returns a copy of all stored files (for testing assertions)
func (m *MockBlobStorage) Files() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make(map[string][]byte, len(m.files))
	for k, v := range m.files {
		files[k] = v
	}
	return files
}

// FileExists checks if a file exists in mock storage
func (m *MockBlobStorage) FileExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.files[key]
	return exists
}
