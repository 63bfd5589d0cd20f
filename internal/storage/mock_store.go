package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockStore keeps objects in memory for testing
type MockStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// Optional failures injected by tests
	UploadErr  error
	ListErr    error
	PresignErr error

	// ListCalls counts ListKeys invocations
	ListCalls int
}

func NewMockStore() *MockStore {
	return &MockStore{
		objects: make(map[string][]byte),
	}
}

// Put seeds an object without going through Upload
func (m *MockStore) Put(objectKey string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectKey] = data
}

// Upload stores an object in memory
func (m *MockStore) Upload(ctx context.Context, objectKey string, data io.Reader, size int64, contentType string) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, data); err != nil {
		return fmt.Errorf("failed to read upload data: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectKey] = buf.Bytes()
	return nil
}

// ListKeys returns the stored keys under the given prefix in sorted order
func (m *MockStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	return keys, nil
}

// PresignedURL returns a deterministic fake URL for a stored object
func (m *MockStore) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	if m.PresignErr != nil {
		return "", m.PresignErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.objects[objectKey]; !ok {
		return "", fmt.Errorf("object not found: %s", objectKey)
	}

	return fmt.Sprintf("https://storage.local/%s?expires=%d", objectKey, int64(expiry.Seconds())), nil
}
