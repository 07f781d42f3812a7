package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/aniket045123/craftmyresume/internal/domain"
)

// MockObjectStore is a mock implementation of ObjectStore interface
type MockObjectStore struct {
	mu         sync.Mutex
	Uploaded   map[string][]byte
	UploadFunc func(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	ListFunc   func(ctx context.Context, prefix string) ([]domain.StoredObject, error)
	DeleteFunc func(ctx context.Context, key string) error
	PingFunc   func(ctx context.Context) error
	BaseURL    string
}

func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		Uploaded: make(map[string][]byte),
		BaseURL:  "https://storage.test/resume-files",
	}
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, body, size, contentType)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploaded[key] = data
	return nil
}

func (m *MockObjectStore) List(ctx context.Context, prefix string) ([]domain.StoredObject, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, prefix)
	}
	return []domain.StoredObject{}, nil
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Uploaded, key)
	return nil
}

func (m *MockObjectStore) PublicURL(key string) string {
	return m.BaseURL + "/" + key
}

func (m *MockObjectStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
