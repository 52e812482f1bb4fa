// Package storage provides object storage implementations for uploaded
// documents.
package storage

import (
	"context"
	"errors"
	"sync"

	financeapp "github.com/pharmalink/backend/internal/application/finance"
)

// StubDocumentStorage keeps uploads in memory and fabricates URLs. Use it
// in development and tests when no bucket is configured.
type StubDocumentStorage struct {
	// BaseURL is the prefix of the fabricated URLs
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubDocumentStorage creates a new StubDocumentStorage
func NewStubDocumentStorage() *StubDocumentStorage {
	return &StubDocumentStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubDocumentStorage implements DocumentStorage
var _ financeapp.DocumentStorage = (*StubDocumentStorage)(nil)

// Upload keeps the data in memory and returns a fabricated URL
func (s *StubDocumentStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return s.BaseURL + "/" + key, nil
}

// Delete removes the in-memory object
func (s *StubDocumentStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Get returns the stored bytes, for test assertions
func (s *StubDocumentStorage) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}
