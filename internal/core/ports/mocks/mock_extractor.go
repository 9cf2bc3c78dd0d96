package mocks

import (
	"context"
	"sync"

	"shuttercheck/internal/core/domain"
	"shuttercheck/internal/core/ports"
)

// MockExtractor is a mock implementation of the Extractor interface for testing
type MockExtractor struct {
	mu   sync.RWMutex
	tags map[string]ports.TagMap
	fail map[string]error
}

// NewMockExtractor creates a new mock extractor
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{
		tags: make(map[string]ports.TagMap),
		fail: make(map[string]error),
	}
}

// SetTags registers the tag mapping returned for a path
func (m *MockExtractor) SetTags(path string, tags ports.TagMap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[path] = tags
}

// FailWith makes extraction fail for a path
func (m *MockExtractor) FailWith(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[path] = err
}

// Extract returns the registered tags for path, or an empty map when
// nothing was registered and no failure was configured
func (m *MockExtractor) Extract(ctx context.Context, path string) (ports.TagMap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.fail[path]; ok {
		return nil, &domain.FileReadError{Path: path, Err: err}
	}
	if tags, ok := m.tags[path]; ok {
		return tags, nil
	}
	return ports.TagMap{}, nil
}

// Name identifies the backend for diagnostics
func (m *MockExtractor) Name() string { return "mock" }

// MockPhotoRepository is a mock implementation of the PhotoRepository
// interface for testing
type MockPhotoRepository struct {
	Paths []string
	Err   error
}

// List returns the configured paths, or the configured error
func (m *MockPhotoRepository) List(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Paths, nil
}
