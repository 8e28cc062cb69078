package storage

import (
	"context"
	"sync"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// MockRepository is an in-memory implementation of Repository for testing.
type MockRepository struct {
	mu      sync.Mutex
	history []orders.HistoryItem

	// Hooks for test assertions
	ListCalled    bool
	SaveCalled    bool
	UpdateCalled  bool
	LastSaved     *orders.HistoryItem
	LastUpdatedID string
	UpdateCount   int

	// Error injection for testing error paths
	ListErr   error
	GetErr    error
	SaveErr   error
	UpdateErr error
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository(items ...orders.HistoryItem) *MockRepository {
	return &MockRepository{history: append([]orders.HistoryItem{}, items...)}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

func (m *MockRepository) List(_ context.Context) ([]orders.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalled = true
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]orders.HistoryItem, len(m.history))
	for i, item := range m.history {
		out[i] = orders.HistoryItem{ID: item.ID, Timestamp: item.Timestamp, Result: item.Result.Clone()}
	}
	return out, nil
}

func (m *MockRepository) Get(_ context.Context, id string) (*orders.HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	item, err := findItem(m.history, id)
	if err != nil {
		return nil, err
	}
	item.Result = item.Result.Clone()
	return item, nil
}

func (m *MockRepository) Save(_ context.Context, item orders.HistoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalled = true
	m.LastSaved = &item
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if item.ID == "" {
		return ErrInvalidItem
	}
	item.Result = item.Result.Clone()
	m.history = prepend(m.history, item)
	return nil
}

func (m *MockRepository) Update(_ context.Context, id string, result orders.ParsingResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalled = true
	m.LastUpdatedID = id
	m.UpdateCount++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if !replaceResult(m.history, id, result.Clone()) {
		return ErrNotFound
	}
	return nil
}
