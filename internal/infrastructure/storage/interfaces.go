package storage

import (
	"context"
	"errors"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

var (
	// ErrNotFound is returned when no run has the requested id.
	ErrNotFound = errors.New("history item not found")

	// ErrInvalidItem is returned when saving an item without an id.
	ErrInvalidItem = errors.New("history item is missing an id")
)

// Repository persists extraction runs.
// Implementations: FileStore (JSON file), KVStore (SQLite key-value),
// RemoteStore (HTTP endpoint), FallbackStore and MockRepository.
type Repository interface {
	// List returns all runs, newest first.
	List(ctx context.Context) ([]orders.HistoryItem, error)

	// Get returns one run by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*orders.HistoryItem, error)

	// Save prepends a new run.
	Save(ctx context.Context, item orders.HistoryItem) error

	// Update replaces the result of an existing run.
	Update(ctx context.Context, id string, result orders.ParsingResult) error

	Close() error
}

// prepend returns a new slice with item first.
func prepend(history []orders.HistoryItem, item orders.HistoryItem) []orders.HistoryItem {
	out := make([]orders.HistoryItem, 0, len(history)+1)
	out = append(out, item)
	return append(out, history...)
}

// replaceResult swaps the result of the item with the given id and reports
// whether it was found.
func replaceResult(history []orders.HistoryItem, id string, result orders.ParsingResult) bool {
	for i := range history {
		if history[i].ID == id {
			history[i].Result = result
			return true
		}
	}
	return false
}

func findItem(history []orders.HistoryItem, id string) (*orders.HistoryItem, error) {
	for i := range history {
		if history[i].ID == id {
			item := history[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}
