package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// DefaultHistoryFile is the JSON file used when no path is configured.
const DefaultHistoryFile = "history_db.json"

// FileStore keeps every run in one JSON array on disk.
//
// Each write is a full read-modify-write of the file. The mutex serializes
// writers inside this process only; two processes sharing the file can still
// lose each other's updates.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// Compile-time check that FileStore implements Repository
var _ Repository = (*FileStore)(nil)

// NewFileStore opens the store, creating the file with an empty array if it
// does not exist.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if path == "" {
		path = DefaultHistoryFile
	}
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	s := &FileStore{path: abs, logger: logger}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		logger.Info("creating history database file", "path", abs)
		if err := os.WriteFile(abs, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", abs, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
	}

	return s, nil
}

// Path returns the absolute path of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Close does nothing; the file is opened per operation.
func (s *FileStore) Close() error {
	return nil
}

// List returns all runs sorted by timestamp, newest first.
func (s *FileStore) List(_ context.Context) ([]orders.HistoryItem, error) {
	s.mu.Lock()
	history, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp > history[j].Timestamp
	})
	return history, nil
}

// Get returns a run by id.
func (s *FileStore) Get(_ context.Context, id string) (*orders.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.read()
	if err != nil {
		return nil, err
	}
	return findItem(history, id)
}

// Save prepends a run to the file.
func (s *FileStore) Save(_ context.Context, item orders.HistoryItem) error {
	if item.ID == "" {
		return ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.read()
	if err != nil {
		return err
	}
	return s.write(prepend(history, item))
}

// Update replaces the result of a run, or returns ErrNotFound.
func (s *FileStore) Update(_ context.Context, id string, result orders.ParsingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.read()
	if err != nil {
		return err
	}
	if !replaceResult(history, id, result) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.write(history)
}

func (s *FileStore) read() ([]orders.HistoryItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if len(data) == 0 {
		return []orders.HistoryItem{}, nil
	}

	var history []orders.HistoryItem
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	if history == nil {
		history = []orders.HistoryItem{}
	}
	return history, nil
}

// write replaces the file through a temp file so readers never see a
// partially written array.
func (s *FileStore) write(history []orders.HistoryItem) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace history: %w", err)
	}
	return nil
}
