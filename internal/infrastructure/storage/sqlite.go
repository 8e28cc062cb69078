package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// HistoryKey is the fixed key the history array is stored under.
const HistoryKey = "orderParserHistory"

// DefaultKVPath is the SQLite file used when no path is configured.
const DefaultKVPath = "orderparser_local.db"

// KVStore is the local fallback store: a SQLite key-value table holding the
// whole history array as one JSON value under HistoryKey.
type KVStore struct {
	db     *sql.DB
	mu     sync.Mutex // guards read-modify-write of HistoryKey
	logger *slog.Logger
}

// Compile-time check that KVStore implements Repository
var _ Repository = (*KVStore)(nil)

// NewKVStore opens (or creates) the SQLite database and runs migrations.
func NewKVStore(dbPath string, logger *slog.Logger) (*KVStore, error) {
	if dbPath == "" {
		dbPath = DefaultKVPath
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &KVStore{db: db, logger: logger}
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *KVStore) Close() error {
	return s.db.Close()
}

// GetItem returns the raw value stored under key, and whether it exists.
func (s *KVStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *KVStore) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// List returns the stored history in stored order (newest first).
func (s *KVStore) List(ctx context.Context) ([]orders.HistoryItem, error) {
	return s.load(ctx)
}

// Get returns a run by id.
func (s *KVStore) Get(ctx context.Context, id string) (*orders.HistoryItem, error) {
	history, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return findItem(history, id)
}

// Save prepends a run.
func (s *KVStore) Save(ctx context.Context, item orders.HistoryItem) error {
	if item.ID == "" {
		return ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.store(ctx, prepend(history, item))
}

// Update replaces the result of a run. A missing id leaves the history
// untouched and is not an error.
func (s *KVStore) Update(ctx context.Context, id string, result orders.ParsingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !replaceResult(history, id, result) {
		s.logger.Debug("update skipped, id not in local history", "id", id)
		return nil
	}
	return s.store(ctx, history)
}

func (s *KVStore) load(ctx context.Context) ([]orders.HistoryItem, error) {
	raw, ok, err := s.GetItem(ctx, HistoryKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []orders.HistoryItem{}, nil
	}

	var history []orders.HistoryItem
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("failed to parse local history: %w", err)
	}
	if history == nil {
		history = []orders.HistoryItem{}
	}
	return history, nil
}

func (s *KVStore) store(ctx context.Context, history []orders.HistoryItem) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode local history: %w", err)
	}
	return s.SetItem(ctx, HistoryKey, string(data))
}
