package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// FallbackStore prefers a primary store and drops to a local fallback
// whenever the primary fails. Writes that reach the fallback never return
// an error; failures there are only logged.
type FallbackStore struct {
	primary  Repository
	fallback Repository
	breaker  *gobreaker.CircuitBreaker
	logger   *slog.Logger
}

// Compile-time check that FallbackStore implements Repository
var _ Repository = (*FallbackStore)(nil)

// FallbackConfig tunes the circuit breaker around the primary store.
type FallbackConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the primary is skipped once the breaker opens.
	OpenTimeout time.Duration
}

// DefaultFallbackConfig returns sensible breaker defaults.
func DefaultFallbackConfig() FallbackConfig {
	return FallbackConfig{
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
	}
}

// NewFallbackStore wraps primary and fallback.
func NewFallbackStore(primary, fallback Repository, cfg FallbackConfig, logger *slog.Logger) *FallbackStore {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultFallbackConfig().FailureThreshold
	}

	s := &FallbackStore{primary: primary, fallback: fallback, logger: logger}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "history-primary",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A not-found answer means the primary is reachable.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("history store breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return s
}

// List returns the primary's history, or the fallback's when the primary is
// unavailable.
func (s *FallbackStore) List(ctx context.Context) ([]orders.HistoryItem, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.primary.List(ctx)
	})
	if err == nil {
		return res.([]orders.HistoryItem), nil
	}

	s.logger.Warn("primary store unavailable, falling back to local store", "op", "list", "error", err)
	history, ferr := s.fallback.List(ctx)
	if ferr != nil {
		s.logger.Error("local store list failed", "error", ferr)
		return []orders.HistoryItem{}, nil
	}
	return history, nil
}

// Get looks in the primary first, then the fallback.
func (s *FallbackStore) Get(ctx context.Context, id string) (*orders.HistoryItem, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.primary.Get(ctx, id)
	})
	if err == nil {
		return res.(*orders.HistoryItem), nil
	}

	if !errors.Is(err, ErrNotFound) {
		s.logger.Warn("primary store unavailable, falling back to local store", "op", "get", "id", id, "error", err)
	}
	return s.fallback.Get(ctx, id)
}

// Save writes to the primary, or prepends to the fallback on failure.
func (s *FallbackStore) Save(ctx context.Context, item orders.HistoryItem) error {
	if item.ID == "" {
		return ErrInvalidItem
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.primary.Save(ctx, item)
	})
	if err == nil {
		return nil
	}

	s.logger.Warn("could not save to primary store, saving locally", "id", item.ID, "error", err)
	if ferr := s.fallback.Save(ctx, item); ferr != nil {
		s.logger.Error("local store save failed", "id", item.ID, "error", ferr)
	}
	return nil
}

// Update writes to the primary, or to the fallback on any primary failure,
// including a not-found answer.
func (s *FallbackStore) Update(ctx context.Context, id string, result orders.ParsingResult) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.primary.Update(ctx, id, result)
	})
	if err == nil {
		return nil
	}

	s.logger.Warn("could not update primary store, updating locally", "id", id, "error", err)
	if ferr := s.fallback.Update(ctx, id, result); ferr != nil {
		s.logger.Error("local store update failed", "id", id, "error", ferr)
	}
	return nil
}

// Close closes both stores.
func (s *FallbackStore) Close() error {
	return errors.Join(s.primary.Close(), s.fallback.Close())
}
