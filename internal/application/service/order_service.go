// Package service orchestrates extraction, history persistence, edits and
// the derived views over a run.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/orderparser/internal/domain/classifier"
	"github.com/eshaffer321/orderparser/internal/domain/export"
	"github.com/eshaffer321/orderparser/internal/domain/orders"
	"github.com/eshaffer321/orderparser/internal/extractor"
	"github.com/eshaffer321/orderparser/internal/infrastructure/storage"
)

// EditResult is returned by EditRun.
type EditResult struct {
	Changed bool                   `json:"changed"`
	Entry   *orders.ChangeLogEntry `json:"entry,omitempty"`
	Result  orders.ParsingResult   `json:"result"`
}

// OrderService manages extraction runs.
type OrderService struct {
	extractor *extractor.Extractor
	store     storage.Repository
	logger    *slog.Logger

	now   func() time.Time
	newID func() string

	// editMu serializes read-modify-write of a run within this process.
	editMu sync.Mutex
}

// NewOrderService creates a new order service.
func NewOrderService(ext *extractor.Extractor, store storage.Repository, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		extractor: ext,
		store:     store,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// WithClock overrides the time source and run id generator. Intended for tests.
func (s *OrderService) WithClock(now func() time.Time, newID func() string) *OrderService {
	if now != nil {
		s.now = now
	}
	if newID != nil {
		s.newID = newID
	}
	return s
}

// Now returns the service clock's current time.
func (s *OrderService) Now() time.Time {
	return s.now()
}

// ExtractorReady reports whether an extraction provider is configured.
func (s *OrderService) ExtractorReady() bool {
	return s.extractor != nil && s.extractor.Ready()
}

// Process extracts orders from text and saves the run as a new history item.
func (s *OrderService) Process(ctx context.Context, text string) (*orders.HistoryItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, extractor.ErrEmptyInput
	}
	if s.extractor == nil {
		return nil, extractor.ErrMissingAPIKey
	}

	start := s.now()
	result, err := s.extractor.Extract(ctx, text)
	if err != nil {
		s.logger.Error("extraction failed", "error", err)
		return nil, err
	}

	item := orders.HistoryItem{
		ID:        s.newID(),
		Timestamp: s.now().UnixMilli(),
		Result:    result,
	}
	if err := s.store.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	s.logger.Info("run saved",
		"id", item.ID,
		"raw_orders", result.Stats.RawOrderCount,
		"rows", result.Stats.ProcessedRowCount,
		"au_rows", result.Stats.AuRowCount,
		"duration", s.now().Sub(start).Round(time.Millisecond))
	return &item, nil
}

// ListHistory returns all runs, newest first.
func (s *OrderService) ListHistory(ctx context.Context) ([]orders.HistoryItem, error) {
	return s.store.List(ctx)
}

// GetRun returns one run.
func (s *OrderService) GetRun(ctx context.Context, id string) (*orders.HistoryItem, error) {
	return s.store.Get(ctx, id)
}

// SaveRun stores a run built elsewhere, such as one posted by a client.
func (s *OrderService) SaveRun(ctx context.Context, item orders.HistoryItem) error {
	if item.ID == "" {
		return storage.ErrInvalidItem
	}
	if item.Timestamp == 0 {
		item.Timestamp = s.now().UnixMilli()
	}
	if item.Result.Orders == nil {
		item.Result.Orders = []orders.OrderRow{}
	}
	if item.Result.ChangeLog == nil {
		item.Result.ChangeLog = []orders.ChangeLogEntry{}
	}
	if err := item.Result.Validate(); err != nil {
		return err
	}
	item.Result = classifier.RecomputeStats(item.Result)
	return s.store.Save(ctx, item)
}

// ReplaceResult overwrites the stored result of a run. Stats are recomputed
// from the rows before writing.
func (s *OrderService) ReplaceResult(ctx context.Context, id string, result orders.ParsingResult) error {
	if err := result.Validate(); err != nil {
		return err
	}
	if result.Orders == nil {
		result.Orders = []orders.OrderRow{}
	}
	if result.ChangeLog == nil {
		result.ChangeLog = []orders.ChangeLogEntry{}
	}

	s.editMu.Lock()
	defer s.editMu.Unlock()
	return s.store.Update(ctx, id, classifier.RecomputeStats(result))
}

// EditRun sets one field of one row, records the change and persists the run.
// An edit that leaves the value unchanged writes nothing.
func (s *OrderService) EditRun(ctx context.Context, id string, edit orders.Edit) (*EditResult, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome, err := orders.ApplyEdit(item.Result, edit, s.now())
	if err != nil {
		return nil, err
	}
	if !outcome.Changed {
		return &EditResult{Changed: false, Result: item.Result}, nil
	}

	result := classifier.RecomputeStats(outcome.Result)
	if err := s.store.Update(ctx, id, result); err != nil {
		return nil, fmt.Errorf("failed to save edit: %w", err)
	}

	s.logger.Info("row edited",
		"id", id,
		"order", outcome.Entry.CustomerOrderNo,
		"field", edit.Field,
		"old", outcome.Entry.OldValue,
		"new", outcome.Entry.NewValue)
	return &EditResult{Changed: true, Entry: outcome.Entry, Result: result}, nil
}

// SortedOrders returns the run's rows in default display order.
func (s *OrderService) SortedOrders(ctx context.Context, id string) ([]orders.OrderRow, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return classifier.SortDefault(item.Result.Orders), nil
}

// AustraliaView returns the run's Australian rows.
func (s *OrderService) AustraliaView(ctx context.Context, id string) ([]orders.OrderRow, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return classifier.Australia(item.Result.Orders), nil
}

// BirminghamView returns the rows whose ids were selected.
func (s *OrderService) BirminghamView(ctx context.Context, id string, selected []string) ([]orders.OrderRow, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return classifier.Birmingham(item.Result.Orders, selected), nil
}

// Export builds the table for one of the fixed layouts. selected is only
// used by the Birmingham layout.
func (s *OrderService) Export(ctx context.Context, id string, layout export.Layout, selected []string) (export.Table, error) {
	var (
		rows []orders.OrderRow
		err  error
	)
	switch layout {
	case export.LayoutDefault:
		rows, err = s.SortedOrders(ctx, id)
	case export.LayoutAustralia:
		rows, err = s.AustraliaView(ctx, id)
	case export.LayoutBirmingham:
		rows, err = s.BirminghamView(ctx, id, selected)
	default:
		return export.Table{}, fmt.Errorf("unknown layout %q", layout)
	}
	if err != nil {
		return export.Table{}, err
	}
	return export.Build(layout, rows, s.now()), nil
}

// IsNotFound reports whether err means the run or row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound) || errors.Is(err, orders.ErrRowNotFound)
}
