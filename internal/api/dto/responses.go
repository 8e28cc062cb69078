package dto

import (
	"time"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a healthy response stamped with the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// DiagnosticsResponse reports which credentials are present. Values are
// never included.
type DiagnosticsResponse struct {
	Provider        string          `json:"provider"`
	Model           string          `json:"model,omitempty"`
	ExtractorReady  bool            `json:"extractorReady"`
	CredentialsSeen map[string]bool `json:"credentialsSeen"`
	HistoryPath     string          `json:"historyPath,omitempty"`
	CheckedAt       string          `json:"checkedAt"`
}

// SuccessResponse acknowledges a write.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// RowsResponse wraps a derived view of a run.
type RowsResponse struct {
	Orders []orders.OrderRow `json:"orders"`
	Count  int               `json:"count"`
}

// NewRowsResponse creates a RowsResponse, never encoding a null list.
func NewRowsResponse(rows []orders.OrderRow) RowsResponse {
	if rows == nil {
		rows = []orders.OrderRow{}
	}
	return RowsResponse{Orders: rows, Count: len(rows)}
}

// ChangeLogEntryResponse is a change-log entry with its display label.
type ChangeLogEntryResponse struct {
	orders.ChangeLogEntry
	FieldLabel string `json:"fieldLabel"`
	Time       string `json:"time"`
}

// HistorySummaryResponse is one line of the history list.
type HistorySummaryResponse struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
}
