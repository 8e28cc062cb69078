package dto

import "github.com/eshaffer321/orderparser/internal/domain/orders"

// ParseRequest is the body of POST /api/parse.
type ParseRequest struct {
	Text string `json:"text"`
}

// UpdateHistoryRequest is the body of PUT /api/history/:id.
type UpdateHistoryRequest struct {
	Result *orders.ParsingResult `json:"result"`
}

// EditRequest is the body of POST /api/history/:id/edits.
type EditRequest struct {
	RowID string `json:"rowId"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// SelectionRequest carries the row ids picked for the Birmingham view.
type SelectionRequest struct {
	IDs []string `json:"ids"`
}
