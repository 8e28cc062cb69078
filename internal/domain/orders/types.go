// Package orders defines the order table model produced by one extraction run,
// plus the edit and change-log rules applied to it.
package orders

import "time"

// OrderRow is one shippable line item: a single SKU within one customer order.
// Several rows may share a CustomerOrderNo when an order has multiple SKUs.
type OrderRow struct {
	ID                 string `json:"id"`
	CustomerOrderNo    string `json:"customerOrderNo"`
	CustomerTrackingNo string `json:"customerTrackingNo"`
	RecipientName      string `json:"recipientName"`
	Address1           string `json:"address1"`
	Address2           string `json:"address2"`
	Address3           string `json:"address3"`
	City               string `json:"city"`
	Empty1             string `json:"empty1"`
	Zip                string `json:"zip"`
	Empty2             string `json:"empty2"`
	Phone              string `json:"phone"`
	ProductNameEng     string `json:"productNameEng"`
	ProductNameCn      string `json:"productNameCn"`
	Quantity           string `json:"quantity"`
	Remarks            string `json:"remarks"`
	Specs              string `json:"specs"`

	// Street and State are split out for the Australian export.
	Street string `json:"street"`
	State  string `json:"state"`

	IsBlacklisted         bool   `json:"isBlacklisted"`
	Warehouse             string `json:"warehouse"`
	OriginalRawOrderIndex int    `json:"originalRawOrderIndex"`
}

// ProcessingStats are derived counts for one run. They are never a source of
// truth; RecomputeStats rebuilds them from the orders list.
type ProcessingStats struct {
	RawOrderCount     int `json:"rawOrderCount"`
	ProcessedRowCount int `json:"processedRowCount"`
	AuRowCount        int `json:"auRowCount"`
}

// ChangeLogEntry records one manual field edit.
type ChangeLogEntry struct {
	Timestamp       int64  `json:"timestamp"` // unix milliseconds
	CustomerOrderNo string `json:"customerOrderNo"`
	Field           string `json:"field"`
	OldValue        string `json:"oldValue"`
	NewValue        string `json:"newValue"`
}

// ParsingResult is the aggregate produced by one extraction run.
type ParsingResult struct {
	Orders    []OrderRow       `json:"orders"`
	Stats     ProcessingStats  `json:"stats"`
	ChangeLog []ChangeLogEntry `json:"changeLog"`
}

// HistoryItem is a persisted run.
type HistoryItem struct {
	ID        string        `json:"id"`
	Timestamp int64         `json:"timestamp"` // unix milliseconds
	Result    ParsingResult `json:"result"`
}

// CreatedAt returns the item timestamp as a time.Time in the local zone.
func (h HistoryItem) CreatedAt() time.Time {
	return timeFromMillis(h.Timestamp)
}

// Clone returns a deep copy of the result so callers can derive new values
// without touching the original slices.
func (r ParsingResult) Clone() ParsingResult {
	out := ParsingResult{Stats: r.Stats}
	if r.Orders != nil {
		out.Orders = make([]OrderRow, len(r.Orders))
		copy(out.Orders, r.Orders)
	}
	if r.ChangeLog != nil {
		out.ChangeLog = make([]ChangeLogEntry, len(r.ChangeLog))
		copy(out.ChangeLog, r.ChangeLog)
	}
	return out
}

// FindRow returns the index of the row with the given id, or -1.
func (r ParsingResult) FindRow(id string) int {
	for i := range r.Orders {
		if r.Orders[i].ID == id {
			return i
		}
	}
	return -1
}

func timeFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
