package storage

import (
	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

func testItem(id string, ts int64, orderNo string) orders.HistoryItem {
	return orders.HistoryItem{
		ID:        id,
		Timestamp: ts,
		Result: orders.ParsingResult{
			Orders: []orders.OrderRow{
				{ID: id + "-row", CustomerOrderNo: orderNo, RecipientName: "Jane Doe", Quantity: "1", Warehouse: "Other"},
			},
			Stats:     orders.ProcessingStats{RawOrderCount: 1, ProcessedRowCount: 1},
			ChangeLog: []orders.ChangeLogEntry{},
		},
	}
}
