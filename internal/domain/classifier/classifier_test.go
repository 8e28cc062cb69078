package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

func TestIsAustralia(t *testing.T) {
	tests := []struct {
		name string
		row  orders.OrderRow
		want bool
	}{
		{"chinese warehouse without state", orders.OrderRow{Warehouse: "澳大利亚"}, true},
		{"state code with other warehouse", orders.OrderRow{Warehouse: "Other", State: "VIC"}, true},
		{"lowercase state code", orders.OrderRow{Warehouse: "Other", State: " nsw "}, true},
		{"sydney in address", orders.OrderRow{Address1: "5 George St, SYDNEY"}, true},
		{"australia keyword in city", orders.OrderRow{City: "Melbourne, Australia"}, true},
		{"澳洲 in product", orders.OrderRow{ProductNameCn: "澳洲直邮奶粉"}, true},
		{"悉尼 in city", orders.OrderRow{City: "悉尼"}, true},
		{"uk row", orders.OrderRow{Warehouse: "诺丁汉", City: "Nottingham", State: ""}, false},
		{"state code is not a substring match", orders.OrderRow{Address1: "1 Walsall Rd", State: "West Midlands"}, false},
		{"empty row", orders.OrderRow{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAustralia(tt.row))
		})
	}
}

func TestAustralia(t *testing.T) {
	rows := []orders.OrderRow{
		{ID: "1", Warehouse: "澳大利亚"},
		{ID: "2", Warehouse: "伯明翰"},
		{ID: "3", Warehouse: "Other", State: "VIC"},
	}

	au := Australia(rows)

	assert.Len(t, au, 2)
	assert.Equal(t, "1", au[0].ID)
	assert.Equal(t, "3", au[1].ID)
}

func TestBirmingham(t *testing.T) {
	rows := []orders.OrderRow{
		{ID: "1", Warehouse: "伯明翰"},
		{ID: "2", Warehouse: "Other"},
		{ID: "3", Warehouse: "诺丁汉"},
	}

	t.Run("only selected ids", func(t *testing.T) {
		bham := Birmingham(rows, []string{"3", "2"})
		assert.Len(t, bham, 2)
		assert.Equal(t, "2", bham[0].ID)
		assert.Equal(t, "3", bham[1].ID)
	})

	t.Run("no keyword inference", func(t *testing.T) {
		assert.Empty(t, Birmingham(rows, nil))
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		assert.Empty(t, Birmingham(rows, []string{"missing"}))
	})
}

func TestComputeStats(t *testing.T) {
	rows := []orders.OrderRow{
		{ID: "1", Warehouse: "澳大利亚"},
		{ID: "2", Warehouse: "Other"},
		{ID: "3", State: "QLD"},
	}

	stats := ComputeStats(2, rows)

	assert.Equal(t, 2, stats.RawOrderCount)
	assert.Equal(t, len(rows), stats.ProcessedRowCount)
	assert.Equal(t, 2, stats.AuRowCount)
}

func TestRecomputeStats(t *testing.T) {
	result := orders.ParsingResult{
		Orders: []orders.OrderRow{{ID: "1", State: "VIC"}},
		Stats:  orders.ProcessingStats{RawOrderCount: 7, ProcessedRowCount: 99, AuRowCount: 0},
	}

	got := RecomputeStats(result)

	assert.Equal(t, 7, got.Stats.RawOrderCount)
	assert.Equal(t, 1, got.Stats.ProcessedRowCount)
	assert.Equal(t, 1, got.Stats.AuRowCount)
}

func TestSortDefault(t *testing.T) {
	rows := []orders.OrderRow{
		{ID: "au", Warehouse: "澳大利亚", ProductNameCn: "A"},
		{ID: "other-de", Warehouse: "德国", ProductNameCn: "B"},
		{ID: "bham", Warehouse: "伯明翰", ProductNameCn: "C"},
		{ID: "notts", Warehouse: "Other", ProductNameCn: "诺丁汉仓 零食"},
		{ID: "notts-2", Warehouse: "Nottingham", ProductNameCn: "D"},
	}

	sorted := SortDefault(rows)

	ids := make([]string, len(sorted))
	for i, o := range sorted {
		ids[i] = o.ID
	}

	assert.ElementsMatch(t, []string{"notts", "notts-2"}, ids[:2])
	assert.Equal(t, "bham", ids[2])
	assert.Equal(t, "other-de", ids[3])
	assert.Equal(t, "au", ids[4])
	assert.Equal(t, "au", rows[0].ID, "input must keep its order")
}

func TestSortDefault_TieBreakByProduct(t *testing.T) {
	rows := []orders.OrderRow{
		{ID: "2", Warehouse: "Other", ProductNameCn: "b item"},
		{ID: "1", Warehouse: "Other", ProductNameCn: "A item"},
	}

	sorted := SortDefault(rows)

	assert.Equal(t, "1", sorted[0].ID)
	assert.Equal(t, "2", sorted[1].ID)
}
