package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() ParsingResult {
	return ParsingResult{
		Orders: []OrderRow{
			{ID: "row-1", CustomerOrderNo: "P100", Phone: "0123", Quantity: "1", Warehouse: "诺丁汉"},
			{ID: "row-2", CustomerOrderNo: "P100", Phone: "7700900123", Quantity: "2", Warehouse: "Other"},
		},
		Stats:     ProcessingStats{RawOrderCount: 1, ProcessedRowCount: 2},
		ChangeLog: []ChangeLogEntry{},
	}
}

func TestApplyEdit(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	t.Run("unchanged value is a no-op", func(t *testing.T) {
		result := sampleResult()

		outcome, err := ApplyEdit(result, Edit{RowID: "row-1", Field: "phone", Value: "0123"}, now)
		require.NoError(t, err)

		assert.False(t, outcome.Changed)
		assert.Nil(t, outcome.Entry)
		assert.Empty(t, outcome.Result.ChangeLog)
		assert.Equal(t, "0123", outcome.Result.Orders[0].Phone)
	})

	t.Run("changed value records old and new", func(t *testing.T) {
		result := sampleResult()

		outcome, err := ApplyEdit(result, Edit{RowID: "row-2", Field: "quantity", Value: "3"}, now)
		require.NoError(t, err)

		require.True(t, outcome.Changed)
		require.Len(t, outcome.Result.ChangeLog, 1)
		entry := outcome.Result.ChangeLog[0]
		assert.Equal(t, "P100", entry.CustomerOrderNo)
		assert.Equal(t, "quantity", entry.Field)
		assert.Equal(t, "2", entry.OldValue)
		assert.Equal(t, "3", entry.NewValue)
		assert.Equal(t, now.UnixMilli(), entry.Timestamp)
		assert.Equal(t, "3", outcome.Result.Orders[1].Quantity)
	})

	t.Run("input result is not mutated", func(t *testing.T) {
		result := sampleResult()

		_, err := ApplyEdit(result, Edit{RowID: "row-1", Field: "phone", Value: "999"}, now)
		require.NoError(t, err)

		assert.Equal(t, "0123", result.Orders[0].Phone)
		assert.Empty(t, result.ChangeLog)
	})

	t.Run("new entries are prepended", func(t *testing.T) {
		result := sampleResult()

		first, err := ApplyEdit(result, Edit{RowID: "row-1", Field: "city", Value: "Leeds"}, now)
		require.NoError(t, err)
		second, err := ApplyEdit(first.Result, Edit{RowID: "row-1", Field: "zip", Value: "LS1"}, now.Add(time.Second))
		require.NoError(t, err)

		require.Len(t, second.Result.ChangeLog, 2)
		assert.Equal(t, "zip", second.Result.ChangeLog[0].Field)
		assert.Equal(t, "city", second.Result.ChangeLog[1].Field)
	})

	t.Run("boolean field is stringified", func(t *testing.T) {
		result := sampleResult()

		outcome, err := ApplyEdit(result, Edit{RowID: "row-1", Field: "isBlacklisted", Value: "true"}, now)
		require.NoError(t, err)

		assert.True(t, outcome.Result.Orders[0].IsBlacklisted)
		assert.Equal(t, "false", outcome.Entry.OldValue)

		noop, err := ApplyEdit(outcome.Result, Edit{RowID: "row-1", Field: "isBlacklisted", Value: "true"}, now)
		require.NoError(t, err)
		assert.False(t, noop.Changed)
	})

	t.Run("unknown row", func(t *testing.T) {
		_, err := ApplyEdit(sampleResult(), Edit{RowID: "missing", Field: "phone", Value: "1"}, now)
		assert.ErrorIs(t, err, ErrRowNotFound)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := ApplyEdit(sampleResult(), Edit{RowID: "row-1", Field: "id", Value: "x"}, now)
		assert.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("invalid boolean is rejected", func(t *testing.T) {
		result := sampleResult()
		_, err := ApplyEdit(result, Edit{RowID: "row-1", Field: "isBlacklisted", Value: "maybe"}, now)
		assert.ErrorIs(t, err, ErrInvalidValue)
		assert.False(t, result.Orders[0].IsBlacklisted)
	})
}

func TestSortedChangeLog(t *testing.T) {
	entries := []ChangeLogEntry{
		{Timestamp: 10, Field: "a"},
		{Timestamp: 30, Field: "c"},
		{Timestamp: 20, Field: "b"},
	}

	sorted := SortedChangeLog(entries)

	assert.Equal(t, []string{"c", "b", "a"}, []string{sorted[0].Field, sorted[1].Field, sorted[2].Field})
	assert.Equal(t, "a", entries[0].Field, "input must keep its order")
}

func TestParsingResult_Validate(t *testing.T) {
	t.Run("valid result", func(t *testing.T) {
		assert.NoError(t, sampleResult().Validate())
	})

	t.Run("duplicate ids", func(t *testing.T) {
		result := sampleResult()
		result.Orders[1].ID = "row-1"
		assert.ErrorIs(t, result.Validate(), ErrDuplicateRowID)
	})

	t.Run("change log with unknown field", func(t *testing.T) {
		result := sampleResult()
		result.ChangeLog = []ChangeLogEntry{{Field: "nope"}}
		assert.ErrorIs(t, result.Validate(), ErrUnknownField)
	})
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "电话", FieldLabel("phone"))
	assert.Equal(t, "仓库分类", FieldLabel("warehouse"))
	assert.Equal(t, "street", FieldLabel("street"))
}

func TestHistoryItem_Summary(t *testing.T) {
	item := HistoryItem{
		ID:        "h1",
		Timestamp: time.Date(2025, 1, 31, 14, 5, 9, 0, time.Local).UnixMilli(),
		Result:    ParsingResult{Stats: ProcessingStats{RawOrderCount: 3, ProcessedRowCount: 5}},
	}

	assert.Equal(t, "2025-01-31 14:05:09 order", item.Title())
	assert.Equal(t, "3 original orders / 5 processed rows", item.Summary())
}
