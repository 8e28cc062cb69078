package orders

import "fmt"

// Title formats the history list heading, e.g. "2025-01-31 14:05:09 order".
func (h HistoryItem) Title() string {
	return h.CreatedAt().Format("2006-01-02 15:04:05") + " order"
}

// Summary formats the history list sub-heading.
func (h HistoryItem) Summary() string {
	return fmt.Sprintf("%d original orders / %d processed rows",
		h.Result.Stats.RawOrderCount, h.Result.Stats.ProcessedRowCount)
}

// FormatLogTime formats a change-log timestamp as "YYYY-MM-DD HH:mm:ss".
func FormatLogTime(ts int64) string {
	return timeFromMillis(ts).Format("2006-01-02 15:04:05")
}
