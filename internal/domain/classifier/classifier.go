// Package classifier partitions order rows into the Australia and Birmingham
// sub-views and orders the default table.
package classifier

import (
	"strings"

	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// australiaKeywords match anywhere in the combined location text of a row.
var australiaKeywords = []string{"澳大利亚", "澳洲", "悉尼", "australia", "sydney"}

// australianStates are matched against the whole state field only.
var australianStates = map[string]struct{}{
	"VIC": {}, "NSW": {}, "QLD": {}, "WA": {}, "SA": {}, "TAS": {}, "ACT": {}, "NT": {},
}

// IsAustralia reports whether a row belongs to the Australia view.
func IsAustralia(o orders.OrderRow) bool {
	text := strings.ToLower(o.Warehouse + o.ProductNameCn + o.Address1 + o.City + o.State)
	for _, k := range australiaKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	_, ok := australianStates[strings.ToUpper(strings.TrimSpace(o.State))]
	return ok
}

// Australia returns the rows matching IsAustralia, in input order.
func Australia(rows []orders.OrderRow) []orders.OrderRow {
	return filter(rows, IsAustralia)
}

// Birmingham returns the rows whose ids are in the caller's selection, in
// input order. Membership is a manual choice; no keyword matching applies.
func Birmingham(rows []orders.OrderRow, selected []string) []orders.OrderRow {
	set := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}
	return filter(rows, func(o orders.OrderRow) bool {
		_, ok := set[o.ID]
		return ok
	})
}

// CountAustralia counts rows in the Australia view.
func CountAustralia(rows []orders.OrderRow) int {
	n := 0
	for _, o := range rows {
		if IsAustralia(o) {
			n++
		}
	}
	return n
}

// ComputeStats builds the stats for a run from its rows.
func ComputeStats(rawOrderCount int, rows []orders.OrderRow) orders.ProcessingStats {
	return orders.ProcessingStats{
		RawOrderCount:     rawOrderCount,
		ProcessedRowCount: len(rows),
		AuRowCount:        CountAustralia(rows),
	}
}

// RecomputeStats refreshes the derived counts of a result, keeping the
// model-reported raw order count.
func RecomputeStats(result orders.ParsingResult) orders.ParsingResult {
	result.Stats = ComputeStats(result.Stats.RawOrderCount, result.Orders)
	return result
}

func filter(rows []orders.OrderRow, keep func(orders.OrderRow) bool) []orders.OrderRow {
	out := make([]orders.OrderRow, 0, len(rows))
	for _, o := range rows {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
