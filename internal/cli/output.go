package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/eshaffer321/orderparser/internal/domain/classifier"
	"github.com/eshaffer321/orderparser/internal/domain/orders"
)

// PrintRunSummary prints the counts of a freshly saved run
func PrintRunSummary(w io.Writer, item *orders.HistoryItem) {
	stats := item.Result.Stats
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Run %s: RawOrders=%d Rows=%d AU=%d\n",
		item.ID, stats.RawOrderCount, stats.ProcessedRowCount, stats.AuRowCount)

	var blacklisted []string
	for _, o := range item.Result.Orders {
		if o.IsBlacklisted {
			blacklisted = append(blacklisted, o.CustomerOrderNo)
		}
	}
	if len(blacklisted) > 0 {
		fmt.Fprintf(w, "Blacklisted: %s\n", strings.Join(blacklisted, ", "))
	}
	fmt.Fprintln(w, strings.Repeat("-", 60))
}

// PrintHistory prints one line per run
func PrintHistory(w io.Writer, history []orders.HistoryItem) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No saved runs.")
		return
	}

	for _, item := range history {
		fmt.Fprintf(w, "%s  %s  %s\n", item.ID, item.Title(), item.Summary())
	}
	fmt.Fprintf(w, "\nTotal: %d runs\n", len(history))
}

// PrintRun prints the rows of a run in default order followed by its change log
func PrintRun(w io.Writer, item *orders.HistoryItem) {
	fmt.Fprintf(w, "%s\n%s\n", item.Title(), item.Summary())
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for _, o := range classifier.SortDefault(item.Result.Orders) {
		flags := ""
		if classifier.IsAustralia(o) {
			flags += " [AU]"
		}
		if o.IsBlacklisted {
			flags += " [BLACKLIST]"
		}
		fmt.Fprintf(w, "%s  %-12s %-16s %-10s x%s  %s%s\n",
			o.ID, o.CustomerOrderNo, o.RecipientName, o.Warehouse, o.Quantity, o.ProductNameCn, flags)
	}

	entries := orders.SortedChangeLog(item.Result.ChangeLog)
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(w, "\nChange log:")
	for _, e := range entries {
		fmt.Fprintf(w, "  %s  %s  %s: %q -> %q\n",
			orders.FormatLogTime(e.Timestamp), e.CustomerOrderNo, orders.FieldLabel(e.Field), e.OldValue, e.NewValue)
	}
}
