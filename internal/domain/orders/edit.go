package orders

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrRowNotFound is returned when an edit targets a row id that is not in the result.
var ErrRowNotFound = errors.New("order row not found")

// ErrDuplicateRowID is returned by Validate when two rows share an id.
var ErrDuplicateRowID = errors.New("duplicate order row id")

// Edit targets one field of one row.
type Edit struct {
	RowID string
	Field string
	Value string
}

// EditOutcome is the result of applying an Edit.
type EditOutcome struct {
	Result  ParsingResult
	Entry   *ChangeLogEntry // nil when the edit was a no-op
	Changed bool
}

// ApplyEdit applies e to result and returns the updated aggregate. The input
// is never mutated. When the stringified old and new values are equal the
// outcome is unchanged and carries no log entry, so callers must skip any
// persistence write.
func ApplyEdit(result ParsingResult, e Edit, now time.Time) (EditOutcome, error) {
	idx := result.FindRow(e.RowID)
	if idx < 0 {
		return EditOutcome{Result: result}, fmt.Errorf("%w: %s", ErrRowNotFound, e.RowID)
	}

	oldValue, err := result.Orders[idx].Field(e.Field)
	if err != nil {
		return EditOutcome{Result: result}, err
	}
	if oldValue == e.Value {
		return EditOutcome{Result: result}, nil
	}

	updated := result.Clone()
	if err := updated.Orders[idx].SetField(e.Field, e.Value); err != nil {
		return EditOutcome{Result: result}, err
	}

	entry := ChangeLogEntry{
		Timestamp:       now.UnixMilli(),
		CustomerOrderNo: result.Orders[idx].CustomerOrderNo,
		Field:           e.Field,
		OldValue:        oldValue,
		NewValue:        e.Value,
	}
	updated.ChangeLog = append([]ChangeLogEntry{entry}, updated.ChangeLog...)

	return EditOutcome{Result: updated, Entry: &entry, Changed: true}, nil
}

// SortedChangeLog returns the log entries newest first.
func SortedChangeLog(entries []ChangeLogEntry) []ChangeLogEntry {
	out := make([]ChangeLogEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// Validate checks that row ids are unique and that every change-log entry
// names a real field.
func (r ParsingResult) Validate() error {
	seen := make(map[string]struct{}, len(r.Orders))
	for _, o := range r.Orders {
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRowID, o.ID)
		}
		seen[o.ID] = struct{}{}
	}
	for _, entry := range r.ChangeLog {
		if !IsField(entry.Field) {
			return fmt.Errorf("change log: %w: %q", ErrUnknownField, entry.Field)
		}
	}
	return nil
}
