package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sheetNames are the worksheet titles used per layout.
var sheetNames = map[Layout]string{
	LayoutDefault:    "Orders",
	LayoutAustralia:  "AU Orders",
	LayoutBirmingham: "Bham Orders",
}

// XLSX renders the table as a single-sheet workbook. Every cell is written
// as a string so order numbers and phone numbers keep their leading zeros.
func (t Table) XLSX(layout Layout) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetNames[layout]
	if sheet == "" {
		sheet = sheetNames[LayoutDefault]
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, t.Headers); err != nil {
		return nil, err
	}
	for i, r := range t.Rows {
		if err := writeRow(f, sheet, i+2, r); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("invalid cell (%d,%d): %w", col+1, row, err)
		}
		if err := f.SetCellStr(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", cell, err)
		}
	}
	return nil
}
