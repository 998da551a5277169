// Package export renders report results as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"sbreport/internal/domain/reports"
)

// ContentTypeXLSX is the MIME type of an Office Open XML workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxSheetNameLen = 31

// WriteXLSX writes result to w as a single-sheet workbook. The header row
// holds the column labels; data rows follow the column order.
func WriteXLSX(w io.Writer, sheet string, result *reports.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet = sheetName(sheet)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	for i, col := range result.Columns {
		if col.Width > 0 {
			// Pixel widths to character widths, roughly.
			if err := sw.SetColWidth(i+1, i+1, float64(col.Width)/7); err != nil {
				return fmt.Errorf("set column width: %w", err)
			}
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]any, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col.Label
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, row := range result.Rows {
		values := make([]any, len(result.Columns))
		for i, col := range result.Columns {
			values[i] = cellValue(row.Value(col.FieldName))
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cellValue(v any) any {
	switch t := v.(type) {
	case decimal.Decimal:
		return t.InexactFloat64()
	case time.Time:
		return t.Format(time.DateOnly)
	}
	return v
}

func sheetName(name string) string {
	if name == "" {
		return "Sheet1"
	}
	runes := []rune(name)
	if len(runes) > maxSheetNameLen {
		runes = runes[:maxSheetNameLen]
	}
	return string(runes)
}
