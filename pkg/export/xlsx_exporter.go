package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	minColumnWidth = 12.0
	maxColumnWidth = 40.0
)

// XLSXExporter renders a Dataset into a single-sheet workbook with a bold, filterable header.
type XLSXExporter struct{}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render produces the workbook bytes.
func (e *XLSXExporter) Render(data Dataset, sheet string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	widths := make([]float64, len(data.Headers))
	for c, header := range data.Headers {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellStr(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
		widths[c] = float64(len([]rune(header)))
	}
	for r, row := range data.Rows {
		for c, header := range data.Headers {
			value := row[header]
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
			if w := float64(len([]rune(value))); w > widths[c] {
				widths[c] = w
			}
		}
	}

	last, _ := excelize.ColumnNumberToName(len(data.Headers))
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", last+"1", bold)
	}
	_ = f.AutoFilter(sheet, "A1:"+last+"1", nil)
	for c, w := range widths {
		w = w * 0.9
		if w < minColumnWidth {
			w = minColumnWidth
		}
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// File renders the dataset as an XLSX download.
func (e *XLSXExporter) File(data Dataset, sheet, filename string) (*File, error) {
	body, err := e.Render(data, sheet)
	if err != nil {
		return nil, err
	}
	return &File{Filename: SwapExtension(filename, "xlsx"), ContentType: ContentTypeXLSX, Data: body}, nil
}
