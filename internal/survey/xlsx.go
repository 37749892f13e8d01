package survey

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads survey records from a worksheet of an .xlsx workbook. The
// first row of the sheet is the header.
func LoadXLSX(path string, opt Options) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyFile)
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.Sheet, filepath.Base(path), strings.Join(sheets, ", "))
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyFile)
	}
	b, err := newBuilder(filepath.Base(path), rows[0])
	if err != nil {
		return nil, err
	}
	for _, row := range rows[1:] {
		if opt.MaxRows > 0 && b.ds.Rows >= opt.MaxRows {
			b.ds.Warnings = append(b.ds.Warnings, fmt.Sprintf("stopped after %d rows due to MaxRows", opt.MaxRows))
			break
		}
		if blank(row) {
			continue
		}
		// GetRows drops trailing empty cells; pad so they read as missing.
		if len(row) < len(b.header) {
			padded := make([]string, len(b.header))
			copy(padded, row)
			row = padded
		}
		b.add(row)
	}
	return b.done(), nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
