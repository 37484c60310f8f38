// Package grid converts Excel workbooks into ordered grids of scalar cell
// values, the only representation downstream extraction ever sees.
package grid

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"sovbridge/internal/domain"
)

// Sheet is one worksheet reduced to its scalar cell values. Rows are ordered
// top to bottom; cells left to right. Empty cells are "". No caps are imposed
// here; consumers truncate as needed.
type Sheet struct {
	Name   string
	Hidden bool
	Rows   [][]string
}

// Load reads an xlsx workbook and returns its sheets in workbook order.
// An unreadable workbook fails outright; no partial grid is returned.
func Load(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %v", domain.ErrInputFormat, err)
	}
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrInputFormat)
	}

	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		visible, err := f.GetSheetVisible(name)
		if err != nil {
			return nil, fmt.Errorf("%w: reading sheet visibility for %q: %v", domain.ErrInputFormat, name, err)
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: reading sheet %q: %v", domain.ErrInputFormat, name, err)
		}
		sheets = append(sheets, Sheet{
			Name:   name,
			Hidden: !visible,
			Rows:   rows,
		})
	}
	return sheets, nil
}

// Cell returns the value at (row, col) or "" when out of range. Both indexes
// are zero-based.
func (s *Sheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
