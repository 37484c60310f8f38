// Package heuristic implements the deterministic extraction path: header
// detection, column mapping, row classification, and label-proximity
// property extraction. No external service is involved.
package heuristic

import (
	"fmt"
	"strings"

	"sovbridge/internal/grid"
	"sovbridge/internal/sov"
)

// SheetResult is the heuristic output for one sheet. TableFound is false when
// no header row reached the score threshold; callers may then hand the sheet
// to the agent path.
type SheetResult struct {
	Property   sov.Candidate
	Buildings  []sov.Candidate
	TableFound bool
}

// ExtractSheet runs the full heuristic pass over one sheet. A property
// candidate is emitted only when the sheet yielded building rows.
// Running it twice on an unchanged grid yields identical results.
func ExtractSheet(sourceFile string, s *grid.Sheet) SheetResult {
	headerIdx, ok := DetectHeaderRow(s.Rows)
	if !ok {
		return SheetResult{}
	}

	mapping := BuildColumnMapping(s.Rows[headerIdx])
	buildings := parseBuildingRows(sourceFile, s, headerIdx, mapping)
	if len(buildings) == 0 {
		return SheetResult{TableFound: true}
	}

	numBuildings := countUniqueBuildings(buildings)
	prop := ExtractPropertyCandidate(sourceFile, s, numBuildings)

	return SheetResult{
		Property:   prop,
		Buildings:  buildings,
		TableFound: true,
	}
}

func parseBuildingRows(sourceFile string, s *grid.Sheet, headerIdx int, mapping map[int]string) []sov.Candidate {
	var out []sov.Candidate

	for ridx := headerIdx + 1; ridx < len(s.Rows); ridx++ {
		row := s.Rows[ridx]
		if isEmptyRow(row) || IsTotalsRow(row) {
			continue
		}

		c := sov.Candidate{
			"source_file": sourceFile,
			"sheet_name":  s.Name,
			"row_index":   ridx + 1, // 1-based Excel row
		}
		for colIdx, field := range mapping {
			if colIdx >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[colIdx])
			if cell == "" {
				continue
			}
			c[field] = cell
		}

		if acceptBuildingRow(c) {
			out = append(out, c)
		}
	}
	return out
}

// countUniqueBuildings derives number_of_buildings from distinct building
// numbers, falling back to address+city identity for rows without one.
func countUniqueBuildings(buildings []sov.Candidate) int {
	seen := make(map[string]bool, len(buildings))
	for _, b := range buildings {
		id, _ := b["building_number"].(string)
		if id == "" {
			addr, _ := b["location_address"].(string)
			city, _ := b["location_city"].(string)
			id = fmt.Sprintf("%s_%s", addr, city)
		}
		seen[id] = true
	}
	return len(seen)
}
