package heuristic

import (
	"strings"

	"sovbridge/internal/grid"
	"sovbridge/internal/sov"
)

// Scan caps for property-level extraction. SOV summary blocks live in the
// top-left region; scanning further buys nothing.
const (
	maxPropertyRows = 300
	maxPropertyCols = 25
)

// ExtractPropertyCandidate scans a sheet for property-level scalars using two
// passes: label-driven (matched label cell, first non-empty neighbor value)
// and value-driven (numeric cell with a matched label directly above it).
// First successful write per field wins. Unmapped fields stay null.
func ExtractPropertyCandidate(sourceFile string, s *grid.Sheet, numBuildings int) sov.Candidate {
	c := sov.Candidate{
		"source_file":         sourceFile,
		"sheet_name":          s.Name,
		"number_of_buildings": float64(numBuildings),
	}

	maxR := len(s.Rows)
	if maxR > maxPropertyRows {
		maxR = maxPropertyRows
	}
	maxC := 0
	for _, row := range s.Rows[:maxR] {
		if len(row) > maxC {
			maxC = len(row)
		}
	}
	if maxC > maxPropertyCols {
		maxC = maxPropertyCols
	}

	// Pass 1: label-driven.
	for r := 0; r < maxR; r++ {
		for col := 0; col < maxC; col++ {
			v := s.Cell(r, col)
			if strings.TrimSpace(v) == "" || looksNumeric(v) {
				continue
			}
			target, ok := matchPropertyLabel(NormalizeHeader(v))
			if !ok {
				continue
			}
			val := firstNeighborValue(s, r, col, maxR, maxC)
			if val == "" {
				continue
			}
			if _, set := c[target]; !set {
				setPropertyValue(c, target, val)
			}
		}
	}

	// Pass 2: value-driven, label directly above a numeric cell.
	for r := 1; r < maxR; r++ {
		for col := 0; col < maxC; col++ {
			v := s.Cell(r, col)
			if strings.TrimSpace(v) == "" || !looksNumeric(v) {
				continue
			}
			label := s.Cell(r-1, col)
			if strings.TrimSpace(label) == "" || looksNumeric(label) {
				continue
			}
			target, ok := matchPropertyLabel(NormalizeHeader(label))
			if !ok {
				continue
			}
			if _, set := c[target]; !set {
				setPropertyValue(c, target, v)
			}
		}
	}

	return c
}

// firstNeighborValue searches the fixed neighborhood of a label cell: up to
// 3 cells right, up to 3 cells down, then the 2x2 diagonal block below-right.
func firstNeighborValue(s *grid.Sheet, r, col, maxR, maxC int) string {
	for dc := 1; dc <= 3; dc++ {
		if col+dc < maxC {
			if v := s.Cell(r, col+dc); strings.TrimSpace(v) != "" {
				return v
			}
		}
	}
	for dr := 1; dr <= 3; dr++ {
		if r+dr < maxR {
			if v := s.Cell(r+dr, col); strings.TrimSpace(v) != "" {
				return v
			}
		}
	}
	for dr := 1; dr <= 2; dr++ {
		for dc := 1; dc <= 2; dc++ {
			if r+dr < maxR && col+dc < maxC {
				if v := s.Cell(r+dr, col+dc); strings.TrimSpace(v) != "" {
					return v
				}
			}
		}
	}
	return ""
}

func setPropertyValue(c sov.Candidate, target, raw string) {
	if sov.NumericPropertyFields[target] {
		if f := sov.CoerceFloat(raw); f != nil {
			c[target] = *f
		}
		return
	}
	if s := strings.TrimSpace(raw); s != "" {
		c[target] = s
	}
}

func looksNumeric(v string) bool {
	return sov.CoerceFloat(v) != nil
}
