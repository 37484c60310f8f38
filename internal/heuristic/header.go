package heuristic

import "strings"

// headerScoreThreshold is the minimum row score for a row to count as a
// building table header.
const headerScoreThreshold = 2

// DetectHeaderRow scores every row of the sheet and returns the index of the
// best-scoring one. Exact synonym matches score 2, keyword substring hits
// score 1; ties go to the earliest row. Returns ok=false when no row reaches
// the threshold, meaning the sheet has no discoverable building table.
func DetectHeaderRow(rows [][]string) (int, bool) {
	bestIdx := -1
	bestScore := -1

	for i, row := range rows {
		score := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			n := NormalizeHeader(cell)
			if isExactBuildingSynonym(n) {
				score += 2
				continue
			}
			for _, kw := range headerKeywords {
				if strings.Contains(n, kw) {
					score++
					break
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < headerScoreThreshold {
		return 0, false
	}
	return bestIdx, true
}

// BuildColumnMapping maps column indexes of the header row to canonical
// building fields.
func BuildColumnMapping(headerRow []string) map[int]string {
	mapping := make(map[int]string)
	for idx, cell := range headerRow {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		if field, ok := matchBuildingHeader(NormalizeHeader(cell)); ok {
			mapping[idx] = field
		}
	}
	return mapping
}
