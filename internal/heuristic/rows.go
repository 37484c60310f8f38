package heuristic

import (
	"regexp"
	"strings"

	"sovbridge/internal/sov"
)

var buildingNumberRe = regexp.MustCompile(`^\d+[A-Za-z]?$`)

// totalsKeywords mark footer/summary rows that must not become buildings.
var totalsKeywords = []string{"total", "misc", "statement of values"}

// IsTotalsRow reports whether a row is a totals/footer/summary row rather
// than a building row.
func IsTotalsRow(row []string) bool {
	var b strings.Builder
	for _, c := range row {
		b.WriteString(strings.ToLower(c))
		b.WriteString(" ")
	}
	text := b.String()
	for _, kw := range totalsKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// IsValidBuildingNumber accepts pure integers ("1", "10") and
// integer-plus-letter identifiers ("1A", "2b").
func IsValidBuildingNumber(v string) bool {
	return buildingNumberRe.MatchString(strings.TrimSpace(v))
}

// acceptBuildingRow applies the row-acceptance gate: a candidate becomes a
// building record only with a valid building number AND at least one of
// address, positive livable area, or positive unit count.
func acceptBuildingRow(c sov.Candidate) bool {
	bn, _ := c["building_number"].(string)
	if !IsValidBuildingNumber(bn) {
		return false
	}

	if addr, _ := c["location_address"].(string); strings.TrimSpace(addr) != "" {
		return true
	}
	if v := sov.CoerceFloat(c["livable_sq_ft"]); v != nil && *v > 0 {
		return true
	}
	if v := sov.CoerceFloat(c["num_units"]); v != nil && *v > 0 {
		return true
	}
	return false
}
