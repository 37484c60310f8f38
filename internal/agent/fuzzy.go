package agent

import (
	"math"
	"strings"

	"sovbridge/internal/sov"
)

// addressFields get address-aware normalization during fuzzy comparison and
// the longer-string tie-break.
var addressFields = map[string]bool{
	"location_full_address": true,
	"location_address":      true,
	"location_city":         true,
	"location_state":        true,
	"location_zip":          true,
}

// unitsField is the one field where range notation ("1 thru 20") beats a
// bare count during the tie-break.
const unitsField = "units_per_building"

// numericTolerance absorbs rounding noise between two agents' numbers.
const numericTolerance = 0.5

// FuzzyEqual reports whether two non-null values agree for merge purposes.
// Checks short-circuit: numeric first, then address-aware for address
// fields, then generic string comparison.
func FuzzyEqual(field string, a, b any) bool {
	if numericEqual(a, b) {
		return true
	}
	sa, sb := stringify(a), stringify(b)
	if addressFields[field] {
		if addressEqual(sa, sb) {
			return true
		}
	}
	return genericNormalize(sa) == genericNormalize(sb)
}

// numericEqual holds when both values parse as numbers within tolerance.
// Magnitudes above 1000 are rounded to 1 decimal first; spreadsheet
// formatting differences show up as sub-unit noise at that scale.
func numericEqual(a, b any) bool {
	fa := sov.CoerceFloat(a)
	fb := sov.CoerceFloat(b)
	if fa == nil || fb == nil {
		return false
	}
	x, y := *fa, *fb
	if math.Abs(x) > 1000 {
		x = math.Round(x*10) / 10
	}
	if math.Abs(y) > 1000 {
		y = math.Round(y*10) / 10
	}
	return math.Abs(x-y) <= numericTolerance
}

var dashReplacer = strings.NewReplacer("–", "-", "—", "-", "−", "-")

// addressNormalize collapses whitespace, unifies dash variants, lowercases,
// and strips trailing punctuation.
func addressNormalize(s string) string {
	s = dashReplacer.Replace(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, ".,;:!?")
}

// addressEqual holds when the normalized forms are identical, or when one
// form with null tokens removed is a substring of the other.
func addressEqual(a, b string) bool {
	na, nb := addressNormalize(a), addressNormalize(b)
	if na == nb {
		return true
	}
	sa, sb := stripNullTokens(na), stripNullTokens(nb)
	if sa == "" || sb == "" {
		return false
	}
	return strings.Contains(sa, sb) || strings.Contains(sb, sa)
}

// stripNullTokens drops whitespace-delimited null tokens ("n/a", "none", ...)
// from a normalized string.
func stripNullTokens(s string) string {
	var kept []string
	for _, tok := range strings.Fields(s) {
		if !sov.IsNullToken(tok) {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// genericNormalize lowercases, strips punctuation except dash, and collapses
// whitespace.
func genericNormalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune(r)
		case isPunct(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isPunct(r rune) bool {
	return strings.ContainsRune(`.,;:!?'"()[]{}#$%&*/\`, r)
}

// RicherValue picks the more informative of two disagreeing values. For the
// unit-count field a range beats a bare count; everywhere else the longer
// string wins as a completeness proxy. Ties keep a.
func RicherValue(field string, a, b any) any {
	sa, sb := stringify(a), stringify(b)

	if field == unitsField {
		ra, rb := isRange(sa), isRange(sb)
		if ra != rb {
			if rb {
				return b
			}
			return a
		}
	}

	if len(sb) > len(sa) {
		return b
	}
	return a
}

// isRange detects unit-range notation: "1 thru 20", "29-36", "1 to 8", "1,2,3".
func isRange(s string) bool {
	l := strings.ToLower(s)
	return strings.Contains(l, "to") ||
		strings.Contains(l, "thru") ||
		strings.Contains(l, "-") ||
		strings.Contains(l, ",")
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s := sov.CleanString(v); s != nil {
		return *s
	}
	return ""
}
