package sov

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// nullTokens are placeholder strings that mean "no value" in source sheets.
var nullTokens = map[string]bool{
	"":     true,
	"n/a":  true,
	"-":    true,
	"--":   true,
	"none": true,
	"null": true,
}

// IsNullToken reports whether s (after trimming and lowercasing) is a
// placeholder for a missing value.
func IsNullToken(s string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(s))]
}

// CoerceFloat parses v into a float64, tolerating currency signs, thousands
// separators, and surrounding whitespace. Null tokens and unparseable values
// yield nil.
func CoerceFloat(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		f := x
		return &f
	case float32:
		f := float64(x)
		return &f
	case int:
		f := float64(x)
		return &f
	case int64:
		f := float64(x)
		return &f
	case string:
		if IsNullToken(x) {
			return nil
		}
		s := strings.TrimSpace(x)
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, " ", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return CoerceFloat(fmt.Sprintf("%v", v))
	}
}

// CleanString returns the trimmed string form of v, or nil for null tokens
// and empty values.
func CleanString(v any) *string {
	if v == nil {
		return nil
	}
	var s string
	switch x := v.(type) {
	case string:
		s = strings.TrimSpace(x)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	if IsNullToken(s) {
		return nil
	}
	return &s
}

// coerceRowIndex accepts ints, floats, and numeric strings; anything else is nil.
func coerceRowIndex(v any) *int {
	f := CoerceFloat(v)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

// AssembleProperty turns a raw candidate into a fully-typed PropertyRecord:
// every canonical field present (null by default), numeric fields coerced,
// unknown keys silently dropped.
func AssembleProperty(c Candidate) (*PropertyRecord, error) {
	cleaned := make(map[string]any, len(PropertyFields))
	for _, f := range PropertyFields {
		v, ok := c[f]
		if !ok || v == nil {
			cleaned[f] = nil
			continue
		}
		if NumericPropertyFields[f] {
			cleaned[f] = CoerceFloat(v)
		} else {
			cleaned[f] = CleanString(v)
		}
	}

	var rec PropertyRecord
	if err := roundTrip(cleaned, &rec); err != nil {
		return nil, fmt.Errorf("assembling property record: %w", err)
	}
	return &rec, nil
}

// AssembleBuilding turns a raw candidate into a fully-typed BuildingRecord.
func AssembleBuilding(c Candidate) (*BuildingRecord, error) {
	cleaned := make(map[string]any, len(BuildingFields))
	for _, f := range BuildingFields {
		v, ok := c[f]
		if !ok || v == nil {
			cleaned[f] = nil
			continue
		}
		switch {
		case f == "row_index":
			cleaned[f] = coerceRowIndex(v)
		case NumericBuildingFields[f]:
			cleaned[f] = CoerceFloat(v)
		default:
			cleaned[f] = CleanString(v)
		}
	}

	var rec BuildingRecord
	if err := roundTrip(cleaned, &rec); err != nil {
		return nil, fmt.Errorf("assembling building record: %w", err)
	}
	return &rec, nil
}

func roundTrip(cleaned map[string]any, dst any) error {
	data, err := json.Marshal(cleaned)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
