package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sovbridge/internal/agent"
)

func TestFuzzyEqualNumeric(t *testing.T) {
	tests := []struct {
		name  string
		a, b  any
		equal bool
	}{
		{"identical ints", 12.0, 12.0, true},
		{"within tolerance", 12.0, 12.4, true},
		{"outside tolerance", 12.0, 13.0, false},
		{"large values rounding noise", "1241989", "1241988.6", true},
		{"large values real disagreement", "1241989", "1240000", false},
		{"formatted vs plain", "$1,241,989", "1241989", true},
		{"one side not numeric", "1241989", "about a million", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, agent.FuzzyEqual("total_insurable_value", tt.a, tt.b))
		})
	}
}

func TestFuzzyEqualAddress(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		equal bool
	}{
		{"case and whitespace", "123 Main St.", "123  main st", true},
		{"dash variants", "100–200 Oak Ave", "100-200 Oak Ave", true},
		{"substring containment", "123 Main St, Springfield", "123 Main St", true},
		{"null token stripped before containment", "123 Main St n/a", "123 Main St", true},
		{"different streets", "123 Main St", "456 Elm St", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, agent.FuzzyEqual("location_address", tt.a, tt.b))
		})
	}
}

func TestFuzzyEqualGeneric(t *testing.T) {
	// Non-address fields never get substring containment.
	assert.False(t, agent.FuzzyEqual("construction_type", "Wood Frame Joisted", "Wood Frame"))
	assert.True(t, agent.FuzzyEqual("construction_type", "Wood Frame!", "wood  frame"))
	assert.True(t, agent.FuzzyEqual("building_class", "Apartments (Residential)", "apartments residential"))
	// The dash survives generic normalization.
	assert.False(t, agent.FuzzyEqual("construction_type", "wood-frame", "wood frame"))
}

func TestRicherValueUnitsRange(t *testing.T) {
	assert.Equal(t, "1 thru 20", agent.RicherValue("units_per_building", "5", "1 thru 20"))
	assert.Equal(t, "29-36", agent.RicherValue("units_per_building", "29-36", "8"))
	// Both ranges: longer wins.
	assert.Equal(t, "1 thru 20", agent.RicherValue("units_per_building", "1-8", "1 thru 20"))
}

func TestRicherValueLongerString(t *testing.T) {
	assert.Equal(t, "Wood Frame Joisted", agent.RicherValue("construction_type", "Wood", "Wood Frame Joisted"))
	// Tie keeps the first value.
	assert.Equal(t, "abcd", agent.RicherValue("construction_type", "abcd", "wxyz"))
}
