package sov_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sovbridge/internal/sov"
)

func TestMetadataAccumulatorObserveAndApply(t *testing.T) {
	acc := sov.NewMetadataAccumulator()
	acc.Observe(sov.Candidate{
		"location_city":  "Sun City",
		"location_state": "AZ",
	})
	// A later general sheet overwrites field by field.
	acc.Observe(sov.Candidate{
		"location_city": "Sun City West",
		"location_zip":  "85375",
	})

	city, ok := acc.Get("location_city")
	assert.True(t, ok)
	assert.Equal(t, "Sun City West", city)
	state, ok := acc.Get("location_state")
	assert.True(t, ok)
	assert.Equal(t, "AZ", state)

	ownCity := "Montgomery"
	records := []*sov.BuildingRecord{
		{SourceFile: "a.xlsx", SheetName: "B"},
		{SourceFile: "a.xlsx", SheetName: "B", LocationCity: &ownCity},
	}
	acc.Apply(records)

	assert.Equal(t, "Sun City West", *records[0].LocationCity)
	assert.Equal(t, "AZ", *records[0].LocationState)
	assert.Equal(t, "85375", *records[0].LocationZip)
	assert.Nil(t, records[0].LocationAddress)

	// Row-authoritative value survives.
	assert.Equal(t, "Montgomery", *records[1].LocationCity)
	assert.Equal(t, "AZ", *records[1].LocationState)
}

func TestMetadataAccumulatorIgnoresNullTokens(t *testing.T) {
	acc := sov.NewMetadataAccumulator()
	acc.Observe(sov.Candidate{
		"location_city": "n/a",
		"location_zip":  nil,
	})
	assert.Equal(t, 0, acc.Len())

	records := []*sov.BuildingRecord{{SourceFile: "a.xlsx", SheetName: "B"}}
	acc.Apply(records)
	assert.Nil(t, records[0].LocationCity)
}

func TestApplyFillsEmptyString(t *testing.T) {
	acc := sov.NewMetadataAccumulator()
	acc.Observe(sov.Candidate{"location_state": "OH"})

	empty := ""
	rec := &sov.BuildingRecord{SourceFile: "a.xlsx", SheetName: "B", LocationState: &empty}
	acc.Apply([]*sov.BuildingRecord{rec})
	assert.Equal(t, "OH", *rec.LocationState)
}
