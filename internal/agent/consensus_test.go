package agent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sovbridge/internal/agent"
	"sovbridge/internal/domain"
	"sovbridge/internal/port"
	"sovbridge/internal/sov"
	"sovbridge/mocks"
)

func extractInput() port.ExtractInput {
	return port.ExtractInput{
		SourceFile: "sov.xlsx",
		SheetName:  "Buildings",
		Rows:       [][]string{{"Bldg #", "Address"}, {"1", "123 Main St"}},
	}
}

func TestMergeExtractorBothSucceed(t *testing.T) {
	primary := new(mocks.MockSheetExtractor)
	secondary := new(mocks.MockSheetExtractor)

	primary.On("Extract", mock.Anything, mock.Anything).Return(&port.ExtractOutput{
		Classification: sov.ClassBuilding,
		Buildings: []sov.Candidate{
			{"building_number": "1", "location_address": "123 Main St", "year_of_construction": "1999"},
		},
		ModelUsed: "model-a",
	}, nil)
	secondary.On("Extract", mock.Anything, mock.Anything).Return(&port.ExtractOutput{
		Classification: sov.ClassBuilding,
		Buildings: []sov.Candidate{
			{"building_number": "1", "location_address": "123  main st.", "construction_type": "Wood Frame"},
		},
		ModelUsed: "model-b",
	}, nil)

	m := agent.NewMergeExtractor(primary, secondary)
	out, err := m.Extract(context.Background(), extractInput())
	require.NoError(t, err)

	assert.Equal(t, sov.ClassBuilding, out.Classification)
	assert.Equal(t, "model-a", out.ModelUsed)
	assert.Equal(t, "model-b", out.SecondaryModel)
	require.Len(t, out.Buildings, 1)

	b := out.Buildings[0]
	// Fuzzy-equal addresses keep the primary's spelling.
	assert.Equal(t, "123 Main St", b["location_address"])
	// Single-sided values win outright.
	assert.Equal(t, "1999", b["year_of_construction"])
	assert.Equal(t, "Wood Frame", b["construction_type"])
}

func TestMergeExtractorGeneralClassificationWins(t *testing.T) {
	primary := new(mocks.MockSheetExtractor)
	secondary := new(mocks.MockSheetExtractor)

	primary.On("Extract", mock.Anything, mock.Anything).Return(&port.ExtractOutput{
		Classification: sov.ClassBuilding,
		Buildings:      []sov.Candidate{{"building_number": "1"}},
		ModelUsed:      "model-a",
	}, nil)
	secondary.On("Extract", mock.Anything, mock.Anything).Return(&port.ExtractOutput{
		Classification: sov.ClassGeneral,
		Properties:     []sov.Candidate{{"location_city": "Springfield"}},
		ModelUsed:      "model-b",
	}, nil)

	m := agent.NewMergeExtractor(primary, secondary)
	out, err := m.Extract(context.Background(), extractInput())
	require.NoError(t, err)

	assert.Equal(t, sov.ClassGeneral, out.Classification)
	// A merged-general sheet keeps no buildings, even from the agent that
	// voted building.
	assert.Empty(t, out.Buildings)
}

func TestMergeExtractorSurvivorFallback(t *testing.T) {
	primary := new(mocks.MockSheetExtractor)
	secondary := new(mocks.MockSheetExtractor)

	primary.On("Extract", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	secondary.On("Extract", mock.Anything, mock.Anything).Return(&port.ExtractOutput{
		Classification: sov.ClassBuilding,
		Buildings:      []sov.Candidate{{"building_number": "1"}},
		ModelUsed:      "model-b",
	}, nil)

	m := agent.NewMergeExtractor(primary, secondary)
	out, err := m.Extract(context.Background(), extractInput())
	require.NoError(t, err)

	assert.Equal(t, "model-b", out.ModelUsed)
	assert.Equal(t, "model-b", out.SecondaryModel)
	require.Len(t, out.Buildings, 1)
}

func TestMergeExtractorBothFail(t *testing.T) {
	primary := new(mocks.MockSheetExtractor)
	secondary := new(mocks.MockSheetExtractor)

	primary.On("Extract", mock.Anything, mock.Anything).Return(nil, errors.New("primary down"))
	secondary.On("Extract", mock.Anything, mock.Anything).Return(nil, errors.New("secondary down"))

	m := agent.NewMergeExtractor(primary, secondary)
	out, err := m.Extract(context.Background(), extractInput())
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domain.ErrExtractionService))
}

func TestMergeExtractorPositionalPadding(t *testing.T) {
	primary := new(mocks.MockSheetExtractor)
	secondary := new(mocks.MockSheetExtractor)

	primary.On("Extract", mock.Anything, mock.Anything).Return(&port.ExtractOutput{
		Classification: sov.ClassBuilding,
		Buildings: []sov.Candidate{
			{"building_number": "1"},
			{"building_number": "2"},
		},
		ModelUsed: "model-a",
	}, nil)
	secondary.On("Extract", mock.Anything, mock.Anything).Return(&port.ExtractOutput{
		Classification: sov.ClassBuilding,
		Buildings: []sov.Candidate{
			{"building_number": "1", "num_units": "8"},
		},
		ModelUsed: "model-b",
	}, nil)

	m := agent.NewMergeExtractor(primary, secondary)
	out, err := m.Extract(context.Background(), extractInput())
	require.NoError(t, err)

	require.Len(t, out.Buildings, 2)
	assert.Equal(t, "8", out.Buildings[0]["num_units"])
	// The unpaired candidate passes through against an empty partner.
	assert.Equal(t, "2", out.Buildings[1]["building_number"])
}

func TestMergeCandidatesFieldRules(t *testing.T) {
	a := sov.Candidate{
		"location_address":   "123 Main St, Springfield",
		"year_of_construction": "1999",
		"units_per_building":   "5",
		"building_class":       "Apts",
		"garage_sq_ft":         nil,
	}
	b := sov.Candidate{
		"location_address":   "123 Main St",
		"construction_type":  "Wood Frame",
		"units_per_building": "1 thru 20",
		"building_class":     "Apartments Residential",
		"garage_sq_ft":       "",
	}

	out := agent.MergeCandidates("Buildings", "building", 0, a, b)

	// Both null: absent.
	_, ok := out["garage_sq_ft"]
	assert.False(t, ok)
	// One-sided values win.
	assert.Equal(t, "1999", out["year_of_construction"])
	assert.Equal(t, "Wood Frame", out["construction_type"])
	// Address containment counts as agreement and keeps a's spelling.
	assert.Equal(t, "123 Main St, Springfield", out["location_address"])
	// Disagreement on the unit field: the range is richer.
	assert.Equal(t, "1 thru 20", out["units_per_building"])
	// Disagreement elsewhere: longer string wins.
	assert.Equal(t, "Apartments Residential", out["building_class"])
}

func TestMergeClassification(t *testing.T) {
	assert.Equal(t, sov.ClassGeneral, agent.MergeClassification(sov.ClassGeneral, sov.ClassBuilding))
	assert.Equal(t, sov.ClassGeneral, agent.MergeClassification(sov.ClassBuilding, sov.ClassGeneral))
	assert.Equal(t, sov.ClassBuilding, agent.MergeClassification(sov.ClassBuilding, sov.ClassBuilding))
}
