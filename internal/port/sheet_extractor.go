package port

import (
	"context"

	"sovbridge/internal/sov"
)

// ExtractInput carries one sheet's grid to an extraction agent.
type ExtractInput struct {
	SourceFile string
	SheetName  string
	Rows       [][]string
}

// ExtractOutput is the uniform agent contract: a sheet classification plus
// candidate records restricted to the canonical schema.
type ExtractOutput struct {
	Classification sov.Classification
	Properties     []sov.Candidate
	Buildings      []sov.Candidate
	ModelUsed      string
	SecondaryModel string // populated in dual-agent consensus mode
}

// SheetExtractor abstracts structured extraction of one sheet, whether by a
// single external agent or a dual-agent consensus wrapper.
type SheetExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
