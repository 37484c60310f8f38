package agent

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"sovbridge/internal/domain"
	"sovbridge/internal/port"
	"sovbridge/internal/sov"
)

// MergeExtractor wraps two independently configured SheetExtractors, runs
// both concurrently, and reconciles their outputs field by field. The two
// calls share no state; call order is insignificant and the merge blocks
// until both return.
type MergeExtractor struct {
	primary   port.SheetExtractor
	secondary port.SheetExtractor
}

// NewMergeExtractor creates a MergeExtractor from primary and secondary agents.
func NewMergeExtractor(primary, secondary port.SheetExtractor) *MergeExtractor {
	return &MergeExtractor{primary: primary, secondary: secondary}
}

func (m *MergeExtractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	type result struct {
		output *port.ExtractOutput
		err    error
	}

	var wg sync.WaitGroup
	primaryCh := make(chan result, 1)
	secondaryCh := make(chan result, 1)

	wg.Add(2)
	go func() {
		defer wg.Done()
		out, err := m.primary.Extract(ctx, input)
		primaryCh <- result{out, err}
	}()
	go func() {
		defer wg.Done()
		out, err := m.secondary.Extract(ctx, input)
		secondaryCh <- result{out, err}
	}()

	wg.Wait()
	close(primaryCh)
	close(secondaryCh)

	pResult := <-primaryCh
	sResult := <-secondaryCh

	// Both failed
	if pResult.err != nil && sResult.err != nil {
		return nil, fmt.Errorf("%w: both agents failed for sheet %q: primary: %v; secondary: %v",
			domain.ErrExtractionService, input.SheetName, pResult.err, sResult.err)
	}

	// Only secondary succeeded
	if pResult.err != nil {
		log.Printf("agent.MergeExtractor: primary agent failed for sheet %q (%v), using secondary only",
			input.SheetName, pResult.err)
		sResult.output.SecondaryModel = sResult.output.ModelUsed
		return sResult.output, nil
	}

	// Only primary succeeded
	if sResult.err != nil {
		log.Printf("agent.MergeExtractor: secondary agent failed for sheet %q (%v), using primary only",
			input.SheetName, sResult.err)
		return pResult.output, nil
	}

	return mergeOutputs(input.SheetName, pResult.output, sResult.output), nil
}

func mergeOutputs(sheetName string, primary, secondary *port.ExtractOutput) *port.ExtractOutput {
	merged := &port.ExtractOutput{
		Classification: MergeClassification(primary.Classification, secondary.Classification),
		ModelUsed:      primary.ModelUsed,
		SecondaryModel: secondary.ModelUsed,
	}

	merged.Properties = mergeCandidateLists(sheetName, "property", primary.Properties, secondary.Properties)

	// A merged-general sheet contributes no buildings, even if one agent
	// wrongly produced some.
	if merged.Classification == sov.ClassGeneral {
		return merged
	}

	merged.Buildings = mergeCandidateLists(sheetName, "building", primary.Buildings, secondary.Buildings)
	return merged
}

// MergeClassification merges two sheet classifications: a single "general"
// verdict wins. A false-positive building sheet is costlier than a missed
// general tag.
func MergeClassification(a, b sov.Classification) sov.Classification {
	if a == sov.ClassGeneral || b == sov.ClassGeneral {
		return sov.ClassGeneral
	}
	return sov.ClassBuilding
}

// mergeCandidateLists pairs candidates positionally: index i of agent A with
// index i of agent B, padding the shorter list with empty candidates.
// Positional pairing is a known approximation; it misbehaves when the agents
// over/under-detect rows relative to each other.
func mergeCandidateLists(sheetName, kind string, a, b []sov.Candidate) []sov.Candidate {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]sov.Candidate, 0, n)
	for i := 0; i < n; i++ {
		ca, cb := sov.Candidate{}, sov.Candidate{}
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		out = append(out, MergeCandidates(sheetName, kind, i, ca, cb))
	}
	return out
}

// MergeCandidates reconciles one positional pair of candidates field by
// field: both null stays null, a single non-null value wins outright,
// fuzzy-equal values keep agent A's spelling, and disagreements resolve via
// the richer-value tie-break with an advisory log line.
func MergeCandidates(sheetName, kind string, idx int, a, b sov.Candidate) sov.Candidate {
	out := sov.Candidate{}
	for _, field := range unionKeys(a, b) {
		va, vb := a[field], b[field]
		nullA, nullB := isNullValue(va), isNullValue(vb)

		switch {
		case nullA && nullB:
			// stays absent
		case nullB:
			out[field] = va
		case nullA:
			out[field] = vb
		case FuzzyEqual(field, va, vb):
			out[field] = va
		default:
			richer := RicherValue(field, va, vb)
			out[field] = richer
			log.Printf("agent.MergeExtractor: disagreement on sheet %q %s[%d].%s: primary=%v secondary=%v -> %v",
				sheetName, kind, idx, field, va, vb, richer)
		}
	}
	return out
}

func unionKeys(a, b sov.Candidate) []string {
	set := make(map[string]bool, len(a)+len(b))
	for k := range a {
		set[k] = true
	}
	for k := range b {
		set[k] = true
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNullValue(v any) bool {
	if v == nil {
		return true
	}
	return stringify(v) == ""
}
