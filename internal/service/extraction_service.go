package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"sovbridge/internal/domain"
	"sovbridge/internal/grid"
	"sovbridge/internal/heuristic"
	"sovbridge/internal/port"
	"sovbridge/internal/sov"
)

// ExtractionResult is the outcome of one workbook extraction. SheetErrors
// carries per-sheet failures; a failed sheet never aborts the workbook.
type ExtractionResult struct {
	Records     *sov.ResultSet
	SheetCount  int
	SheetErrors []domain.SheetError
}

// ExtractionService defines the workbook extraction contract.
type ExtractionService interface {
	ExtractWorkbook(ctx context.Context, sourceFile string, data []byte, mode domain.ExtractionMode) (*ExtractionResult, error)
}

type extractionService struct {
	agent         port.SheetExtractor // dual-consensus extractor; nil in heuristic-only deployments
	includeHidden bool
	concurrency   int
}

// NewExtractionService creates an ExtractionService. agentExtractor may be nil
// when only the heuristic mode is served.
func NewExtractionService(agentExtractor port.SheetExtractor, includeHidden bool, concurrency int) ExtractionService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &extractionService{
		agent:         agentExtractor,
		includeHidden: includeHidden,
		concurrency:   concurrency,
	}
}

// sheetOutcome is the raw per-sheet result before the sequential
// inheritance/assembly phase.
type sheetOutcome struct {
	classification sov.Classification
	properties     []sov.Candidate
	buildings      []sov.Candidate
	tableFound     bool
	err            error
}

func (s *extractionService) ExtractWorkbook(ctx context.Context, sourceFile string, data []byte, mode domain.ExtractionMode) (*ExtractionResult, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
	if mode != domain.ModeHeuristic && s.agent == nil {
		return nil, fmt.Errorf("%w: mode %q requires a configured extraction agent", domain.ErrInvalidMode, mode)
	}

	sheets, err := grid.Load(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	kept := make([]grid.Sheet, 0, len(sheets))
	for _, sh := range sheets {
		if sh.Hidden && !s.includeHidden {
			log.Printf("extractionService: skipping hidden sheet %q in %s", sh.Name, sourceFile)
			continue
		}
		kept = append(kept, sh)
	}

	// Fan out per sheet; sheets share no mutable state. Each worker writes
	// only its own slot.
	outcomes := make([]sheetOutcome, len(kept))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range kept {
		i, sh := i, kept[i]
		g.Go(func() error {
			outcomes[i] = s.extractSheet(gctx, sourceFile, &sh, mode)
			return nil
		})
	}
	_ = g.Wait()

	// A cancelled workbook discards partial results rather than surfacing an
	// incomplete building set as complete.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.resolve(sourceFile, kept, outcomes), nil
}

func (s *extractionService) extractSheet(ctx context.Context, sourceFile string, sh *grid.Sheet, mode domain.ExtractionMode) sheetOutcome {
	switch mode {
	case domain.ModeHeuristic:
		return heuristicOutcome(sourceFile, sh)
	case domain.ModeAgent:
		return s.agentOutcome(ctx, sourceFile, sh)
	default: // hybrid
		out := heuristicOutcome(sourceFile, sh)
		// A header hit with zero accepted rows is as useless as no header;
		// either way the agent gets a shot at the sheet.
		if out.tableFound && len(out.buildings) > 0 {
			return out
		}
		log.Printf("extractionService: heuristic yielded no building rows on sheet %q, handing to agent", sh.Name)
		return s.agentOutcome(ctx, sourceFile, sh)
	}
}

func heuristicOutcome(sourceFile string, sh *grid.Sheet) sheetOutcome {
	res := heuristic.ExtractSheet(sourceFile, sh)
	if !res.TableFound {
		// Nothing the heuristic can say about this sheet.
		return sheetOutcome{classification: sov.ClassGeneral}
	}
	out := sheetOutcome{classification: sov.ClassBuilding, tableFound: true, buildings: res.Buildings}
	if res.Property != nil {
		out.properties = []sov.Candidate{res.Property}
	}
	return out
}

func (s *extractionService) agentOutcome(ctx context.Context, sourceFile string, sh *grid.Sheet) sheetOutcome {
	out, err := s.agent.Extract(ctx, port.ExtractInput{
		SourceFile: sourceFile,
		SheetName:  sh.Name,
		Rows:       sh.Rows,
	})
	if err != nil {
		return sheetOutcome{err: err}
	}
	return sheetOutcome{
		classification: out.Classification,
		properties:     out.Properties,
		buildings:      out.Buildings,
	}
}

// resolve runs the sequential tail of the pipeline: metadata accumulation in
// workbook sheet order, record assembly, and inheritance. It only starts once
// every sheet has finished, since a later sheet may still contribute address
// context.
func (s *extractionService) resolve(sourceFile string, sheets []grid.Sheet, outcomes []sheetOutcome) *ExtractionResult {
	acc := sov.NewMetadataAccumulator()
	var propCands, bldgCands []sov.Candidate
	var sheetErrors []domain.SheetError

	for i, o := range outcomes {
		if o.err != nil {
			log.Printf("extractionService: sheet %q in %s failed: %v", sheets[i].Name, sourceFile, o.err)
			sheetErrors = append(sheetErrors, domain.SheetError{
				SheetName: sheets[i].Name,
				Message:   o.err.Error(),
			})
			continue
		}
		if o.classification == sov.ClassGeneral {
			for _, p := range o.properties {
				acc.Observe(p)
				propCands = append(propCands, p)
			}
			continue
		}
		propCands = append(propCands, o.properties...)
		bldgCands = append(bldgCands, o.buildings...)
	}

	rs := &sov.ResultSet{
		Properties: make([]*sov.PropertyRecord, 0, len(propCands)),
		Buildings:  make([]*sov.BuildingRecord, 0, len(bldgCands)),
	}
	for _, c := range propCands {
		rec, err := sov.AssembleProperty(c)
		if err != nil {
			log.Printf("extractionService: dropping property candidate from %s: %v", sourceFile, err)
			continue
		}
		rs.Properties = append(rs.Properties, rec)
	}
	for _, c := range bldgCands {
		rec, err := sov.AssembleBuilding(c)
		if err != nil {
			log.Printf("extractionService: dropping building candidate from %s: %v", sourceFile, err)
			continue
		}
		rs.Buildings = append(rs.Buildings, rec)
	}

	acc.Apply(rs.Buildings)

	return &ExtractionResult{
		Records:     rs,
		SheetCount:  len(sheets),
		SheetErrors: sheetErrors,
	}
}
