package domain

// ExtractionMode selects which extraction path runs for a workbook.
type ExtractionMode string

const (
	// ModeHeuristic runs only the deterministic header/label extraction.
	ModeHeuristic ExtractionMode = "heuristic"
	// ModeAgent runs the dual-agent consensus path on every sheet.
	ModeAgent ExtractionMode = "agent"
	// ModeHybrid runs the heuristic first and falls back to the agent path
	// for sheets where it yields no building rows.
	ModeHybrid ExtractionMode = "hybrid"
)

// Valid reports whether m is a known extraction mode.
func (m ExtractionMode) Valid() bool {
	switch m {
	case ModeHeuristic, ModeAgent, ModeHybrid:
		return true
	}
	return false
}

// FileStatus represents the lifecycle of an uploaded SOV workbook.
type FileStatus string

const (
	FileStatusQueued     FileStatus = "queued"
	FileStatusProcessing FileStatus = "processing"
	FileStatusCompleted  FileStatus = "completed"
	FileStatusFailed     FileStatus = "failed"
)
