package agent

import (
	"encoding/json"
	"fmt"

	"sovbridge/internal/port"
	"sovbridge/internal/sov"
)

// rawResult models the JSON an agent must return for one sheet.
type rawResult struct {
	SheetClassification string          `json:"sheet_classification"`
	Properties          []sov.Candidate `json:"properties"`
	Buildings           []sov.Candidate `json:"buildings"`
}

// DecodeResult validates an agent's JSON text against the response contract
// and returns a schema-clean output: unknown candidate keys are silently
// dropped, missing arrays become empty, and a general sheet never keeps
// building candidates. A malformed or non-conforming payload is an error so
// the caller's retry policy can take another attempt; callers never see
// unparsed free text.
func DecodeResult(text, sourceFile, sheetName, model string) (*port.ExtractOutput, error) {
	var raw rawResult
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parsing agent JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	cls := sov.Classification(raw.SheetClassification)
	if !cls.Valid() {
		return nil, fmt.Errorf("agent returned unknown sheet_classification %q", raw.SheetClassification)
	}

	out := &port.ExtractOutput{
		Classification: cls,
		Properties:     make([]sov.Candidate, 0, len(raw.Properties)),
		Buildings:      make([]sov.Candidate, 0, len(raw.Buildings)),
		ModelUsed:      model,
	}

	for _, p := range raw.Properties {
		c := sov.StripPropertyKeys(p)
		ensureIdentity(c, sourceFile, sheetName)
		out.Properties = append(out.Properties, c)
	}

	// A general sheet contributes property metadata only.
	if cls == sov.ClassGeneral {
		return out, nil
	}

	for _, b := range raw.Buildings {
		c := sov.StripBuildingKeys(b)
		ensureIdentity(c, sourceFile, sheetName)
		out.Buildings = append(out.Buildings, c)
	}
	return out, nil
}

// ensureIdentity forces source_file/sheet_name onto a candidate when the
// agent omitted or mangled them.
func ensureIdentity(c sov.Candidate, sourceFile, sheetName string) {
	if s, _ := c["source_file"].(string); s == "" {
		c["source_file"] = sourceFile
	}
	if s, _ := c["sheet_name"].(string); s == "" {
		c["sheet_name"] = sheetName
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
