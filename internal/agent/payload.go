package agent

import "encoding/json"

// Truncation caps for the serialized sheet sent to an agent. SOV tables live
// in the top-left region; anything beyond this is prompt ballast.
const (
	MaxPayloadRows = 80
	MaxPayloadCols = 25
)

// SerializeRows truncates a sheet grid to the payload caps. Cells are already
// plain text; empty cells stay "".
func SerializeRows(rows [][]string) [][]string {
	out := make([][]string, 0, min(len(rows), MaxPayloadRows))
	for _, row := range rows[:min(len(rows), MaxPayloadRows)] {
		cols := min(len(row), MaxPayloadCols)
		outRow := make([]string, cols)
		copy(outRow, row[:cols])
		out = append(out, outRow)
	}
	return out
}

// sheetPayload is the user-message body sent alongside the system prompt.
type sheetPayload struct {
	SourceFile string     `json:"source_file"`
	SheetName  string     `json:"sheet_name"`
	SheetData  [][]string `json:"sheet_data"`
}

// BuildUserPayload serializes one sheet into the JSON user message.
func BuildUserPayload(sourceFile, sheetName string, rows [][]string) (string, error) {
	b, err := json.Marshal(sheetPayload{
		SourceFile: sourceFile,
		SheetName:  sheetName,
		SheetData:  SerializeRows(rows),
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
