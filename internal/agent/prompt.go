package agent

import (
	"strings"

	"sovbridge/internal/sov"
)

// BuildSheetPrompt returns the system prompt for SOV sheet extraction. The
// response contract is a single JSON object:
//
//	{"sheet_classification": "general"|"building",
//	 "properties": [ {canonical property fields} ],
//	 "buildings":  [ {canonical building fields} ]}
func BuildSheetPrompt() string {
	var b strings.Builder

	b.WriteString(`You are an expert underwriter assistant that parses insurance Statement of Values (SOV) spreadsheets.

You receive a JSON object:
{
  "source_file": "...",
  "sheet_name": "...",
  "sheet_data": [["row1col1", "row1col2", ...], ...]
}

sheet_data is one worksheet as rows of cell strings; "" means an empty cell.

You MUST return valid JSON ONLY, with this top-level structure:
{
  "sheet_classification": "general" or "building",
  "properties": [ at most ONE property record for this sheet ],
  "buildings": [ one record per building row ]
}

CLASSIFICATION RULES
- "general": the sheet carries property-level or summary information
  (e.g. "General Information", "Property Summary", a single location block,
  totals, management info) and has NO repeated building rows.
- "building": the sheet contains a table of building rows.
- A general sheet MUST NOT produce any building records. Extract its
  location_address, location_city, location_state, location_zip (and
  location_full_address when present) into the property record instead.
- Do NOT treat management/broker/policy information as property location data.

BUILDING ROW RULES
- A row is a building when it has a building number, or an address, or
  square footage / unit counts / replacement cost values.
- Exclude amenity-only rows (Lighting, Mailboxes, Signs, Landscaping),
  totals rows, notes, and disclaimers.
- Handle multi-number addresses ("13344, 42, 40, 38") and unit ranges
  ("1 thru 20", "29-36"); keep ranges as strings.
- Convert numeric strings ("$1,241,989", "7,015") into numbers.
- Use null for any field you cannot confidently determine; never invent data.
- row_index is the 1-based sheet row the building came from, or null.

PROPERTY RECORD FIELDS (use null when unknown):
`)
	writeFieldList(&b, sov.PropertyFields)
	b.WriteString(`
A property record may additionally carry location_full_address,
location_address, location_city, location_state, location_zip harvested from
a general sheet.

BUILDING RECORD FIELDS (use null when unknown):
`)
	writeFieldList(&b, sov.BuildingFields)
	b.WriteString(`
Field names MUST exactly match the lists above. Output strictly valid JSON.`)

	return b.String()
}

func writeFieldList(b *strings.Builder, fields []string) {
	for _, f := range fields {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}
}
