package sov

// MetadataAccumulator collects address-like context from general/summary
// sheets across one workbook. It is single-writer: sheets are observed in
// workbook order after all extraction has resolved, and Apply runs only once
// the whole workbook has been scanned.
type MetadataAccumulator struct {
	values map[string]string
}

// NewMetadataAccumulator returns an empty accumulator.
func NewMetadataAccumulator() *MetadataAccumulator {
	return &MetadataAccumulator{values: make(map[string]string)}
}

// Observe harvests metadata fields from a general-sheet candidate. Non-null
// values from later sheets overwrite earlier ones, field by field.
func (m *MetadataAccumulator) Observe(c Candidate) {
	for _, f := range MetadataFields {
		if s := CleanString(c[f]); s != nil {
			m.values[f] = *s
		}
	}
}

// Get returns the accumulated value for a metadata field, if any.
func (m *MetadataAccumulator) Get(field string) (string, bool) {
	v, ok := m.values[field]
	return v, ok
}

// Len returns the number of accumulated fields.
func (m *MetadataAccumulator) Len() int { return len(m.values) }

// Apply fills accumulated metadata into every building record whose
// corresponding field is currently null or empty. Row-authoritative values
// are never overwritten.
func (m *MetadataAccumulator) Apply(records []*BuildingRecord) {
	if len(m.values) == 0 {
		return
	}
	for _, rec := range records {
		fillString(&rec.LocationFullAddress, m.values["location_full_address"])
		fillString(&rec.LocationAddress, m.values["location_address"])
		fillString(&rec.LocationCity, m.values["location_city"])
		fillString(&rec.LocationState, m.values["location_state"])
		fillString(&rec.LocationZip, m.values["location_zip"])
	}
}

func fillString(dst **string, v string) {
	if v == "" {
		return
	}
	if *dst == nil || **dst == "" {
		s := v
		*dst = &s
	}
}
