package sov

// Candidate is a raw extraction candidate: canonical field name -> untyped
// value as produced by the heuristic pass or decoded from an agent response.
// Values are string, float64, int, or nil.
type Candidate = map[string]any

// Classification labels a sheet as either a general/summary sheet
// (property metadata only) or a building table sheet.
type Classification string

const (
	ClassGeneral  Classification = "general"
	ClassBuilding Classification = "building"
)

// Valid reports whether c is one of the two known classifications.
func (c Classification) Valid() bool {
	return c == ClassGeneral || c == ClassBuilding
}

// PropertyFields is the canonical ordered field list for property records.
var PropertyFields = []string{
	"source_file",
	"sheet_name",
	"number_of_buildings",
	"roof_type",
	"building_valuation_type",
	"building_replacement_cost",
	"blanket_outdoor_property",
	"business_personal_property",
	"total_insurable_value",
	"general_liability",
	"building_ordinance_a",
	"building_ordinance_b",
	"building_ordinance_c",
	"equipment_breakdown",
	"sewer_or_drain_backup",
	"business_income",
	"hired_and_non_owned_auto",
	"playgrounds_number",
	"streets_miles",
	"pools_number",
	"spas_number",
	"wader_pools_number",
	"restroom_building_sq_ft",
	"guardhouse_sq_ft",
	"clubhouse_sq_ft",
	"fitness_center_sq_ft",
	"tennis_courts_number",
	"basketball_courts_number",
	"other_sport_courts_number",
	"walking_biking_trails_miles",
	"lakes_or_ponds_number",
	"boat_docks_and_slips_number",
	"dog_parks_number",
	"elevators_number",
	"commercial_exposure_sq_ft",
}

// BuildingFields is the canonical ordered field list for building records.
var BuildingFields = []string{
	"source_file",
	"sheet_name",
	"row_index",
	"building_number",
	"location_full_address",
	"location_address",
	"location_city",
	"location_state",
	"location_zip",
	"lat",
	"long",
	"betterview_id",
	"betterview_building_number",
	"units_per_building",
	"replacement_cost_tiv",
	"num_units",
	"livable_sq_ft",
	"garage_sq_ft",
	"commercial_sq_ft",
	"building_class",
	"parking_type",
	"roof_type",
	"smoke_detectors",
	"sprinklered",
	"year_of_construction",
	"number_of_stories",
	"construction_type",
}

// MetadataFields are the address-like fields harvested from general sheets
// and inherited by building records that lack them.
var MetadataFields = []string{
	"location_full_address",
	"location_address",
	"location_city",
	"location_state",
	"location_zip",
}

// NumericPropertyFields are property fields coerced to float64-or-null.
var NumericPropertyFields = map[string]bool{
	"number_of_buildings":         true,
	"building_replacement_cost":   true,
	"blanket_outdoor_property":    true,
	"business_personal_property":  true,
	"total_insurable_value":       true,
	"general_liability":           true,
	"building_ordinance_a":        true,
	"building_ordinance_b":        true,
	"building_ordinance_c":        true,
	"equipment_breakdown":         true,
	"sewer_or_drain_backup":       true,
	"business_income":             true,
	"hired_and_non_owned_auto":    true,
	"playgrounds_number":          true,
	"streets_miles":               true,
	"pools_number":                true,
	"spas_number":                 true,
	"wader_pools_number":          true,
	"restroom_building_sq_ft":     true,
	"guardhouse_sq_ft":            true,
	"clubhouse_sq_ft":             true,
	"fitness_center_sq_ft":        true,
	"tennis_courts_number":        true,
	"basketball_courts_number":    true,
	"other_sport_courts_number":   true,
	"walking_biking_trails_miles": true,
	"lakes_or_ponds_number":       true,
	"boat_docks_and_slips_number": true,
	"dog_parks_number":            true,
	"elevators_number":            true,
	"commercial_exposure_sq_ft":   true,
}

// NumericBuildingFields are building fields coerced to float64-or-null.
// units_per_building is deliberately absent: range values like "1 thru 20"
// must survive as strings.
var NumericBuildingFields = map[string]bool{
	"lat":                  true,
	"long":                 true,
	"replacement_cost_tiv": true,
	"num_units":            true,
	"livable_sq_ft":        true,
	"garage_sq_ft":         true,
	"commercial_sq_ft":     true,
	"year_of_construction": true,
	"number_of_stories":    true,
}

var (
	propertyFieldSet = makeFieldSet(PropertyFields)
	buildingFieldSet = makeFieldSet(BuildingFields)

	// Property candidates additionally admit the metadata fields so that
	// general sheets can carry address context through the merge stage.
	// Typed assembly drops them again.
	propertyCandidateSet = makeFieldSet(append(append([]string{}, PropertyFields...), MetadataFields...))
)

func makeFieldSet(fields []string) map[string]bool {
	s := make(map[string]bool, len(fields))
	for _, f := range fields {
		s[f] = true
	}
	return s
}

// IsPropertyField reports whether name is part of the canonical property schema.
func IsPropertyField(name string) bool { return propertyFieldSet[name] }

// IsBuildingField reports whether name is part of the canonical building schema.
func IsBuildingField(name string) bool { return buildingFieldSet[name] }

// StripPropertyKeys returns a copy of c restricted to canonical property
// fields plus the address metadata fields.
func StripPropertyKeys(c Candidate) Candidate {
	return stripKeys(c, propertyCandidateSet)
}

// StripBuildingKeys returns a copy of c restricted to canonical building fields.
func StripBuildingKeys(c Candidate) Candidate {
	return stripKeys(c, buildingFieldSet)
}

func stripKeys(c Candidate, allowed map[string]bool) Candidate {
	out := make(Candidate, len(c))
	for k, v := range c {
		if allowed[k] {
			out[k] = v
		}
	}
	return out
}
