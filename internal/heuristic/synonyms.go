package heuristic

import (
	"regexp"
	"strings"
)

// Synonym pairs one normalized header/label spelling with the canonical
// field it maps to. Tables are ordered slices, not maps: substring fallback
// matching must be deterministic, first match wins.
type Synonym struct {
	Pattern string
	Field   string
}

// BuildingHeaderSynonyms maps normalized column headers to canonical
// building fields.
var BuildingHeaderSynonyms = []Synonym{
	// building id
	{"bldg #", "building_number"},
	{"bldg", "building_number"},
	{"building #", "building_number"},
	{"building number", "building_number"},
	{"bldg no.", "building_number"},

	// address
	{"location full address", "location_full_address"},
	{"address #", "location_address"},
	{"address", "location_address"},
	{"address name", "location_address"},
	{"street", "location_address"},

	{"city", "location_city"},
	{"st", "location_state"},
	{"state", "location_state"},
	{"zip", "location_zip"},
	{"zip code", "location_zip"},

	// geo
	{"lat", "lat"},
	{"latitude", "lat"},
	{"long", "long"},
	{"longitude", "long"},

	// external ids
	{"betterview id", "betterview_id"},
	{"betterview building number", "betterview_building_number"},

	// units / size
	{"units per building", "units_per_building"},
	{"number of units", "num_units"},
	{"# of units", "num_units"},
	{"units", "num_units"},

	// values
	{"replacement cost", "replacement_cost_tiv"},
	{"building tiv", "replacement_cost_tiv"},
	{"tiv", "replacement_cost_tiv"},

	// area
	{"livable sq ft", "livable_sq_ft"},
	{"livable sq. ft.", "livable_sq_ft"},
	{"livable square footage", "livable_sq_ft"},
	{"garage sq ft", "garage_sq_ft"},
	{"garage sq. ft.", "garage_sq_ft"},
	{"garage square footage", "garage_sq_ft"},
	{"commercial sq ft", "commercial_sq_ft"},

	// misc building attrs
	{"building class", "building_class"},
	{"parking type", "parking_type"},
	{"roof type", "roof_type"},
	{"smoke detectors", "smoke_detectors"},
	{"sprinklered", "sprinklered"},
	{"year of construction", "year_of_construction"},
	{"year built", "year_of_construction"},
	{"number of stories", "number_of_stories"},
	{"# of stories", "number_of_stories"},
	{"stories", "number_of_stories"},
	{"construction type", "construction_type"},
	{"construction", "construction_type"},
}

// PropertyLabelSynonyms maps normalized label cells to canonical property
// fields.
var PropertyLabelSynonyms = []Synonym{
	{"number of buildings", "number_of_buildings"},
	{"# of buildings", "number_of_buildings"},

	{"roof type", "roof_type"},

	{"building valuation type", "building_valuation_type"},

	// replacement cost / tiv variants
	{"building replacement cost", "building_replacement_cost"},
	{"replacement cost", "building_replacement_cost"},
	{"building replacement cost ($)", "building_replacement_cost"},
	{"bldg replacement cost", "building_replacement_cost"},
	{"bldg repl cost", "building_replacement_cost"},
	{"rc", "building_replacement_cost"},
	{"rc value", "building_replacement_cost"},

	{"blanket outdoor property", "blanket_outdoor_property"},
	{"business personal property", "business_personal_property"},
	{"bpp", "business_personal_property"},
	{"total insurable value", "total_insurable_value"},
	{"tiv", "total_insurable_value"},

	{"general liability", "general_liability"},
	{"building ordinance a", "building_ordinance_a"},
	{"building ordinance b", "building_ordinance_b"},
	{"building ordinance c", "building_ordinance_c"},
	{"a , b & c limits", "building_ordinance_a"},

	{"equipment breakdown", "equipment_breakdown"},
	{"sewer or drain back up", "sewer_or_drain_backup"},
	{"sewer backup", "sewer_or_drain_backup"},

	{"business income", "business_income"},
	{"actual loss sustained total", "business_income"},
	{"als", "business_income"},

	{"hired and non-owned auto", "hired_and_non_owned_auto"},

	{"playgrounds", "playgrounds_number"},
	{"streets miles", "streets_miles"},
	{"pools", "pools_number"},
	{"spas", "spas_number"},
	{"wader pools", "wader_pools_number"},
	{"restroom building sq ft", "restroom_building_sq_ft"},
	{"guardhouse sq ft", "guardhouse_sq_ft"},
	{"clubhouse sq ft", "clubhouse_sq_ft"},
	{"fitness center sq ft", "fitness_center_sq_ft"},
	{"tennis courts", "tennis_courts_number"},
	{"basketball courts", "basketball_courts_number"},
	{"other sport courts", "other_sport_courts_number"},
	{"walking / biking trails", "walking_biking_trails_miles"},
	{"walking/biking trails", "walking_biking_trails_miles"},
	{"lakes or ponds", "lakes_or_ponds_number"},
	{"boat docks and slips", "boat_docks_and_slips_number"},
	{"dog parks", "dog_parks_number"},
	{"elevators", "elevators_number"},
	{"commercial exposure sq ft", "commercial_exposure_sq_ft"},
}

// headerKeywords earn a row +1 per substring hit during header scoring.
var headerKeywords = []string{"bldg", "street", "address", "zip", "city", "units", "livable"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeHeader canonicalizes a header or label cell: trim, lowercase,
// collapse whitespace, strip colons.
func NormalizeHeader(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	v = whitespaceRe.ReplaceAllString(v, " ")
	return strings.ReplaceAll(v, ":", "")
}

// matchBuildingHeader resolves a normalized header to a canonical building
// field: exact synonym lookup first, then substring containment restricted to
// patterns longer than 3 characters.
func matchBuildingHeader(norm string) (string, bool) {
	for _, s := range BuildingHeaderSynonyms {
		if s.Pattern == norm {
			return s.Field, true
		}
	}
	for _, s := range BuildingHeaderSynonyms {
		if len(s.Pattern) > 3 && strings.Contains(norm, s.Pattern) {
			return s.Field, true
		}
	}
	return "", false
}

// matchPropertyLabel resolves a normalized label cell to a canonical property
// field: exact lookup first, then substring containment, first match wins.
func matchPropertyLabel(norm string) (string, bool) {
	for _, s := range PropertyLabelSynonyms {
		if s.Pattern == norm {
			return s.Field, true
		}
	}
	for _, s := range PropertyLabelSynonyms {
		if strings.Contains(norm, s.Pattern) {
			return s.Field, true
		}
	}
	return "", false
}

func isExactBuildingSynonym(norm string) bool {
	for _, s := range BuildingHeaderSynonyms {
		if s.Pattern == norm {
			return true
		}
	}
	return false
}
