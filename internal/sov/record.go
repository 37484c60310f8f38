package sov

// PropertyRecord is the fully-typed property-level summary for one sheet.
// Identity: (source_file, sheet_name).
type PropertyRecord struct {
	SourceFile               string   `json:"source_file" db:"source_file"`
	SheetName                string   `json:"sheet_name" db:"sheet_name"`
	NumberOfBuildings        *float64 `json:"number_of_buildings" db:"number_of_buildings"`
	RoofType                 *string  `json:"roof_type" db:"roof_type"`
	BuildingValuationType    *string  `json:"building_valuation_type" db:"building_valuation_type"`
	BuildingReplacementCost  *float64 `json:"building_replacement_cost" db:"building_replacement_cost"`
	BlanketOutdoorProperty   *float64 `json:"blanket_outdoor_property" db:"blanket_outdoor_property"`
	BusinessPersonalProperty *float64 `json:"business_personal_property" db:"business_personal_property"`
	TotalInsurableValue      *float64 `json:"total_insurable_value" db:"total_insurable_value"`
	GeneralLiability         *float64 `json:"general_liability" db:"general_liability"`
	BuildingOrdinanceA       *float64 `json:"building_ordinance_a" db:"building_ordinance_a"`
	BuildingOrdinanceB       *float64 `json:"building_ordinance_b" db:"building_ordinance_b"`
	BuildingOrdinanceC       *float64 `json:"building_ordinance_c" db:"building_ordinance_c"`
	EquipmentBreakdown       *float64 `json:"equipment_breakdown" db:"equipment_breakdown"`
	SewerOrDrainBackup       *float64 `json:"sewer_or_drain_backup" db:"sewer_or_drain_backup"`
	BusinessIncome           *float64 `json:"business_income" db:"business_income"`
	HiredAndNonOwnedAuto     *float64 `json:"hired_and_non_owned_auto" db:"hired_and_non_owned_auto"`
	PlaygroundsNumber        *float64 `json:"playgrounds_number" db:"playgrounds_number"`
	StreetsMiles             *float64 `json:"streets_miles" db:"streets_miles"`
	PoolsNumber              *float64 `json:"pools_number" db:"pools_number"`
	SpasNumber               *float64 `json:"spas_number" db:"spas_number"`
	WaderPoolsNumber         *float64 `json:"wader_pools_number" db:"wader_pools_number"`
	RestroomBuildingSqFt     *float64 `json:"restroom_building_sq_ft" db:"restroom_building_sq_ft"`
	GuardhouseSqFt           *float64 `json:"guardhouse_sq_ft" db:"guardhouse_sq_ft"`
	ClubhouseSqFt            *float64 `json:"clubhouse_sq_ft" db:"clubhouse_sq_ft"`
	FitnessCenterSqFt        *float64 `json:"fitness_center_sq_ft" db:"fitness_center_sq_ft"`
	TennisCourtsNumber       *float64 `json:"tennis_courts_number" db:"tennis_courts_number"`
	BasketballCourtsNumber   *float64 `json:"basketball_courts_number" db:"basketball_courts_number"`
	OtherSportCourtsNumber   *float64 `json:"other_sport_courts_number" db:"other_sport_courts_number"`
	WalkingBikingTrailsMiles *float64 `json:"walking_biking_trails_miles" db:"walking_biking_trails_miles"`
	LakesOrPondsNumber       *float64 `json:"lakes_or_ponds_number" db:"lakes_or_ponds_number"`
	BoatDocksAndSlipsNumber  *float64 `json:"boat_docks_and_slips_number" db:"boat_docks_and_slips_number"`
	DogParksNumber           *float64 `json:"dog_parks_number" db:"dog_parks_number"`
	ElevatorsNumber          *float64 `json:"elevators_number" db:"elevators_number"`
	CommercialExposureSqFt   *float64 `json:"commercial_exposure_sq_ft" db:"commercial_exposure_sq_ft"`
}

// BuildingRecord is the fully-typed record for one detected building.
// Identity: (source_file, sheet_name, row_index) in the heuristic path;
// positional index in the agent path (row_index may be null there).
type BuildingRecord struct {
	SourceFile               string   `json:"source_file" db:"source_file"`
	SheetName                string   `json:"sheet_name" db:"sheet_name"`
	RowIndex                 *int     `json:"row_index" db:"row_index"`
	BuildingNumber           *string  `json:"building_number" db:"building_number"`
	LocationFullAddress      *string  `json:"location_full_address" db:"location_full_address"`
	LocationAddress          *string  `json:"location_address" db:"location_address"`
	LocationCity             *string  `json:"location_city" db:"location_city"`
	LocationState            *string  `json:"location_state" db:"location_state"`
	LocationZip              *string  `json:"location_zip" db:"location_zip"`
	Lat                      *float64 `json:"lat" db:"lat"`
	Long                     *float64 `json:"long" db:"long"`
	BetterviewID             *string  `json:"betterview_id" db:"betterview_id"`
	BetterviewBuildingNumber *string  `json:"betterview_building_number" db:"betterview_building_number"`
	UnitsPerBuilding         *string  `json:"units_per_building" db:"units_per_building"`
	ReplacementCostTIV       *float64 `json:"replacement_cost_tiv" db:"replacement_cost_tiv"`
	NumUnits                 *float64 `json:"num_units" db:"num_units"`
	LivableSqFt              *float64 `json:"livable_sq_ft" db:"livable_sq_ft"`
	GarageSqFt               *float64 `json:"garage_sq_ft" db:"garage_sq_ft"`
	CommercialSqFt           *float64 `json:"commercial_sq_ft" db:"commercial_sq_ft"`
	BuildingClass            *string  `json:"building_class" db:"building_class"`
	ParkingType              *string  `json:"parking_type" db:"parking_type"`
	RoofType                 *string  `json:"roof_type" db:"roof_type"`
	SmokeDetectors           *string  `json:"smoke_detectors" db:"smoke_detectors"`
	Sprinklered              *string  `json:"sprinklered" db:"sprinklered"`
	YearOfConstruction       *float64 `json:"year_of_construction" db:"year_of_construction"`
	NumberOfStories          *float64 `json:"number_of_stories" db:"number_of_stories"`
	ConstructionType         *string  `json:"construction_type" db:"construction_type"`
}

// ResultSet is the workbook-level output contract: all property and building
// records extracted from one workbook, canonical field names only.
type ResultSet struct {
	Properties []*PropertyRecord `json:"properties"`
	Buildings  []*BuildingRecord `json:"buildings"`
}
