package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sovbridge/internal/port"
	"sovbridge/internal/sov"
)

type recordRepo struct {
	db *sqlx.DB
}

// NewRecordRepo creates a new PostgreSQL-backed RecordStore.
func NewRecordRepo(db *sqlx.DB) port.RecordStore {
	return &recordRepo{db: db}
}

// propertyRow and buildingRow attach the owning file to a canonical record
// for persistence.
type propertyRow struct {
	FileID uuid.UUID `db:"file_id"`
	sov.PropertyRecord
}

type buildingRow struct {
	FileID uuid.UUID `db:"file_id"`
	sov.BuildingRecord
}

const insertPropertyQuery = `INSERT INTO property_records (
	file_id, source_file, sheet_name, number_of_buildings, roof_type,
	building_valuation_type, building_replacement_cost, blanket_outdoor_property,
	business_personal_property, total_insurable_value, general_liability,
	building_ordinance_a, building_ordinance_b, building_ordinance_c,
	equipment_breakdown, sewer_or_drain_backup, business_income,
	hired_and_non_owned_auto, playgrounds_number, streets_miles, pools_number,
	spas_number, wader_pools_number, restroom_building_sq_ft, guardhouse_sq_ft,
	clubhouse_sq_ft, fitness_center_sq_ft, tennis_courts_number,
	basketball_courts_number, other_sport_courts_number,
	walking_biking_trails_miles, lakes_or_ponds_number,
	boat_docks_and_slips_number, dog_parks_number, elevators_number,
	commercial_exposure_sq_ft
) VALUES (
	:file_id, :source_file, :sheet_name, :number_of_buildings, :roof_type,
	:building_valuation_type, :building_replacement_cost, :blanket_outdoor_property,
	:business_personal_property, :total_insurable_value, :general_liability,
	:building_ordinance_a, :building_ordinance_b, :building_ordinance_c,
	:equipment_breakdown, :sewer_or_drain_backup, :business_income,
	:hired_and_non_owned_auto, :playgrounds_number, :streets_miles, :pools_number,
	:spas_number, :wader_pools_number, :restroom_building_sq_ft, :guardhouse_sq_ft,
	:clubhouse_sq_ft, :fitness_center_sq_ft, :tennis_courts_number,
	:basketball_courts_number, :other_sport_courts_number,
	:walking_biking_trails_miles, :lakes_or_ponds_number,
	:boat_docks_and_slips_number, :dog_parks_number, :elevators_number,
	:commercial_exposure_sq_ft
)`

const insertBuildingQuery = `INSERT INTO building_records (
	file_id, source_file, sheet_name, row_index, building_number,
	location_full_address, location_address, location_city, location_state,
	location_zip, lat, long, betterview_id, betterview_building_number,
	units_per_building, replacement_cost_tiv, num_units, livable_sq_ft,
	garage_sq_ft, commercial_sq_ft, building_class, parking_type, roof_type,
	smoke_detectors, sprinklered, year_of_construction, number_of_stories,
	construction_type
) VALUES (
	:file_id, :source_file, :sheet_name, :row_index, :building_number,
	:location_full_address, :location_address, :location_city, :location_state,
	:location_zip, :lat, :long, :betterview_id, :betterview_building_number,
	:units_per_building, :replacement_cost_tiv, :num_units, :livable_sq_ft,
	:garage_sq_ft, :commercial_sq_ft, :building_class, :parking_type, :roof_type,
	:smoke_detectors, :sprinklered, :year_of_construction, :number_of_stories,
	:construction_type
)`

const selectPropertyColumns = `source_file, sheet_name, number_of_buildings,
	roof_type, building_valuation_type, building_replacement_cost,
	blanket_outdoor_property, business_personal_property, total_insurable_value,
	general_liability, building_ordinance_a, building_ordinance_b,
	building_ordinance_c, equipment_breakdown, sewer_or_drain_backup,
	business_income, hired_and_non_owned_auto, playgrounds_number, streets_miles,
	pools_number, spas_number, wader_pools_number, restroom_building_sq_ft,
	guardhouse_sq_ft, clubhouse_sq_ft, fitness_center_sq_ft,
	tennis_courts_number, basketball_courts_number, other_sport_courts_number,
	walking_biking_trails_miles, lakes_or_ponds_number,
	boat_docks_and_slips_number, dog_parks_number, elevators_number,
	commercial_exposure_sq_ft`

const selectBuildingColumns = `source_file, sheet_name, row_index,
	building_number, location_full_address, location_address, location_city,
	location_state, location_zip, lat, long, betterview_id,
	betterview_building_number, units_per_building, replacement_cost_tiv,
	num_units, livable_sq_ft, garage_sq_ft, commercial_sq_ft, building_class,
	parking_type, roof_type, smoke_detectors, sprinklered, year_of_construction,
	number_of_stories, construction_type`

func (r *recordRepo) ReplaceForFile(ctx context.Context, fileID uuid.UUID, rs *sov.ResultSet) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("recordRepo.ReplaceForFile begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM property_records WHERE file_id = $1", fileID); err != nil {
		return fmt.Errorf("recordRepo.ReplaceForFile delete properties: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM building_records WHERE file_id = $1", fileID); err != nil {
		return fmt.Errorf("recordRepo.ReplaceForFile delete buildings: %w", err)
	}

	if len(rs.Properties) > 0 {
		rows := make([]propertyRow, 0, len(rs.Properties))
		for _, p := range rs.Properties {
			rows = append(rows, propertyRow{FileID: fileID, PropertyRecord: *p})
		}
		if _, err := tx.NamedExecContext(ctx, insertPropertyQuery, rows); err != nil {
			return fmt.Errorf("recordRepo.ReplaceForFile insert properties: %w", err)
		}
	}

	if len(rs.Buildings) > 0 {
		rows := make([]buildingRow, 0, len(rs.Buildings))
		for _, b := range rs.Buildings {
			rows = append(rows, buildingRow{FileID: fileID, BuildingRecord: *b})
		}
		if _, err := tx.NamedExecContext(ctx, insertBuildingQuery, rows); err != nil {
			return fmt.Errorf("recordRepo.ReplaceForFile insert buildings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("recordRepo.ReplaceForFile commit: %w", err)
	}
	return nil
}

func (r *recordRepo) ListProperties(ctx context.Context, fileID uuid.UUID) ([]*sov.PropertyRecord, error) {
	var records []*sov.PropertyRecord
	err := r.db.SelectContext(ctx, &records,
		"SELECT "+selectPropertyColumns+" FROM property_records WHERE file_id = $1 ORDER BY id",
		fileID)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.ListProperties: %w", err)
	}
	return records, nil
}

func (r *recordRepo) ListBuildings(ctx context.Context, fileID uuid.UUID) ([]*sov.BuildingRecord, error) {
	var records []*sov.BuildingRecord
	err := r.db.SelectContext(ctx, &records,
		"SELECT "+selectBuildingColumns+" FROM building_records WHERE file_id = $1 ORDER BY id",
		fileID)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.ListBuildings: %w", err)
	}
	return records, nil
}
