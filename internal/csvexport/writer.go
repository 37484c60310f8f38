package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sovbridge/internal/sov"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting extraction records as CSV. Headers
// use the canonical field names so exports round-trip with the JSON API.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteProperties writes the property header row followed by one row per record.
func (w *Writer) WriteProperties(records []*sov.PropertyRecord) error {
	if err := w.csv.Write(sov.PropertyFields); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.csv.Write(propertyToRow(r)); err != nil {
			return err
		}
	}
	return nil
}

// WriteBuildings writes the building header row followed by one row per record.
func (w *Writer) WriteBuildings(records []*sov.BuildingRecord) error {
	if err := w.csv.Write(sov.BuildingFields); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.csv.Write(buildingToRow(r)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// propertyToRow converts a property record to a row in PropertyFields order.
func propertyToRow(r *sov.PropertyRecord) []string {
	return []string{
		r.SourceFile,
		r.SheetName,
		num(r.NumberOfBuildings),
		str(r.RoofType),
		str(r.BuildingValuationType),
		num(r.BuildingReplacementCost),
		num(r.BlanketOutdoorProperty),
		num(r.BusinessPersonalProperty),
		num(r.TotalInsurableValue),
		num(r.GeneralLiability),
		num(r.BuildingOrdinanceA),
		num(r.BuildingOrdinanceB),
		num(r.BuildingOrdinanceC),
		num(r.EquipmentBreakdown),
		num(r.SewerOrDrainBackup),
		num(r.BusinessIncome),
		num(r.HiredAndNonOwnedAuto),
		num(r.PlaygroundsNumber),
		num(r.StreetsMiles),
		num(r.PoolsNumber),
		num(r.SpasNumber),
		num(r.WaderPoolsNumber),
		num(r.RestroomBuildingSqFt),
		num(r.GuardhouseSqFt),
		num(r.ClubhouseSqFt),
		num(r.FitnessCenterSqFt),
		num(r.TennisCourtsNumber),
		num(r.BasketballCourtsNumber),
		num(r.OtherSportCourtsNumber),
		num(r.WalkingBikingTrailsMiles),
		num(r.LakesOrPondsNumber),
		num(r.BoatDocksAndSlipsNumber),
		num(r.DogParksNumber),
		num(r.ElevatorsNumber),
		num(r.CommercialExposureSqFt),
	}
}

// buildingToRow converts a building record to a row in BuildingFields order.
func buildingToRow(r *sov.BuildingRecord) []string {
	return []string{
		r.SourceFile,
		r.SheetName,
		intval(r.RowIndex),
		str(r.BuildingNumber),
		str(r.LocationFullAddress),
		str(r.LocationAddress),
		str(r.LocationCity),
		str(r.LocationState),
		str(r.LocationZip),
		num(r.Lat),
		num(r.Long),
		str(r.BetterviewID),
		str(r.BetterviewBuildingNumber),
		str(r.UnitsPerBuilding),
		num(r.ReplacementCostTIV),
		num(r.NumUnits),
		num(r.LivableSqFt),
		num(r.GarageSqFt),
		num(r.CommercialSqFt),
		str(r.BuildingClass),
		str(r.ParkingType),
		str(r.RoofType),
		str(r.SmokeDetectors),
		str(r.Sprinklered),
		num(r.YearOfConstruction),
		num(r.NumberOfStories),
		str(r.ConstructionType),
	}
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func num(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intval(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a workbook name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
