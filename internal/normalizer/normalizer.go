// Package normalizer maps source-specific raw records onto the canonical
// AreaRecord schema: field-name translation, numeric coercion of the five
// rent fields, and area-type inference.
package normalizer

import (
	"strconv"
	"strings"

	"fmrdata/internal/models"
)

// FieldMap translates source-specific column names to the five canonical rent
// field names.
type FieldMap map[string]string

// Canonical rent field names, used as FieldMap targets.
const (
	FieldStudio       = "studio_rent"
	FieldOneBedroom   = "one_bedroom_rent"
	FieldTwoBedroom   = "two_bedroom_rent"
	FieldThreeBedroom = "three_bedroom_rent"
	FieldFourBedroom  = "four_bedroom_rent"
)

// BulkFields maps the spreadsheet column names (fmr_0 through fmr_4) to the
// canonical rent fields.
var BulkFields = FieldMap{
	"fmr_0": FieldStudio,
	"fmr_1": FieldOneBedroom,
	"fmr_2": FieldTwoBedroom,
	"fmr_3": FieldThreeBedroom,
	"fmr_4": FieldFourBedroom,
}

// APIFields maps the HUD API's unit-size names to the canonical rent fields.
var APIFields = FieldMap{
	"Efficiency":    FieldStudio,
	"One-Bedroom":   FieldOneBedroom,
	"Two-Bedroom":   FieldTwoBedroom,
	"Three-Bedroom": FieldThreeBedroom,
	"Four-Bedroom":  FieldFourBedroom,
}

// areaNameFields is the priority order for picking the canonical area name:
// the first present, non-empty source field wins.
var areaNameFields = []string{
	"areaname",
	"hud_areaname",
	"hud_area_name",
	"metro_name",
	"countyname",
	"county_name",
	"town_name",
	"area_name",
}

// metroNameFields mark a record as a metro area when present and non-empty.
var metroNameFields = []string{"metro_name", "metroarea_name"}

var stateFields = []string{"state_alpha", "statecode", "state_code", "stusps"}

var stateNameFields = []string{"statename", "state_name", "stname"}

// Options selects the per-variant behavior of Normalize.
type Options struct {
	// Fields translates source rent column names to canonical ones.
	Fields FieldMap

	// DropEmptyRows removes records whose five rent fields are all
	// unparseable or absent. The bulk spreadsheet variant sets this; the
	// paginated API variant keeps such rows.
	DropEmptyRows bool
}

// Normalize converts raw source records to canonical area records. Rent
// coercion never fails a row: an unparseable or absent value becomes nil.
func Normalize(raw []models.RawRecord, opts Options) []models.AreaRecord {
	out := make([]models.AreaRecord, 0, len(raw))
	for _, rec := range raw {
		area := normalizeOne(rec, opts.Fields)
		if opts.DropEmptyRows && allRentsMissing(area) {
			continue
		}
		out = append(out, area)
	}
	return out
}

func normalizeOne(rec models.RawRecord, fields FieldMap) models.AreaRecord {
	area := models.AreaRecord{
		Name:      firstPresent(rec, areaNameFields),
		State:     strings.ToUpper(firstPresent(rec, stateFields)),
		StateName: firstPresent(rec, stateNameFields),
		Type:      inferType(rec),
	}

	for src, canonical := range fields {
		value, ok := rec[src]
		if !ok {
			continue
		}
		parsed := coerceRent(value)
		switch canonical {
		case FieldStudio:
			area.StudioRent = parsed
		case FieldOneBedroom:
			area.OneBedroomRent = parsed
		case FieldTwoBedroom:
			area.TwoBedroomRent = parsed
		case FieldThreeBedroom:
			area.ThreeBedroomRent = parsed
		case FieldFourBedroom:
			area.FourBedroomRent = parsed
		}
	}
	return area
}

// coerceRent parses a rent value to a whole dollar amount. Values that do not
// parse (empty, "n/a", stray text) become nil rather than an error.
func coerceRent(value string) *int {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	// Spreadsheet cells sometimes carry a float rendering of a whole number.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

func inferType(rec models.RawRecord) string {
	for _, field := range metroNameFields {
		if strings.TrimSpace(rec[field]) != "" {
			return models.AreaTypeMetro
		}
	}
	return models.AreaTypeCounty
}

func firstPresent(rec models.RawRecord, fields []string) string {
	for _, field := range fields {
		if v := strings.TrimSpace(rec[field]); v != "" {
			return v
		}
	}
	return ""
}

func allRentsMissing(area models.AreaRecord) bool {
	return area.StudioRent == nil &&
		area.OneBedroomRent == nil &&
		area.TwoBedroomRent == nil &&
		area.ThreeBedroomRent == nil &&
		area.FourBedroomRent == nil
}
