package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmrdata/internal/models"
)

func TestNormalize_BulkFieldMapping(t *testing.T) {
	raw := []models.RawRecord{
		{
			"areaname":    "Austin-Round Rock, TX MSA",
			"metro_name":  "Austin-Round Rock",
			"state_alpha": "tx",
			"statename":   "Texas",
			"fmr_0":       "1100",
			"fmr_1":       "1250",
			"fmr_2":       "1480",
			"fmr_3":       "1900",
			"fmr_4":       "2250",
		},
	}

	records := Normalize(raw, Options{Fields: BulkFields, DropEmptyRows: true})
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "Austin-Round Rock, TX MSA", r.Name)
	assert.Equal(t, models.AreaTypeMetro, r.Type)
	assert.Equal(t, "TX", r.State)
	assert.Equal(t, "Texas", r.StateName)
	require.NotNil(t, r.StudioRent)
	assert.Equal(t, 1100, *r.StudioRent)
	require.NotNil(t, r.TwoBedroomRent)
	assert.Equal(t, 1480, *r.TwoBedroomRent)
	require.NotNil(t, r.FourBedroomRent)
	assert.Equal(t, 2250, *r.FourBedroomRent)
}

func TestNormalize_UnparseableRentBecomesNil(t *testing.T) {
	raw := []models.RawRecord{
		{
			"areaname":    "Somewhere County",
			"state_alpha": "KS",
			"fmr_0":       "750",
			"fmr_2":       "n/a",
		},
	}

	records := Normalize(raw, Options{Fields: BulkFields, DropEmptyRows: true})
	require.Len(t, records, 1)

	// "n/a" coerces to nil, never to zero.
	assert.Nil(t, records[0].TwoBedroomRent)
	require.NotNil(t, records[0].StudioRent)
	assert.Equal(t, 750, *records[0].StudioRent)
	// Fields absent from the source stay nil.
	assert.Nil(t, records[0].OneBedroomRent)
}

func TestNormalize_ZeroIsReportedNotMissing(t *testing.T) {
	raw := []models.RawRecord{
		{"areaname": "Zero County", "state_alpha": "MT", "fmr_2": "0"},
	}

	records := Normalize(raw, Options{Fields: BulkFields, DropEmptyRows: true})
	require.Len(t, records, 1)
	require.NotNil(t, records[0].TwoBedroomRent)
	assert.Equal(t, 0, *records[0].TwoBedroomRent)
}

func TestNormalize_DropEmptyRowsAsymmetry(t *testing.T) {
	// Every rent field unparseable: the bulk variant drops the row, the API
	// variant keeps it.
	raw := []models.RawRecord{
		{
			"areaname":    "Ghost County",
			"state_alpha": "NM",
			"fmr_0":       "n/a",
			"fmr_1":       "n/a",
			"fmr_2":       "n/a",
			"fmr_3":       "n/a",
			"fmr_4":       "n/a",
		},
	}

	bulk := Normalize(raw, Options{Fields: BulkFields, DropEmptyRows: true})
	assert.Empty(t, bulk)

	kept := Normalize(raw, Options{Fields: BulkFields})
	require.Len(t, kept, 1)
	assert.Equal(t, "Ghost County", kept[0].Name)
	assert.Nil(t, kept[0].TwoBedroomRent)
}

func TestNormalize_TypeInference(t *testing.T) {
	raw := []models.RawRecord{
		{"metro_name": "Boise City", "areaname": "Boise City, ID MSA", "statecode": "ID", "Two-Bedroom": "1300"},
		{"county_name": "Custer County", "statecode": "ID", "Two-Bedroom": "900"},
		{"metro_name": "   ", "county_name": "Blank Metro County", "statecode": "ID", "Two-Bedroom": "880"},
	}

	records := Normalize(raw, Options{Fields: APIFields})
	require.Len(t, records, 3)

	assert.Equal(t, models.AreaTypeMetro, records[0].Type)
	assert.Equal(t, models.AreaTypeCounty, records[1].Type)
	// A whitespace-only metro name does not make a metro.
	assert.Equal(t, models.AreaTypeCounty, records[2].Type)
}

func TestNormalize_AreaNamePriority(t *testing.T) {
	// areaname outranks county_name when both are present.
	raw := []models.RawRecord{
		{"areaname": "Preferred Name", "county_name": "Fallback Name", "statecode": "OR"},
		{"county_name": "Only County Name", "statecode": "OR"},
	}

	records := Normalize(raw, Options{Fields: APIFields})
	require.Len(t, records, 2)
	assert.Equal(t, "Preferred Name", records[0].Name)
	assert.Equal(t, "Only County Name", records[1].Name)
}

func TestNormalize_FloatRenderedWholeNumbers(t *testing.T) {
	// Spreadsheet cells sometimes render integers as floats.
	raw := []models.RawRecord{
		{"areaname": "Float County", "state_alpha": "IA", "fmr_2": "1250.0"},
	}

	records := Normalize(raw, Options{Fields: BulkFields, DropEmptyRows: true})
	require.Len(t, records, 1)
	require.NotNil(t, records[0].TwoBedroomRent)
	assert.Equal(t, 1250, *records[0].TwoBedroomRent)
}
