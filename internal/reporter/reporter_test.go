package reporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmrdata/internal/models"
)

func intPtr(n int) *int {
	return &n
}

func reportRecords() []models.AreaRecord {
	return []models.AreaRecord{
		{
			Name: "Pricey Metro", Type: models.AreaTypeMetro, State: "CA",
			StudioRent: intPtr(1800), TwoBedroomRent: intPtr(3200), ThreeBedroomRent: intPtr(4400),
		},
		{
			Name: "Cheap County", Type: models.AreaTypeCounty, State: "OK",
			StudioRent: intPtr(500), TwoBedroomRent: intPtr(700), ThreeBedroomRent: intPtr(1000),
		},
		{
			Name: "Mid County", Type: models.AreaTypeCounty, State: "OH",
			StudioRent: intPtr(800), TwoBedroomRent: intPtr(1100), ThreeBedroomRent: intPtr(1500),
		},
		{
			Name: "Zero County", Type: models.AreaTypeCounty, State: "MT",
			TwoBedroomRent: intPtr(0),
		},
		{
			Name: "No Data County", Type: models.AreaTypeCounty, State: "ND",
		},
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, reportRecords())
	out := buf.String()

	assert.Contains(t, out, "Total areas: 5")

	// Stats over {3200, 700, 1100}; zero and missing excluded.
	assert.Contains(t, out, "Minimum: $700")
	assert.Contains(t, out, "Maximum: $3200")

	assert.Contains(t, out, "Most expensive 2-bedroom area")
	assert.Contains(t, out, "Pricey Metro (CA): $3200")
	assert.Contains(t, out, "Least expensive 2-bedroom area")
	assert.Contains(t, out, "Cheap County (OK): $700")

	// The difference table ranks Pricey Metro (2600) above Mid County (700)
	// and Cheap County (500).
	assert.Contains(t, out, "largest studio to 3-bedroom rent differences")
	priceyIdx := strings.Index(out, "Pricey Metro")
	midIdx := strings.LastIndex(out, "Mid County")
	assert.Greater(t, midIdx, priceyIdx)
	assert.Contains(t, out, "$2600")
	assert.Contains(t, out, "Average difference")
	assert.Contains(t, out, "Average ratio (3-BR/studio)")
}

func TestPrintReport_NoQualifyingRents(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, []models.AreaRecord{
		{Name: "No Data County", Type: models.AreaTypeCounty, State: "ND"},
	})

	assert.Contains(t, buf.String(), "No positive two-bedroom rents reported.")
}

func TestRenderHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two_bedroom_rent_histogram.png")

	err := RenderHistogram(reportRecords(), path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderHistogram_NoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "histogram.png")
	err := RenderHistogram(nil, path)
	assert.Error(t, err)
}

func TestRenderScatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio_vs_two_bedroom_scatter.png")

	err := RenderScatter(reportRecords(), path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderScatter_NoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scatter.png")
	err := RenderScatter([]models.AreaRecord{
		{Name: "Missing Studio", State: "NV", TwoBedroomRent: intPtr(900)},
	}, path)
	assert.Error(t, err)
}
