// Package exporter builds and persists the JSON snapshot that links the fetch
// side of the pipeline to the loader and reporter.
package exporter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"

	"fmrdata/internal/models"
	"fmrdata/internal/stats"
)

// clock is a package-level time source so tests can freeze fetched_date.
var clock = clockwork.NewRealClock()

// SetClock swaps the snapshot time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// BuildSnapshot assembles the export document: metadata (year, record count,
// fetch time, embedded two-bedroom statistics) plus the full record array.
// The embedded statistics exclude absent and non-positive values, the same
// rule the loader applies in its post-load self-check.
func BuildSnapshot(records []models.AreaRecord, year int) models.Snapshot {
	var embedded *models.RentStats
	if s := stats.Summarize(stats.TwoBedroomRents(records)); s != nil {
		embedded = &models.RentStats{
			Min:    s.Min,
			Max:    s.Max,
			Mean:   s.Mean,
			Median: s.Median,
		}
	}

	return models.Snapshot{
		Metadata: models.SnapshotMetadata{
			Year:            year,
			TotalAreas:      len(records),
			FetchedDate:     clock.Now().UTC(),
			TwoBedroomStats: embedded,
		},
		Areas: records,
	}
}

// Write serializes a snapshot to path as indented JSON.
func Write(snapshot models.Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Read loads a snapshot written by Write. A missing file is reported with a
// hint, since it usually means the fetch step has not run yet.
func Read(path string) (models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Snapshot{}, fmt.Errorf("%s not found (run a fetch first): %w", path, err)
		}
		return models.Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return snapshot, nil
}
