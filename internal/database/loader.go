package database

import (
	"fmt"

	"gorm.io/gorm"

	"fmrdata/internal/models"
)

const areaBatchSize = 1000

// LoadResult summarizes one completed load transaction.
type LoadResult struct {
	AreasInserted int
	RentsInserted int

	// OrphanKeys lists the natural keys of rent rows that matched no area
	// and therefore inserted nothing. Logged rather than fatal; see the
	// verification step for how the mismatch surfaces.
	OrphanKeys []string
}

// LoadSnapshot writes every snapshot record into the areas and rents tables
// inside a single transaction. Areas are batch-inserted in array order; each
// rent row is then attached by looking up its area's natural key
// (name, state). Any failure rolls the whole batch back and the error names
// the row that triggered it.
//
// There is no upsert: loading the same snapshot twice doubles every row.
func (d *Database) LoadSnapshot(snapshot models.Snapshot) (*LoadResult, error) {
	result := &LoadResult{}

	err := d.db.Transaction(func(tx *gorm.DB) error {
		areas := make([]models.Area, len(snapshot.Areas))
		for i, rec := range snapshot.Areas {
			areas[i] = models.Area{
				Name:      rec.Name,
				Type:      rec.Type,
				State:     rec.State,
				StateName: rec.StateName,
			}
		}

		if len(areas) > 0 {
			if err := tx.CreateInBatches(areas, areaBatchSize).Error; err != nil {
				return fmt.Errorf("inserting areas: %w", err)
			}
		}
		result.AreasInserted = len(areas)

		for _, rec := range snapshot.Areas {
			inserted, err := insertRent(tx, rec)
			if err != nil {
				return fmt.Errorf("inserting rent for %q (%s): %w", rec.Name, rec.State, err)
			}
			if inserted == 0 {
				result.OrphanKeys = append(result.OrphanKeys,
					fmt.Sprintf("%s/%s", rec.Name, rec.State))
				continue
			}
			result.RentsInserted += int(inserted)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.OrphanKeys) > 0 {
		d.logger.WithField("keys", result.OrphanKeys).
			Warn("Rent rows matched no area and were skipped")
	}

	d.logger.WithField("areas", result.AreasInserted).
		WithField("rents", result.RentsInserted).
		Info("Snapshot loaded")
	return result, nil
}

// insertRent attaches one rent row to its area via the natural key. When the
// key matches several areas (duplicates are legal within a batch) the lowest
// area id wins, so each rent record still inserts exactly one row.
func insertRent(tx *gorm.DB, rec models.AreaRecord) (int64, error) {
	res := tx.Exec(`
		INSERT INTO rents (area_id, studio_rent, one_bedroom_rent, two_bedroom_rent, three_bedroom_rent, four_bedroom_rent)
		SELECT id, ?, ?, ?, ?, ?
		FROM areas
		WHERE name = ? AND state = ?
		ORDER BY id
		LIMIT 1
	`, rec.StudioRent, rec.OneBedroomRent, rec.TwoBedroomRent, rec.ThreeBedroomRent, rec.FourBedroomRent,
		rec.Name, rec.State)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Verify compares the stored row counts against the snapshot that was just
// loaded, reporting how the load went as a post-commit self-check.
func (d *Database) Verify(snapshot models.Snapshot) error {
	areas, rents, err := d.Counts()
	if err != nil {
		return err
	}

	d.logger.WithField("areas", areas).WithField("rents", rents).
		Info("Verified row counts")

	if areas < int64(len(snapshot.Areas)) {
		return fmt.Errorf("verification failed: %d areas stored, snapshot has %d", areas, len(snapshot.Areas))
	}
	return nil
}
