// Package database owns the relational store: connection setup, schema, and
// the transactional snapshot loader.
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fmrdata/internal/models"
)

type Database struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// Open connects to PostgreSQL with the given DSN and ensures the schema
// exists. A connection failure is returned before anything is written.
func Open(dsn string, logger *logrus.Logger) (*Database, error) {
	return New(postgres.Open(dsn), logger)
}

// New connects through an explicit gorm dialector. Tests use this with the
// sqlite driver to run the loader against an in-memory database.
func New(dialector gorm.Dialector, logger *logrus.Logger) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database (is PostgreSQL running?): %w", err)
	}

	// Creates the two tables when absent, no-op otherwise. There is no
	// versioned migration tooling here on purpose.
	if err := db.AutoMigrate(&models.Area{}, &models.Rent{}); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Database{db: db, logger: logger}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Counts returns the total area and rent row counts.
func (d *Database) Counts() (areas int64, rents int64, err error) {
	if err = d.db.Model(&models.Area{}).Count(&areas).Error; err != nil {
		return 0, 0, fmt.Errorf("counting areas: %w", err)
	}
	if err = d.db.Model(&models.Rent{}).Count(&rents).Error; err != nil {
		return 0, 0, fmt.Errorf("counting rents: %w", err)
	}
	return areas, rents, nil
}

// RentSummary is the post-load statistics row. Pointers are nil when no rent
// qualifies.
type RentSummary struct {
	Min *int
	Max *int
	Avg *float64
}

// TwoBedroomSummary computes min/max/mean of two_bedroom_rent in SQL over
// strictly positive values. NULL and zero rows are excluded, matching the
// exporter's embedded statistics so the two independently computed results
// must agree.
func (d *Database) TwoBedroomSummary() (RentSummary, error) {
	var summary RentSummary
	err := d.db.Raw(`
		SELECT
			MIN(two_bedroom_rent) AS min,
			MAX(two_bedroom_rent) AS max,
			AVG(two_bedroom_rent) AS avg
		FROM rents
		WHERE two_bedroom_rent > 0
	`).Scan(&summary).Error
	if err != nil {
		return RentSummary{}, fmt.Errorf("computing rent summary: %w", err)
	}
	return summary, nil
}
