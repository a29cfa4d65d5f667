package models

import "time"

// Area types as they appear in the export document and the areas table.
const (
	AreaTypeMetro  = "metro"
	AreaTypeCounty = "county"
)

// Area is one housing-cost reporting region. The (Name, State) pair is the
// natural key used to relate rent rows to their area during a load.
type Area struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null;index:idx_areas_name_state" json:"name"`
	Type      string `gorm:"not null" json:"type"`
	State     string `gorm:"not null;size:2;index:idx_areas_name_state" json:"state"`
	StateName string `json:"state_name"`
}

func (Area) TableName() string {
	return "areas"
}

// Rent is one rent-schedule row owned by exactly one Area. Nil pointers mean
// "not reported", which is distinct from a reported zero.
type Rent struct {
	ID               int64 `gorm:"primaryKey" json:"id"`
	AreaID           int64 `gorm:"not null" json:"area_id"`
	Area             *Area `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	StudioRent       *int  `json:"studio_rent"`
	OneBedroomRent   *int  `json:"one_bedroom_rent"`
	TwoBedroomRent   *int  `json:"two_bedroom_rent"`
	ThreeBedroomRent *int  `json:"three_bedroom_rent"`
	FourBedroomRent  *int  `json:"four_bedroom_rent"`
}

func (Rent) TableName() string {
	return "rents"
}

// RawRecord is a single row as produced by a source adapter: source-specific
// field names mapped to string values, with missing fields absent entirely.
type RawRecord map[string]string

// AreaRecord is the canonical normalized record shared by the exporter,
// loader and reporter. Missing rents marshal as explicit JSON nulls.
type AreaRecord struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	State            string `json:"state"`
	StateName        string `json:"state_name,omitempty"`
	StudioRent       *int   `json:"studio_rent"`
	OneBedroomRent   *int   `json:"one_bedroom_rent"`
	TwoBedroomRent   *int   `json:"two_bedroom_rent"`
	ThreeBedroomRent *int   `json:"three_bedroom_rent"`
	FourBedroomRent  *int   `json:"four_bedroom_rent"`
}

// RentStats is the summary block embedded in the export metadata.
type RentStats struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// SnapshotMetadata describes one export batch. TwoBedroomStats is nil when no
// record carries a positive two-bedroom rent.
type SnapshotMetadata struct {
	Year            int        `json:"year"`
	TotalAreas      int        `json:"total_areas"`
	FetchedDate     time.Time  `json:"fetched_date"`
	TwoBedroomStats *RentStats `json:"two_bedroom_stats"`
}

// Snapshot is the JSON interchange document between export and load. It is an
// immutable record of one fetch; every AreaRecord field must round-trip
// through it losslessly.
type Snapshot struct {
	Metadata SnapshotMetadata `json:"metadata"`
	Areas    []AreaRecord     `json:"areas"`
}
