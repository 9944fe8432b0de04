// Package schema provides the database model of the exported power-plant
// dataset.
package schema

import (
	"database/sql"

	"github.com/google/uuid"
)

// PowerPlantsTable is the name of the export table.
const PowerPlantsTable = "power_plants"

// PowerPlant is one row of the combined dataset.
type PowerPlant struct {
	// ID is UUID v5 generated from Name|Country|Fueltype|row.
	ID uuid.UUID `db:"id" gorm:"type:uuid;primaryKey"`

	// RowID is the position of the record in the combined dataset.
	RowID int `db:"row_id" gorm:"not null;uniqueIndex"`

	// Name is the cleaned plant name.
	Name string `db:"name" gorm:"type:varchar(255);not null;index"`

	// Fueltype is the harmonised fuel category.
	Fueltype string `db:"fueltype" gorm:"type:varchar(50);index"`

	// Technology is for example "Steam Turbine" or "Run-Of-River".
	Technology string `db:"technology" gorm:"type:varchar(100)"`

	// Set is one of PP, CHP, Store.
	Set string `db:"plant_set" gorm:"column:plant_set;type:varchar(20)"`

	Country string `db:"country" gorm:"type:varchar(100);index"`

	// Capacity is the installed capacity in MW.
	Capacity sql.NullFloat64 `db:"capacity"`

	YearCommissioned sql.NullInt32 `db:"year_commissioned"`

	Lat sql.NullFloat64 `db:"lat"`
	Lon sql.NullFloat64 `db:"lon"`

	// File is the source file for records taken from single reports.
	File string `db:"file" gorm:"type:text"`

	// ProjectID maps dataset labels to identifiers of linked records.
	ProjectID string `db:"project_id" gorm:"type:text"`
}

// TableName returns the PostgreSQL table name for this model.
func (PowerPlant) TableName() string {
	return PowerPlantsTable
}

// Values returns fields in the order of Columns.
func (p PowerPlant) Values() []any {
	return []any{
		p.ID.String(),
		p.RowID,
		p.Name,
		p.Fueltype,
		p.Technology,
		p.Set,
		p.Country,
		p.Capacity,
		p.YearCommissioned,
		p.Lat,
		p.Lon,
		p.File,
		p.ProjectID,
	}
}
