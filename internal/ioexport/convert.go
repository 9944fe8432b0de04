package ioexport

import (
	"database/sql"
	"math"
	"strconv"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/gnames/ppcollect/pkg/schema"
	"github.com/gnames/ppcollect/pkg/table"
)

// PowerPlant converts row i of the combined dataset to the database
// model. Values that are not numbers become NULL.
func PowerPlant(t *table.Table, i int) schema.PowerPlant {
	name := t.Value(i, table.ColName)
	country := t.Value(i, table.ColCountry)
	ft := t.Value(i, table.ColFueltype)
	key := strings.Join(
		[]string{name, country, ft, strconv.Itoa(i)}, "|",
	)

	return schema.PowerPlant{
		ID:               gnuuid.New(key),
		RowID:            i,
		Name:             name,
		Fueltype:         ft,
		Technology:       t.Value(i, table.ColTechnology),
		Set:              t.Value(i, table.ColSet),
		Country:          country,
		Capacity:         nullFloat(t, i, table.ColCapacity),
		YearCommissioned: nullYear(t, i),
		Lat:              nullFloat(t, i, table.ColLat),
		Lon:              nullFloat(t, i, table.ColLon),
		File:             t.Value(i, table.ColFile),
		ProjectID:        t.Value(i, table.ColProjectID),
	}
}

func nullFloat(t *table.Table, i int, col string) sql.NullFloat64 {
	v, ok := t.Float(i, col)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// nullYear accepts "1988" as well as "1988.0".
func nullYear(t *table.Table, i int) sql.NullInt32 {
	v, ok := t.Float(i, table.ColYearCommissioned)
	if !ok || math.IsNaN(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(v), Valid: true}
}
