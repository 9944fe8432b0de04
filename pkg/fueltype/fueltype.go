// Package fueltype harmonises fueltype labels of power-plant tables.
package fueltype

import (
	"slices"

	"github.com/gnames/ppcollect/pkg/table"
)

const (
	Hydro = "Hydro"
	Other = "Other"
)

// Uncommon are fueltypes that are folded into Other.
var Uncommon = []string{
	"Geothermal",
	"Waste",
	"Mixed Fueltypes",
	"Mixed fuel types",
}

// Relabeler implements matching.Relabeler.
type Relabeler struct{}

// SetUncommonFueltypesToOther returns a copy of t where uncommon fueltypes
// are replaced by Other.
func (Relabeler) SetUncommonFueltypesToOther(t *table.Table) *table.Table {
	return SetUncommonToOther(t)
}

// SetUncommonToOther returns a copy of t where uncommon fueltypes are
// replaced by Other. Tables without a Fueltype column are returned as a
// copy without changes.
func SetUncommonToOther(t *table.Table) *table.Table {
	res := t.Clone()
	j := res.ColumnIndex(table.ColFueltype)
	if j < 0 {
		return res
	}
	for i := range res.Rows {
		if IsUncommon(res.Rows[i][j]) {
			res.Rows[i][j] = Other
		}
	}
	return res
}

// IsUncommon reports whether the fueltype is folded into Other.
func IsUncommon(ft string) bool {
	return slices.Contains(Uncommon, ft)
}
