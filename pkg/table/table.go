// Package table provides the in-memory tables the collector works with.
//
// Two shapes exist. Table is a flat table with single-level columns, the
// shape of reduced and hydro caches. Matched is a table whose columns are
// organised under two header levels (dataset label and field), the shape
// produced by the matcher and kept in unreduced caches. Cells are stored as
// strings exactly as they were read; an empty string is a missing value.
package table

import (
	"fmt"
	"slices"
	"strconv"
)

// Column names of power-plant records.
const (
	ColID               = "id"
	ColName             = "Name"
	ColFueltype         = "Fueltype"
	ColTechnology       = "Technology"
	ColSet              = "Set"
	ColCountry          = "Country"
	ColCapacity         = "Capacity"
	ColScaledCapacity   = "Scaled Capacity"
	ColYearCommissioned = "YearCommissioned"
	ColLat              = "lat"
	ColLon              = "lon"
	ColFile             = "File"
	ColProjectID        = "projectID"
)

// TargetColumns is the canonical column order of a cleaned power-plant
// table.
var TargetColumns = []string{
	ColName, ColFueltype, ColTechnology, ColSet, ColCountry, ColCapacity,
	ColYearCommissioned, ColLat, ColLon, ColFile, ColProjectID,
}

// Table is a flat table with a named index.
type Table struct {
	// IndexName is the label of the index column, usually "id".
	IndexName string
	// Index holds one label per row.
	Index []string
	// Columns are the column names in order.
	Columns []string
	// Rows hold cells, each row has len(Columns) cells.
	Rows [][]string
}

// New creates an empty table with the given index name and columns.
func New(indexName string, columns []string) *Table {
	return &Table{
		IndexName: indexName,
		Columns:   slices.Clone(columns),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns position of the column or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Append adds a row. Missing columns of rec are left empty, keys of rec
// that are not columns are ignored.
func (t *Table) Append(index string, rec map[string]string) {
	row := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = rec[c]
	}
	t.Index = append(t.Index, index)
	t.Rows = append(t.Rows, row)
}

// AppendRow adds a row given as a cell slice aligned with Columns.
func (t *Table) AppendRow(index string, row []string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf(
			"row %q has %d cells, table has %d columns",
			index, len(row), len(t.Columns),
		)
	}
	t.Index = append(t.Index, index)
	t.Rows = append(t.Rows, slices.Clone(row))
	return nil
}

// Value returns the cell of the row i in the named column, or an empty
// string if the column does not exist.
func (t *Table) Value(i int, col string) string {
	j := t.ColumnIndex(col)
	if j < 0 {
		return ""
	}
	return t.Rows[i][j]
}

// Set assigns a cell. It fails when the column does not exist.
func (t *Table) Set(i int, col, val string) error {
	j := t.ColumnIndex(col)
	if j < 0 {
		return &MissingColumnError{Column: col}
	}
	t.Rows[i][j] = val
	return nil
}

// Record returns row i as a column → value map.
func (t *Table) Record(i int) map[string]string {
	res := make(map[string]string, len(t.Columns))
	for j, c := range t.Columns {
		res[c] = t.Rows[i][j]
	}
	return res
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]string, error) {
	j := t.ColumnIndex(name)
	if j < 0 {
		return nil, &MissingColumnError{Column: name}
	}
	res := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		res[i] = row[j]
	}
	return res, nil
}

// SetColumn replaces the values of an existing column or appends a new
// column at the end.
func (t *Table) SetColumn(name string, vals []string) error {
	if len(vals) != len(t.Rows) {
		return fmt.Errorf(
			"column %q has %d values, table has %d rows",
			name, len(vals), len(t.Rows),
		)
	}
	j := t.ColumnIndex(name)
	if j < 0 {
		t.Columns = append(t.Columns, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], vals[i])
		}
		return nil
	}
	for i := range t.Rows {
		t.Rows[i][j] = vals[i]
	}
	return nil
}

// DropColumn removes the named column.
func (t *Table) DropColumn(name string) error {
	j := t.ColumnIndex(name)
	if j < 0 {
		return &MissingColumnError{Column: name}
	}
	t.Columns = slices.Delete(t.Columns, j, j+1)
	for i := range t.Rows {
		t.Rows[i] = slices.Delete(t.Rows[i], j, j+1)
	}
	return nil
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(t *Table, i int) bool) *Table {
	res := New(t.IndexName, t.Columns)
	for i := range t.Rows {
		if keep(t, i) {
			res.Index = append(res.Index, t.Index[i])
			res.Rows = append(res.Rows, slices.Clone(t.Rows[i]))
		}
	}
	return res
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	res := New(t.IndexName, t.Columns)
	res.Index = slices.Clone(t.Index)
	res.Rows = make([][]string, len(t.Rows))
	for i := range t.Rows {
		res.Rows[i] = slices.Clone(t.Rows[i])
	}
	return res
}

// ResetIndex returns a copy of the table whose index is the contiguous
// range 0..n-1. Previous index labels are discarded.
func (t *Table) ResetIndex() *Table {
	res := t.Clone()
	for i := range res.Index {
		res.Index[i] = strconv.Itoa(i)
	}
	return res
}

// Float parses the cell as a number. Empty or malformed cells return
// false.
func (t *Table) Float(i int, col string) (float64, bool) {
	v := t.Value(i, col)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// MaxIndex returns the largest integer index label, or -1 if no label
// is an integer.
func (t *Table) MaxIndex() int {
	res := -1
	for _, v := range t.Index {
		if i, err := strconv.Atoi(v); err == nil && i > res {
			res = i
		}
	}
	return res
}

// Concat stacks tables vertically. Columns are the union of all columns in
// order of first appearance; cells of columns a table does not have are
// empty. Index labels are kept as they are, the index name is taken from
// the first table.
func Concat(tables ...*Table) *Table {
	var cols []string
	seen := make(map[string]struct{})
	indexName := ""
	for i, t := range tables {
		if i == 0 {
			indexName = t.IndexName
		}
		for _, c := range t.Columns {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			cols = append(cols, c)
		}
	}

	res := New(indexName, cols)
	for _, t := range tables {
		pos := make([]int, len(cols))
		for j, c := range cols {
			pos[j] = t.ColumnIndex(c)
		}
		for i, row := range t.Rows {
			newRow := make([]string, len(cols))
			for j, p := range pos {
				if p >= 0 {
					newRow[j] = row[p]
				}
			}
			res.Index = append(res.Index, t.Index[i])
			res.Rows = append(res.Rows, newRow)
		}
	}
	return res
}

// MissingColumnError is returned when a required column is absent.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q does not exist", e.Column)
}
