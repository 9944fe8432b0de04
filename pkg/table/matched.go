package table

import (
	"fmt"
	"slices"
)

// Label is a two-level column header.
type Label struct {
	// Dataset is the source-dataset label, for example "CARMA".
	Dataset string
	// Field is the column name inside the dataset, for example "Capacity".
	Field string
}

// Matched is a table with two-level column headers. Every row links the
// records of several source datasets that describe the same plant.
type Matched struct {
	IndexName string
	Index     []string
	Columns   []Label
	Rows      [][]string
}

// NewMatched creates an empty matched table.
func NewMatched(indexName string, columns []Label) *Matched {
	return &Matched{
		IndexName: indexName,
		Columns:   slices.Clone(columns),
	}
}

// Len returns the number of rows.
func (m *Matched) Len() int {
	return len(m.Rows)
}

// AppendRow adds a row aligned with Columns.
func (m *Matched) AppendRow(index string, row []string) error {
	if len(row) != len(m.Columns) {
		return fmt.Errorf(
			"row %q has %d cells, table has %d columns",
			index, len(row), len(m.Columns),
		)
	}
	m.Index = append(m.Index, index)
	m.Rows = append(m.Rows, slices.Clone(row))
	return nil
}

// Datasets returns the dataset labels in order of first appearance.
func (m *Matched) Datasets() []string {
	var res []string
	for _, c := range m.Columns {
		if !slices.Contains(res, c.Dataset) {
			res = append(res, c.Dataset)
		}
	}
	return res
}

// Dataset slices out the flat table of one dataset label. The index is
// shared with the matched table.
func (m *Matched) Dataset(label string) (*Table, error) {
	var pos []int
	var cols []string
	for j, c := range m.Columns {
		if c.Dataset == label {
			pos = append(pos, j)
			cols = append(cols, c.Field)
		}
	}
	if len(pos) == 0 {
		return nil, fmt.Errorf("dataset %q is not in the matched table", label)
	}

	res := New(m.IndexName, cols)
	res.Index = slices.Clone(m.Index)
	res.Rows = make([][]string, len(m.Rows))
	for i, row := range m.Rows {
		newRow := make([]string, len(pos))
		for k, p := range pos {
			newRow[k] = row[p]
		}
		res.Rows[i] = newRow
	}
	return res, nil
}
