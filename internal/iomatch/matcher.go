// Package iomatch links records of several cleaned registries and extends
// reduced tables by records that stayed unmatched.
package iomatch

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gnames/ppcollect/pkg/matching"
	"github.com/gnames/ppcollect/pkg/table"
)

// Matcher links records by exact folded keys.
type Matcher struct{}

// New returns the default matcher. It implements both matching.Matcher
// and matching.Extender.
func New() Matcher {
	return Matcher{}
}

var (
	_ matching.Matcher  = Matcher{}
	_ matching.Extender = Matcher{}
)

// CombineMultipleDatasets links records that share the folded name and
// country. Every key found in at least two tables becomes one row; each
// table contributes its first record with that key. Columns of the result
// are the columns of every table under its label.
func (m Matcher) CombineMultipleDatasets(
	ctx context.Context,
	tables []*table.Table,
	labels []string,
) (*table.Matched, error) {
	if len(tables) != len(labels) {
		return nil, LabelsError(len(tables), len(labels))
	}

	var cols []table.Label
	for k, t := range tables {
		for _, c := range t.Columns {
			cols = append(cols, table.Label{Dataset: labels[k], Field: c})
		}
	}

	var order []string
	// key → per table row position, -1 when absent
	found := make(map[string][]int)
	for k, t := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range t.Rows {
			key := matchKey(t.Value(i, table.ColName), t.Value(i, table.ColCountry))
			if key == "" {
				continue
			}
			pos, ok := found[key]
			if !ok {
				pos = make([]int, len(tables))
				for j := range pos {
					pos[j] = -1
				}
				found[key] = pos
				order = append(order, key)
			}
			if pos[k] < 0 {
				pos[k] = i
			}
		}
	}

	res := table.NewMatched(table.ColID, cols)
	for _, key := range order {
		pos := found[key]
		var n int
		for _, p := range pos {
			if p >= 0 {
				n++
			}
		}
		if n < 2 {
			continue
		}

		row := make([]string, 0, len(cols))
		for k, t := range tables {
			if pos[k] < 0 {
				row = append(row, make([]string, len(t.Columns))...)
				continue
			}
			row = append(row, t.Rows[pos[k]]...)
		}
		if err := res.AppendRow(strconv.Itoa(res.Len()), row); err != nil {
			return nil, err
		}
	}

	slog.Info("Matched datasets",
		"labels", labels, "links", humanize.Comma(int64(res.Len())))
	return res, nil
}
