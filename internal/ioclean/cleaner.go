// Package ioclean normalises raw power-plant registries before matching.
package ioclean

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnlib"
	"github.com/gnames/ppcollect/pkg/matching"
	"github.com/gnames/ppcollect/pkg/table"
)

type cleaner struct{}

// New returns the default cleaner.
func New() matching.Cleaner {
	return cleaner{}
}

// trimmed are categorical columns that only get whitespace and encoding
// fixes.
var trimmed = []string{
	table.ColFueltype, table.ColTechnology, table.ColSet, table.ColCountry,
}

// CleanSingle cleans plant names, drops nameless rows and, if
// aggregateUnits is true, merges units of the same plant. The projectID of
// a row is its index label when the table has no projectID column. The
// result is indexed 0..n-1.
func (c cleaner) CleanSingle(
	ctx context.Context,
	t *table.Table,
	aggregateUnits bool,
) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !t.HasColumn(table.ColName) {
		return nil, NoNameColumnError(t.Columns)
	}

	res := t.Clone()
	if !res.HasColumn(table.ColProjectID) {
		if err := res.SetColumn(table.ColProjectID, res.Index); err != nil {
			return nil, err
		}
	}

	nameIdx := res.ColumnIndex(table.ColName)
	var trimIdx []int
	for _, col := range trimmed {
		if j := res.ColumnIndex(col); j >= 0 {
			trimIdx = append(trimIdx, j)
		}
	}
	for i := range res.Rows {
		row := res.Rows[i]
		row[nameIdx] = CleanName(row[nameIdx])
		for _, j := range trimIdx {
			row[j] = strings.TrimSpace(gnlib.FixUtf8(row[j]))
		}
	}

	res = res.Filter(func(t *table.Table, i int) bool {
		return t.Rows[i][nameIdx] != ""
	})
	if dropped := t.Len() - res.Len(); dropped > 0 {
		slog.Info("Dropped rows without name",
			"rows", humanize.Comma(int64(dropped)))
	}

	if aggregateUnits {
		before := res.Len()
		agg, err := aggregate(res)
		if err != nil {
			return nil, err
		}
		res = agg
		slog.Info("Aggregated units",
			"before", humanize.Comma(int64(before)),
			"after", humanize.Comma(int64(res.Len())),
		)
	}

	res = res.ResetIndex()
	res.IndexName = table.ColID
	return res, nil
}

// aggregate collapses rows sharing Name, Country and Fueltype. Capacity is
// summed, YearCommissioned takes the earliest year, coordinates are
// averaged and projectIDs are joined with ";". Other columns keep the
// first non-empty value.
func aggregate(t *table.Table) (*table.Table, error) {
	var order []string
	groups := make(map[string][]int)
	for i := range t.Rows {
		key := t.Value(i, table.ColName) + "\x00" +
			t.Value(i, table.ColCountry) + "\x00" +
			t.Value(i, table.ColFueltype)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	res := table.New(t.IndexName, t.Columns)
	for _, key := range order {
		rows := groups[key]
		first := rows[0]
		if len(rows) == 1 {
			if err := res.AppendRow(t.Index[first], t.Rows[first]); err != nil {
				return nil, err
			}
			continue
		}

		row := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			switch col {
			case table.ColCapacity:
				row[j] = reduce(t, rows, col, sum)
			case table.ColYearCommissioned:
				row[j] = reduce(t, rows, col, minimum)
			case table.ColLat, table.ColLon:
				row[j] = reduce(t, rows, col, mean)
			case table.ColProjectID:
				row[j] = joinIDs(t, rows, j)
			default:
				row[j] = firstValue(t, rows, j)
			}
		}
		if err := res.AppendRow(t.Index[first], row); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func reduce(
	t *table.Table,
	rows []int,
	col string,
	fn func([]float64) float64,
) string {
	var vals []float64
	for _, i := range rows {
		if v, ok := t.Float(i, col); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return ""
	}
	return formatFloat(fn(vals))
}

func sum(vals []float64) float64 {
	var res float64
	for _, v := range vals {
		res += v
	}
	return res
}

func minimum(vals []float64) float64 {
	return slices.Min(vals)
}

func mean(vals []float64) float64 {
	return sum(vals) / float64(len(vals))
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinIDs(t *table.Table, rows []int, j int) string {
	var ids []string
	for _, i := range rows {
		for _, id := range strings.Split(t.Rows[i][j], ";") {
			id = strings.TrimSpace(id)
			if id != "" && !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return strings.Join(ids, ";")
}

func firstValue(t *table.Table, rows []int, j int) string {
	for _, i := range rows {
		if v := t.Rows[i][j]; v != "" {
			return v
		}
	}
	return ""
}
