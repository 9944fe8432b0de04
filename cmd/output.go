package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/internal/iocsv"
	"github.com/gnames/ppcollect/pkg/table"
)

// writeTable writes t as CSV to path, or to w when path is empty.
func writeTable(w io.Writer, path string, t *table.Table) error {
	if path == "" {
		return iocsv.EncodeTable(w, t)
	}
	if err := iocsv.WriteTableFile(path, t); err != nil {
		return err
	}
	gn.Info("Wrote <em>%s</em> rows to <em>%s</em>",
		humanize.Comma(int64(t.Len())), path)
	return nil
}

// printTableSummary prints the number of rows and the capacity per
// fueltype.
func printTableSummary(w io.Writer, title string, t *table.Table) {
	fmt.Fprintf(w, "%s: %s rows\n", title, humanize.Comma(int64(t.Len())))
	if !t.HasColumn(table.ColFueltype) {
		return
	}

	count := make(map[string]int)
	capacity := make(map[string]float64)
	for i := range t.Len() {
		ft := t.Value(i, table.ColFueltype)
		if ft == "" {
			ft = "n/a"
		}
		count[ft]++
		if c, ok := t.Float(i, table.ColCapacity); ok {
			capacity[ft] += c
		}
	}
	for _, ft := range slices.Sorted(maps.Keys(count)) {
		fmt.Fprintf(w, "  %-20s %8s plants %14s MW\n",
			ft,
			humanize.Comma(int64(count[ft])),
			humanize.CommafWithDigits(capacity[ft], 1),
		)
	}
}

// printMatchedSummary prints how many linked records every dataset
// contributes.
func printMatchedSummary(w io.Writer, title string, m *table.Matched) error {
	fmt.Fprintf(w, "%s: %s rows\n", title, humanize.Comma(int64(m.Len())))
	for _, ds := range m.Datasets() {
		t, err := m.Dataset(ds)
		if err != nil {
			return err
		}
		var n int
		for _, row := range t.Rows {
			if slices.ContainsFunc(row, func(s string) bool { return s != "" }) {
				n++
			}
		}
		fmt.Fprintf(w, "  %-10s %8s records\n", ds, humanize.Comma(int64(n)))
	}
	return nil
}
