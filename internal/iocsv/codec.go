package iocsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gnames/ppcollect/pkg/table"
)

// errShape marks input whose header layout does not fit the reader.
var errShape = errors.New("unexpected header layout")

const bom = "\ufeff"

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], bom)
	}
	return rows, nil
}

// DecodeTable reads a CSV with one header row. When indexCol is not empty
// the column with that name becomes the index, otherwise rows are numbered
// from 0 and the index is called "id".
func DecodeTable(r io.Reader, indexCol string) (*table.Table, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file: %w", errShape)
	}

	header := rows[0]
	if isTwoLevel(rows) {
		return nil, fmt.Errorf("two header rows: %w", errShape)
	}
	idx := -1
	if indexCol != "" {
		for j, h := range header {
			if h == indexCol {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, &table.MissingColumnError{Column: indexCol}
		}
	}

	var cols []string
	for j, h := range header {
		if j != idx {
			cols = append(cols, h)
		}
	}

	indexName := indexCol
	if indexName == "" {
		indexName = table.ColID
	}
	res := table.New(indexName, cols)
	for i, row := range rows[1:] {
		label := strconv.Itoa(i)
		cells := make([]string, 0, len(cols))
		for j, v := range row {
			if j == idx {
				label = v
				continue
			}
			cells = append(cells, v)
		}
		if err = res.AppendRow(label, cells); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// EncodeTable writes a flat table with its index as the first column.
func EncodeTable(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	indexName := t.IndexName
	if indexName == "" {
		indexName = table.ColID
	}

	header := append([]string{indexName}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		rec := append([]string{t.Index[i]}, row...)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeMatched reads a CSV with two header rows, the layout written by
// EncodeMatched. The first cell of both header rows is empty, the index
// name is either given in the first cell of a separate third row (with all
// other cells empty) or is absent.
func DecodeMatched(r io.Reader) (*table.Matched, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("need two header rows: %w", errShape)
	}
	top, sub := rows[0], rows[1]
	if top[0] != "" || sub[0] != "" {
		return nil, fmt.Errorf(
			"header starts with %q: %w", top[0], errShape,
		)
	}

	labels := make([]table.Label, 0, len(top)-1)
	var prev string
	for j := 1; j < len(top); j++ {
		ds := top[j]
		if ds == "" {
			ds = prev
		}
		prev = ds
		labels = append(labels, table.Label{Dataset: ds, Field: sub[j]})
	}

	data := rows[2:]
	indexName := ""
	if len(data) > 0 && isIndexNameRow(data[0]) {
		indexName = data[0][0]
		data = data[1:]
	}

	res := table.NewMatched(indexName, labels)
	for _, row := range data {
		if err = res.AppendRow(row[0], row[1:]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// isTwoLevel detects the header written by EncodeMatched: both header rows
// start with an empty cell.
func isTwoLevel(rows [][]string) bool {
	return len(rows) > 1 && len(rows[0]) > 1 &&
		rows[0][0] == "" && rows[1][0] == ""
}

// isIndexNameRow reports whether the third row names the index. A
// numeric first cell is a data row with empty values.
func isIndexNameRow(row []string) bool {
	if row[0] == "" {
		return false
	}
	if row[0] != table.ColID {
		if _, err := strconv.Atoi(row[0]); err == nil {
			return false
		}
	}
	for _, v := range row[1:] {
		if v != "" {
			return false
		}
	}
	return true
}

// EncodeMatched writes a matched table with two header rows followed by a
// row carrying the index name.
func EncodeMatched(w io.Writer, m *table.Matched) error {
	cw := csv.NewWriter(w)
	n := len(m.Columns) + 1

	top := make([]string, n)
	sub := make([]string, n)
	for j, c := range m.Columns {
		top[j+1] = c.Dataset
		sub[j+1] = c.Field
	}
	if err := cw.Write(top); err != nil {
		return err
	}
	if err := cw.Write(sub); err != nil {
		return err
	}

	indexName := m.IndexName
	if indexName == "" {
		indexName = table.ColID
	}
	idxRow := make([]string, n)
	idxRow[0] = indexName
	if err := cw.Write(idxRow); err != nil {
		return err
	}

	for i, row := range m.Rows {
		rec := append([]string{m.Index[i]}, row...)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
