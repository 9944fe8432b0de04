package iocsv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/internal/iocsv"
	"github.com/gnames/ppcollect/pkg/cache"
	"github.com/gnames/ppcollect/pkg/errcode"
	"github.com/gnames/ppcollect/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), "error should be *gn.Error")
	return gnErr.Code
}

func TestReadReduced(t *testing.T) {
	ctx := context.Background()
	store := iocsv.New("testdata")

	tests := []struct {
		msg  string
		key  cache.Key
		rows int
	}{
		{"four sources", cache.ReducedCarmaGeoOpsdWri, 4},
		{"five sources", cache.ReducedCarmaEseFiasGeoOpsdWri, 5},
		{"hydro", cache.AggregatedHydro, 2},
	}

	for _, v := range tests {
		res, err := store.ReadTable(ctx, v.key)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.rows, res.Len(), v.msg)
		assert.Equal(t, table.ColID, res.IndexName, v.msg)
		assert.Equal(t, "0", res.Index[0], v.msg)
		assert.False(t, res.HasColumn(table.ColID), v.msg)
		assert.True(t, res.HasColumn(table.ColProjectID), v.msg)
	}

	res, err := store.ReadTable(ctx, cache.ReducedCarmaGeoOpsdWri)
	require.NoError(t, err)
	assert.Equal(t, "Emsland", res.Value(0, table.ColName))
	assert.Equal(t,
		"{'CARMA': ['C1'], 'GEO': ['G10'], 'OPSD': ['BNA0001']}",
		res.Value(0, table.ColProjectID),
	)
}

func TestReadMatched(t *testing.T) {
	ctx := context.Background()
	store := iocsv.New("testdata")

	res, err := store.ReadMatched(ctx, cache.MatchedCarmaGeoOpsdWri)
	require.NoError(t, err)
	assert.Equal(t, "id", res.IndexName)
	assert.Equal(t, []string{"CARMA", "GEO"}, res.Datasets())
	assert.Equal(t, 2, res.Len())

	geo, err := res.Dataset("GEO")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Country", "Capacity"}, geo.Columns)
	assert.Equal(t, "3870", geo.Value(1, "Capacity"))
}

func TestWrongShape(t *testing.T) {
	ctx := context.Background()
	store := iocsv.New("testdata")

	_, err := store.ReadMatched(ctx, cache.ReducedCarmaGeoOpsdWri)
	require.Error(t, err)
	assert.Equal(t, errcode.CacheShapeError, errCode(t, err))

	_, err = store.ReadTable(ctx, cache.MatchedCarmaGeoOpsdWri)
	require.Error(t, err)
	assert.Equal(t, errcode.CacheShapeError, errCode(t, err))
}

func TestMissing(t *testing.T) {
	ctx := context.Background()
	store := iocsv.New(t.TempDir())

	ok, err := store.Exists(ctx, cache.AggregatedHydro)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.ReadTable(ctx, cache.AggregatedHydro)
	require.Error(t, err)
	assert.Equal(t, errcode.CacheMissingError, errCode(t, err))

	_, err = store.ReadMatched(ctx, cache.MatchedCarmaGeoOpsdWri)
	require.Error(t, err)
	assert.Equal(t, errcode.CacheMissingError, errCode(t, err))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	store := iocsv.New(dir)

	tbl := table.New("id", []string{"Name", "Capacity", "projectID"})
	tbl.Append("0", map[string]string{
		"Name": "Plant, with comma", "Capacity": "12.5",
		"projectID": "{'GEO': ['G1']}",
	})
	tbl.Append("1", map[string]string{"Name": `Quote "Q"`})

	err := store.WriteTable(ctx, cache.ReducedCarmaGeoOpsdWri, tbl)
	require.NoError(t, err)

	ok, err := store.Exists(ctx, cache.ReducedCarmaGeoOpsdWri)
	require.NoError(t, err)
	assert.True(t, ok)

	res, err := store.ReadTable(ctx, cache.ReducedCarmaGeoOpsdWri)
	require.NoError(t, err)
	assert.Equal(t, tbl, res)

	m := table.NewMatched("id", []table.Label{
		{Dataset: "CARMA", Field: "Name"},
		{Dataset: "GEO", Field: "Name"},
	})
	require.NoError(t, m.AppendRow("0", []string{"A", ""}))
	require.NoError(t, m.AppendRow("1", []string{"", "B"}))

	err = store.WriteMatched(ctx, cache.MatchedCarmaGeoOpsdWri, m)
	require.NoError(t, err)
	gotM, err := store.ReadMatched(ctx, cache.MatchedCarmaGeoOpsdWri)
	require.NoError(t, err)
	assert.Equal(t, m, gotM)
}

func TestOverwrite(t *testing.T) {
	ctx := context.Background()
	store := iocsv.New(t.TempDir())

	first := table.New("id", []string{"Name"})
	first.Append("0", map[string]string{"Name": "a"})
	first.Append("1", map[string]string{"Name": "b"})
	second := table.New("id", []string{"Name"})
	second.Append("0", map[string]string{"Name": "c"})

	require.NoError(t, store.WriteTable(ctx, cache.AggregatedHydro, first))
	require.NoError(t, store.WriteTable(ctx, cache.AggregatedHydro, second))

	res, err := store.ReadTable(ctx, cache.AggregatedHydro)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Len())
	assert.Equal(t, "c", res.Value(0, "Name"))
}

func TestReadRaw(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geo.csv")
	content := "\ufeffGEO_ID,Name,Country\nG1,Alpha,Spain\nG2,Beta,France\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tests := []struct {
		msg      string
		indexCol string
		index    []string
		columns  []string
	}{
		{"no index column", "", []string{"0", "1"},
			[]string{"GEO_ID", "Name", "Country"}},
		{"with index column", "GEO_ID", []string{"G1", "G2"},
			[]string{"Name", "Country"}},
	}

	for _, v := range tests {
		res, err := iocsv.ReadTableFile(path, v.indexCol)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.index, res.Index, v.msg)
		assert.Equal(t, v.columns, res.Columns, v.msg)
	}

	_, err := iocsv.ReadTableFile(path, "nope")
	require.Error(t, err)
	assert.Equal(t, errcode.CacheColumnError, errCode(t, err))
}

func TestParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2,3\n"), 0644))

	_, err := iocsv.ReadTableFile(path, "")
	require.Error(t, err)
	assert.Equal(t, errcode.CacheParseError, errCode(t, err))
}

func TestEncodeMatchedLayout(t *testing.T) {
	m := table.NewMatched("id", []table.Label{
		{Dataset: "CARMA", Field: "Name"},
		{Dataset: "GEO", Field: "Name"},
	})
	require.NoError(t, m.AppendRow("0", []string{"A", "B"}))

	var sb strings.Builder
	require.NoError(t, iocsv.EncodeMatched(&sb, m))
	assert.Equal(t, ",CARMA,GEO\n,Name,Name\nid,,\n0,A,B\n", sb.String())
}

func TestDecodeMatchedIndexNameRow(t *testing.T) {
	tests := []struct {
		msg       string
		in        string
		indexName string
		index     []string
	}{
		{"id row", ",CARMA,GEO\n,Name,Name\nid,,\n0,A,B\n",
			"id", []string{"0"}},
		{"named index", ",CARMA,GEO\n,Name,Name\nkey,,\n0,A,B\n",
			"key", []string{"0"}},
		{"no index row", ",CARMA,GEO\n,Name,Name\n0,A,B\n",
			"", []string{"0"}},
		{"numeric data row with empty cells",
			",CARMA,GEO\n,Name,Name\n0,,\n1,Drax,Drax\n",
			"", []string{"0", "1"}},
	}

	for _, v := range tests {
		m, err := iocsv.DecodeMatched(strings.NewReader(v.in))
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.indexName, m.IndexName, v.msg)
		assert.Equal(t, v.index, m.Index, v.msg)
		assert.Equal(t, len(v.index), m.Len(), v.msg)
	}
}
