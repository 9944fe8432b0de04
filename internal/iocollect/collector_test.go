package iocollect_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/internal/ioclean"
	"github.com/gnames/ppcollect/internal/iocollect"
	"github.com/gnames/ppcollect/internal/iocsv"
	"github.com/gnames/ppcollect/internal/iomatch"
	"github.com/gnames/ppcollect/pkg/cache"
	"github.com/gnames/ppcollect/pkg/errcode"
	"github.com/gnames/ppcollect/pkg/fueltype"
	"github.com/gnames/ppcollect/pkg/matching"
	"github.com/gnames/ppcollect/pkg/ppcollect"
	"github.com/gnames/ppcollect/pkg/sources"
	"github.com/gnames/ppcollect/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps tables in maps.
type memStore struct {
	flat    map[cache.Key]*table.Table
	matched map[cache.Key]*table.Matched
}

func newMemStore() *memStore {
	return &memStore{
		flat:    make(map[cache.Key]*table.Table),
		matched: make(map[cache.Key]*table.Matched),
	}
}

func (s *memStore) ReadTable(_ context.Context, k cache.Key) (*table.Table, error) {
	t, ok := s.flat[k]
	if !ok {
		return nil, errors.New("missing " + string(k))
	}
	return t.Clone(), nil
}

func (s *memStore) WriteTable(_ context.Context, k cache.Key, t *table.Table) error {
	s.flat[k] = t.Clone()
	return nil
}

func (s *memStore) ReadMatched(_ context.Context, k cache.Key) (*table.Matched, error) {
	m, ok := s.matched[k]
	if !ok {
		return nil, errors.New("missing " + string(k))
	}
	return m, nil
}

func (s *memStore) WriteMatched(_ context.Context, k cache.Key, m *table.Matched) error {
	s.matched[k] = m
	return nil
}

func (s *memStore) Exists(_ context.Context, k cache.Key) (bool, error) {
	_, ok1 := s.flat[k]
	_, ok2 := s.matched[k]
	return ok1 || ok2, nil
}

// registry returns raw tables and counts requests.
type registry struct {
	raw   map[sources.Dataset]*table.Table
	calls []sources.Dataset
}

func (r *registry) Raw(_ context.Context, ds sources.Dataset) (*table.Table, error) {
	r.calls = append(r.calls, ds)
	t, ok := r.raw[ds]
	if !ok {
		return nil, errors.New("no dataset " + string(ds))
	}
	return t.Clone(), nil
}

// recCleaner records aggregation flags per first name in the table.
type recCleaner struct {
	aggregate map[string]bool
}

func (c *recCleaner) CleanSingle(
	_ context.Context,
	t *table.Table,
	aggregateUnits bool,
) (*table.Table, error) {
	c.aggregate[t.Value(0, table.ColName)] = aggregateUnits
	res := t.ResetIndex()
	res.IndexName = table.ColID
	return res, nil
}

// recMatcher records the tables and labels it was called with.
type recMatcher struct {
	tables []*table.Table
	labels []string
}

func (m *recMatcher) CombineMultipleDatasets(
	_ context.Context,
	tables []*table.Table,
	labels []string,
) (*table.Matched, error) {
	m.tables = tables
	m.labels = labels
	res := table.NewMatched("", []table.Label{{Dataset: labels[0], Field: "Name"}})
	_ = res.AppendRow("0", []string{"linked"})
	return res, nil
}

func oneRow(ds, name string) *table.Table {
	t := table.New("id", []string{"Name", "Country"})
	t.Append(ds+"-0", map[string]string{"Name": name, "Country": "X"})
	return t
}

func rawRegistries() *registry {
	raw := make(map[sources.Dataset]*table.Table)
	for _, ds := range sources.AllDatasets {
		raw[ds] = oneRow(string(ds), string(ds))
	}
	return &registry{raw: raw}
}

func geoRaw() *table.Table {
	t := table.New("GEO_ID", []string{"Name", "Fueltype", "Country", "Capacity"})
	recs := []struct {
		id, name, ft, country string
	}{
		{"G10", "Emsland", "Nuclear", "Germany"},
		{"G11", "Drax Power Station", "Hard Coal", "United Kingdom"},
		{"G20", "Alqueva", "Hydro", "Portugal"},
		{"G21", "Hellisheidi", "Geothermal", "Iceland"},
	}
	for _, v := range recs {
		t.Append(v.id, map[string]string{
			"Name": v.name, "Fueltype": v.ft, "Country": v.country,
			"Capacity": "100",
		})
	}
	return t
}

func newCollector(store cache.Store, reg sources.Registry) ppcollect.Collector {
	m := iomatch.New()
	return iocollect.New(store, reg, matching.Collaborators{
		Cleaner:  ioclean.New(),
		Matcher:  m,
		Extender: m,
	})
}

func goldenCollector() ppcollect.Collector {
	reg := &registry{raw: map[sources.Dataset]*table.Table{sources.GEO: geoRaw()}}
	return newCollector(iocsv.New("testdata"), reg)
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	return gnErr.Code
}

func TestReducedGolden(t *testing.T) {
	ctx := context.Background()
	c := goldenCollector()

	tests := []struct {
		msg  string
		read func(context.Context) (*table.Table, error)
		key  cache.Key
	}{
		{"four sources", c.CarmaGeoOpsdWriMatchedReduced,
			cache.ReducedCarmaGeoOpsdWri},
		{"five sources", c.CarmaEseFiasGeoOpsdWriMatchedReduced,
			cache.ReducedCarmaEseFiasGeoOpsdWri},
	}

	for _, v := range tests {
		res, err := v.read(ctx)
		require.NoError(t, err, v.msg)
		exp, err := iocsv.ReadTableFile(iocsv.Path("testdata", v.key), "id")
		require.NoError(t, err, v.msg)
		assert.Equal(t, exp.Len(), res.Len(), v.msg)
		assert.Equal(t, exp.Columns, res.Columns, v.msg)
		assert.Equal(t, exp.Rows, res.Rows, v.msg)
	}
}

func TestAggregatedHydro(t *testing.T) {
	ctx := context.Background()
	c := goldenCollector()
	fixture, err := iocsv.ReadTableFile(
		iocsv.Path("testdata", cache.AggregatedHydro), "id",
	)
	require.NoError(t, err)
	origCap, err := fixture.Column(table.ColCapacity)
	require.NoError(t, err)
	scaledCap, err := fixture.Column(table.ColScaledCapacity)
	require.NoError(t, err)

	tests := []struct {
		msg    string
		scaled bool
		cap    []string
	}{
		{"scaled", true, scaledCap},
		{"original", false, origCap},
	}

	for _, v := range tests {
		res, err := c.AggregatedHydro(ctx, false, v.scaled)
		require.NoError(t, err, v.msg)
		got, err := res.Column(table.ColCapacity)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.cap, got, v.msg)
		assert.False(t, res.HasColumn(table.ColScaledCapacity), v.msg)
		assert.Equal(t, fixture.Len(), res.Len(), v.msg)
	}
}

func TestAggregatedHydroUpdate(t *testing.T) {
	c := goldenCollector()
	_, err := c.AggregatedHydro(context.Background(), true, true)
	require.Error(t, err)
	assert.Equal(t, errcode.CollectHydroRecomputeError, errCode(t, err))
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.ErrorIs(t, gnErr.Err, iocollect.ErrNotImplemented)
}

func TestAggregatedHydroNoScaled(t *testing.T) {
	store := newMemStore()
	hydro := table.New("id", []string{"Name", "Capacity"})
	hydro.Append("0", map[string]string{"Name": "h", "Capacity": "1"})
	store.flat[cache.AggregatedHydro] = hydro

	c := newCollector(store, rawRegistries())
	_, err := c.AggregatedHydro(context.Background(), false, false)
	require.Error(t, err)
	assert.Equal(t, errcode.CacheColumnError, errCode(t, err))
}

func TestMatchedDataset(t *testing.T) {
	ctx := context.Background()
	c := goldenCollector()
	hydro, err := c.AggregatedHydro(ctx, false, false)
	require.NoError(t, err)

	res, err := c.MatchedDataset(ctx, ppcollect.MatchedOptions{})
	require.NoError(t, err)

	// 4 reduced + 2 unmatched GEO - 2 hydro + 2 aggregated hydro
	assert.Equal(t, 6, res.Len())
	assert.Equal(t, table.ColID, res.IndexName)

	hydroNames, err := hydro.Column(table.ColName)
	require.NoError(t, err)
	var hydroRows int
	for i := range res.Rows {
		if res.Value(i, table.ColFueltype) == fueltype.Hydro {
			hydroRows++
			assert.Contains(t, hydroNames, res.Value(i, table.ColName))
		}
	}
	assert.Equal(t, hydro.Len(), hydroRows)

	names, err := res.Column(table.ColName)
	require.NoError(t, err)
	assert.Contains(t, names, "Hellisheidi", "unmatched GEO record is added")
	assert.NotContains(t, names, "Kaprun")
	assert.NotContains(t, names, "Alqueva")
	assert.False(t, res.HasColumn(table.ColScaledCapacity))
}

func TestMatchedDatasetIndex(t *testing.T) {
	ctx := context.Background()
	c := goldenCollector()

	opts := []ppcollect.MatchedOptions{
		{},
		{IncludeUnavailables: true},
		{RescaledHydros: true, SubsumeUncommonFueltypes: true},
	}
	for _, o := range opts {
		res, err := c.MatchedDataset(ctx, o)
		require.NoError(t, err)
		for i, v := range res.Index {
			assert.Equal(t, i, mustAtoi(t, v))
		}
	}
}

func TestMatchedDatasetSubsume(t *testing.T) {
	ctx := context.Background()
	c := goldenCollector()

	res, err := c.MatchedDataset(ctx, ppcollect.MatchedOptions{
		SubsumeUncommonFueltypes: true,
	})
	require.NoError(t, err)
	fts, err := res.Column(table.ColFueltype)
	require.NoError(t, err)
	for _, ft := range []string{"Geothermal", "Waste", "Mixed Fueltypes"} {
		assert.NotContains(t, fts, ft)
	}
	assert.Contains(t, fts, fueltype.Other)

	res, err = c.MatchedDataset(ctx, ppcollect.MatchedOptions{})
	require.NoError(t, err)
	fts, err = res.Column(table.ColFueltype)
	require.NoError(t, err)
	assert.Contains(t, fts, "Geothermal")
}

func TestMatchedDatasetIncludeUnavailables(t *testing.T) {
	ctx := context.Background()
	c := goldenCollector()

	four, err := c.MatchedDataset(ctx, ppcollect.MatchedOptions{})
	require.NoError(t, err)
	five, err := c.MatchedDataset(ctx, ppcollect.MatchedOptions{
		IncludeUnavailables: true,
	})
	require.NoError(t, err)
	assert.Equal(t, four.Len()+1, five.Len())

	names, err := five.Column(table.ColName)
	require.NoError(t, err)
	assert.Contains(t, names, "Hornsea")
}

func TestMatchedDatasetMissingCache(t *testing.T) {
	c := newCollector(iocsv.New(t.TempDir()), rawRegistries())
	_, err := c.MatchedDataset(context.Background(), ppcollect.MatchedOptions{})
	require.Error(t, err)
	assert.Equal(t, errcode.CacheMissingError, errCode(t, err))
}

func TestMatchedRead(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := table.NewMatched("id", []table.Label{{Dataset: "CARMA", Field: "Name"}})
	require.NoError(t, m.AppendRow("0", []string{"x"}))
	store.matched[cache.MatchedCarmaGeoOpsdWri] = m

	reg := rawRegistries()
	c := newCollector(store, reg)
	res, err := c.CarmaGeoOpsdWriMatched(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, m, res)
	assert.Empty(t, reg.calls, "raw registries are not touched")

	_, err = c.CarmaEseFiasGeoOpsdWriMatched(ctx, false)
	assert.Error(t, err)
}

func TestMatchedUpdateFourSources(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	reg := rawRegistries()
	cl := &recCleaner{aggregate: make(map[string]bool)}
	mt := &recMatcher{}
	c := iocollect.New(store, reg, matching.Collaborators{
		Cleaner: cl, Matcher: mt, Extender: iomatch.New(),
	})

	res, err := c.CarmaGeoOpsdWriMatched(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "id", res.IndexName)
	assert.Equal(t, []string{"CARMA", "GEO", "OPSD", "WRI"}, mt.labels)
	assert.Equal(t, map[string]bool{
		"CARMA": true, "GEO": false, "OPSD": true, "WRI": true,
	}, cl.aggregate)

	stored, ok := store.matched[cache.MatchedCarmaGeoOpsdWri]
	require.True(t, ok)
	assert.Equal(t, res, stored)
}

func TestMatchedUpdateFiveSources(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	reg := rawRegistries()
	cl := &recCleaner{aggregate: make(map[string]bool)}
	mt := &recMatcher{}
	c := iocollect.New(store, reg, matching.Collaborators{
		Cleaner: cl, Matcher: mt, Extender: iomatch.New(),
	})

	_, err := c.CarmaEseFiasGeoOpsdWriMatched(ctx, true)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"CARMA", iocollect.LabelEseFias, "GEO", "OPSD", "WRI"},
		mt.labels,
	)
	assert.False(t, cl.aggregate["FIAS"])
	assert.False(t, cl.aggregate["GEO"])
	_, cleaned := cl.aggregate["ESE"]
	assert.False(t, cleaned, "ESE is used raw")

	eseFias := mt.tables[1]
	assert.Equal(t, []string{"0", "1"}, eseFias.Index)
	names, err := eseFias.Column(table.ColName)
	require.NoError(t, err)
	assert.Equal(t, []string{"FIAS", "ESE"}, names)

	_, ok := store.matched[cache.MatchedCarmaEseFiasGeoOpsdWri]
	assert.True(t, ok)
	assert.True(t, slices.Contains(reg.calls, sources.ESE))
}

func TestMatchedUpdateSourceError(t *testing.T) {
	store := newMemStore()
	reg := rawRegistries()
	delete(reg.raw, sources.OPSD)
	c := newCollector(store, reg)

	_, err := c.CarmaGeoOpsdWriMatched(context.Background(), true)
	require.Error(t, err)
	_, ok := store.matched[cache.MatchedCarmaGeoOpsdWri]
	assert.False(t, ok, "nothing is written on failure")
}
