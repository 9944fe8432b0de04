// Package iocollect builds matched, reduced and combined power-plant
// datasets. Cached tables come from a cache.Store, raw registries from a
// sources.Registry, and all cleaning and linkage is delegated to the
// matching collaborators.
package iocollect

import (
	"context"
	"log/slog"

	"github.com/gnames/ppcollect/pkg/cache"
	"github.com/gnames/ppcollect/pkg/fueltype"
	"github.com/gnames/ppcollect/pkg/matching"
	"github.com/gnames/ppcollect/pkg/ppcollect"
	"github.com/gnames/ppcollect/pkg/sources"
	"github.com/gnames/ppcollect/pkg/table"
)

// LabelEseFias is the shared label of FIAS and ESE records.
const LabelEseFias = "ESE_FIAS"

type collector struct {
	store  cache.Store
	reg    sources.Registry
	collab matching.Collaborators
}

// New creates a Collector. The registry is only used when matched tables
// are recomputed or when the combined dataset needs GEO records.
func New(
	store cache.Store,
	reg sources.Registry,
	collab matching.Collaborators,
) ppcollect.Collector {
	if collab.Relabeler == nil {
		collab.Relabeler = fueltype.Relabeler{}
	}
	return &collector{store: store, reg: reg, collab: collab}
}

// source is a raw registry together with its cleaning mode.
type source struct {
	ds        sources.Dataset
	aggregate bool
}

func (c *collector) CarmaGeoOpsdWriMatched(
	ctx context.Context,
	update bool,
) (*table.Matched, error) {
	key := cache.MatchedCarmaGeoOpsdWri
	if !update {
		return c.store.ReadMatched(ctx, key)
	}

	srcs := []source{
		{sources.CARMA, true},
		{sources.GEO, false},
		{sources.OPSD, true},
		{sources.WRI, true},
	}
	tables, err := c.cleanAll(ctx, srcs)
	if err != nil {
		return nil, err
	}
	labels := []string{"CARMA", "GEO", "OPSD", "WRI"}
	return c.combine(ctx, key, tables, labels)
}

func (c *collector) CarmaEseFiasGeoOpsdWriMatched(
	ctx context.Context,
	update bool,
) (*table.Matched, error) {
	key := cache.MatchedCarmaEseFiasGeoOpsdWri
	if !update {
		return c.store.ReadMatched(ctx, key)
	}

	carma, err := c.clean(ctx, source{sources.CARMA, true})
	if err != nil {
		return nil, err
	}
	eseFias, err := c.eseFias(ctx)
	if err != nil {
		return nil, err
	}
	rest, err := c.cleanAll(ctx, []source{
		{sources.GEO, false},
		{sources.OPSD, true},
		{sources.WRI, true},
	})
	if err != nil {
		return nil, err
	}

	tables := append([]*table.Table{carma, eseFias}, rest...)
	labels := []string{"CARMA", LabelEseFias, "GEO", "OPSD", "WRI"}
	return c.combine(ctx, key, tables, labels)
}

func (c *collector) CarmaGeoOpsdWriMatchedReduced(
	ctx context.Context,
) (*table.Table, error) {
	return c.store.ReadTable(ctx, cache.ReducedCarmaGeoOpsdWri)
}

func (c *collector) CarmaEseFiasGeoOpsdWriMatchedReduced(
	ctx context.Context,
) (*table.Table, error) {
	return c.store.ReadTable(ctx, cache.ReducedCarmaEseFiasGeoOpsdWri)
}

func (c *collector) AggregatedHydro(
	ctx context.Context,
	update, scaledCapacity bool,
) (*table.Table, error) {
	if update {
		return nil, HydroRecomputeError()
	}

	key := cache.AggregatedHydro
	res, err := c.store.ReadTable(ctx, key)
	if err != nil {
		return nil, err
	}

	scaled, err := res.Column(table.ColScaledCapacity)
	if err != nil {
		return nil, ScaledCapacityError(string(key))
	}
	if scaledCapacity {
		if err = res.SetColumn(table.ColCapacity, scaled); err != nil {
			return nil, err
		}
	}
	if err = res.DropColumn(table.ColScaledCapacity); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *collector) MatchedDataset(
	ctx context.Context,
	opts ppcollect.MatchedOptions,
) (*table.Table, error) {
	hydro, err := c.AggregatedHydro(ctx, false, opts.RescaledHydros)
	if err != nil {
		return nil, err
	}

	geo, err := c.clean(ctx, source{sources.GEO, false})
	if err != nil {
		return nil, err
	}

	matched, err := c.extendReduced(ctx, c.CarmaGeoOpsdWriMatchedReduced, geo)
	if err != nil {
		return nil, err
	}
	if opts.IncludeUnavailables {
		matched, err = c.extendReduced(
			ctx, c.CarmaEseFiasGeoOpsdWriMatchedReduced, geo,
		)
		if err != nil {
			return nil, err
		}
	}

	// hydro records come from the hydro aggregation only
	matched = matched.Filter(func(t *table.Table, i int) bool {
		return t.Value(i, table.ColFueltype) != fueltype.Hydro
	})

	if opts.SubsumeUncommonFueltypes {
		matched = c.collab.Relabeler.SetUncommonFueltypesToOther(matched)
	}

	res := table.Concat(matched, hydro).ResetIndex()
	res.IndexName = table.ColID
	slog.Info("Combined dataset is ready",
		"matched", matched.Len(), "hydro", hydro.Len(), "rows", res.Len())
	return res, nil
}

func (c *collector) extendReduced(
	ctx context.Context,
	read func(context.Context) (*table.Table, error),
	geo *table.Table,
) (*table.Table, error) {
	reduced, err := read(ctx)
	if err != nil {
		return nil, err
	}
	return c.collab.Extender.ExtendByNonMatched(ctx, reduced, geo, "GEO")
}

// eseFias stacks FIAS, cleaned without unit aggregation, on top of the raw
// ESE registry.
func (c *collector) eseFias(ctx context.Context) (*table.Table, error) {
	fias, err := c.clean(ctx, source{sources.FIAS, false})
	if err != nil {
		return nil, err
	}
	ese, err := c.reg.Raw(ctx, sources.ESE)
	if err != nil {
		return nil, err
	}
	res := table.Concat(fias, ese).ResetIndex()
	res.IndexName = table.ColID
	return res, nil
}

func (c *collector) clean(
	ctx context.Context,
	src source,
) (*table.Table, error) {
	raw, err := c.reg.Raw(ctx, src.ds)
	if err != nil {
		return nil, err
	}
	slog.Info("Cleaning dataset", "dataset", src.ds, "aggregate", src.aggregate)
	return c.collab.Cleaner.CleanSingle(ctx, raw, src.aggregate)
}

func (c *collector) cleanAll(
	ctx context.Context,
	srcs []source,
) ([]*table.Table, error) {
	res := make([]*table.Table, 0, len(srcs))
	for _, src := range srcs {
		t, err := c.clean(ctx, src)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, nil
}

func (c *collector) combine(
	ctx context.Context,
	key cache.Key,
	tables []*table.Table,
	labels []string,
) (*table.Matched, error) {
	res, err := c.collab.Matcher.CombineMultipleDatasets(ctx, tables, labels)
	if err != nil {
		return nil, err
	}
	res.IndexName = table.ColID
	if err = c.store.WriteMatched(ctx, key, res); err != nil {
		return nil, err
	}
	return res, nil
}
