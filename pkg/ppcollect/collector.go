// Package ppcollect declares the contracts of the dataset orchestrator and
// of the export pipeline. Implementations live in internal/io* packages.
package ppcollect

import (
	"context"

	"github.com/gnames/ppcollect/pkg/table"
)

// MatchedOptions are the flags of the combined dataset.
type MatchedOptions struct {
	// RescaledHydros takes hydro capacities from the "Scaled Capacity"
	// column of the hydro aggregation.
	RescaledHydros bool

	// SubsumeUncommonFueltypes relabels "Geothermal", "Waste" and
	// "Mixed Fueltypes" as "Other".
	SubsumeUncommonFueltypes bool

	// IncludeUnavailables uses the five-source reduced table, which
	// contains ESE and FIAS records.
	IncludeUnavailables bool
}

// Collector either loads cached tables or recomputes them through the
// cleaning and matching collaborators.
type Collector interface {
	// CarmaGeoOpsdWriMatched returns the four-source matched table. With
	// update it cleans and matches the raw registries and overwrites the
	// cache, otherwise it reads the cache.
	CarmaGeoOpsdWriMatched(ctx context.Context, update bool) (*table.Matched, error)

	// CarmaEseFiasGeoOpsdWriMatched is the five-source variant where FIAS
	// and ESE records share the ESE_FIAS label.
	CarmaEseFiasGeoOpsdWriMatched(ctx context.Context, update bool) (*table.Matched, error)

	// CarmaGeoOpsdWriMatchedReduced reads the four-source reduced table.
	CarmaGeoOpsdWriMatchedReduced(ctx context.Context) (*table.Table, error)

	// CarmaEseFiasGeoOpsdWriMatchedReduced reads the five-source reduced
	// table.
	CarmaEseFiasGeoOpsdWriMatchedReduced(ctx context.Context) (*table.Table, error)

	// AggregatedHydro reads the hydro aggregation. Recomputing it is not
	// implemented and update returns an error. With scaledCapacity the
	// Capacity column takes values of "Scaled Capacity"; "Scaled Capacity"
	// is never part of the result.
	AggregatedHydro(ctx context.Context, update, scaledCapacity bool) (*table.Table, error)

	// MatchedDataset combines the reduced matched table, extended by
	// non-matched GEO records, with the hydro aggregation. Hydro records
	// come only from the hydro aggregation. The index of the result is
	// 0..n-1.
	MatchedDataset(ctx context.Context, opts MatchedOptions) (*table.Table, error)
}

// Exporter writes the combined dataset to a database.
type Exporter interface {
	// Export replaces the content of the target table with t and returns
	// the number of rows written.
	Export(ctx context.Context, t *table.Table) (int, error)
}
