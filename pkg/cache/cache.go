// Package cache defines the key → table store that keeps matched, reduced
// and hydro tables between runs.
package cache

import (
	"context"

	"github.com/gnames/ppcollect/pkg/table"
)

// Key names a cached table. Keys are also the file names of the CSV store.
type Key string

const (
	// MatchedCarmaGeoOpsdWri is the unreduced four-source matched table.
	MatchedCarmaGeoOpsdWri Key = "Matched_Carma_Geo_Opsd_Wri.csv"

	// MatchedCarmaEseFiasGeoOpsdWri is the unreduced five-source matched
	// table (ESE and FIAS share one label).
	MatchedCarmaEseFiasGeoOpsdWri Key = "Matched_Carma_Ese_Fias_Geo_Opsd_Wri.csv"

	// ReducedCarmaGeoOpsdWri is the four-source reduced table.
	ReducedCarmaGeoOpsdWri Key = "Matched_Carma_Geo_Opsd_Wri_reduced.csv"

	// ReducedCarmaEseFiasGeoOpsdWri is the five-source reduced table.
	ReducedCarmaEseFiasGeoOpsdWri Key = "Matched_Carma_Ese_FIAS_Geo_Opsd_Wri_reduced.csv"

	// AggregatedHydro is the hydro aggregation table.
	AggregatedHydro Key = "hydro_aggregation_beta.csv"
)

// Shape tells how a table is stored.
type Shape string

const (
	// ShapeFlat is a single-level header with an "id" index.
	ShapeFlat Shape = "flat"
	// ShapeMatched is a two-level header with an "id" index.
	ShapeMatched Shape = "matched"
)

// Keys returns all known keys.
func Keys() []Key {
	return []Key{
		MatchedCarmaGeoOpsdWri,
		MatchedCarmaEseFiasGeoOpsdWri,
		ReducedCarmaGeoOpsdWri,
		ReducedCarmaEseFiasGeoOpsdWri,
		AggregatedHydro,
	}
}

// ShapeOf returns the shape the key is stored in.
func ShapeOf(k Key) Shape {
	switch k {
	case MatchedCarmaGeoOpsdWri, MatchedCarmaEseFiasGeoOpsdWri:
		return ShapeMatched
	default:
		return ShapeFlat
	}
}

// Store keeps tables by key. Implementations do not lock; concurrent
// writers of the same key race and the last one wins.
type Store interface {
	// ReadTable reads a flat table with an "id" index.
	ReadTable(ctx context.Context, key Key) (*table.Table, error)

	// WriteTable persists a flat table, overwriting any previous entry.
	WriteTable(ctx context.Context, key Key, t *table.Table) error

	// ReadMatched reads a two-level matched table.
	ReadMatched(ctx context.Context, key Key) (*table.Matched, error)

	// WriteMatched persists a matched table, overwriting any previous entry.
	WriteMatched(ctx context.Context, key Key, m *table.Matched) error

	// Exists reports whether the key has an entry.
	Exists(ctx context.Context, key Key) (bool, error)
}
