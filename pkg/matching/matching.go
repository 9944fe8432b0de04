// Package matching declares the collaborators the collector delegates
// record cleaning, linkage and extension to.
package matching

import (
	"context"

	"github.com/gnames/ppcollect/pkg/table"
)

// Cleaner normalises a raw registry.
type Cleaner interface {
	// CleanSingle normalises names and categorical fields of a raw table.
	// When aggregateUnits is true, units of the same plant are collapsed
	// into one record.
	CleanSingle(
		ctx context.Context,
		t *table.Table,
		aggregateUnits bool,
	) (*table.Table, error)
}

// Matcher links records of several cleaned registries.
type Matcher interface {
	// CombineMultipleDatasets returns a matched table whose top header
	// level is the label of every input table. len(labels) must be equal
	// to len(tables).
	CombineMultipleDatasets(
		ctx context.Context,
		tables []*table.Table,
		labels []string,
	) (*table.Matched, error)
}

// Extender adds records that the matching step could not link.
type Extender interface {
	// ExtendByNonMatched appends rows of extendBy that are not referenced
	// under label in the projectID column of t.
	ExtendByNonMatched(
		ctx context.Context,
		t *table.Table,
		extendBy *table.Table,
		label string,
	) (*table.Table, error)
}

// Relabeler harmonises fueltypes.
type Relabeler interface {
	// SetUncommonFueltypesToOther relabels rare fueltypes as "Other".
	SetUncommonFueltypesToOther(t *table.Table) *table.Table
}

// Collaborators bundles everything the collector calls into.
type Collaborators struct {
	Cleaner   Cleaner
	Matcher   Matcher
	Extender  Extender
	Relabeler Relabeler
}
