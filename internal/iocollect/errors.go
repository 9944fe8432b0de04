package iocollect

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/pkg/errcode"
)

// ErrNotImplemented marks recompute paths that do not exist.
var ErrNotImplemented = errors.New("not implemented")

// HydroRecomputeError is returned when the hydro aggregation is asked to
// be recomputed.
func HydroRecomputeError() error {
	msg := `Recomputing the hydro aggregation is not implemented

<em>How to fix:</em>
  Run the command without <em>--update</em> to read the cached table.`
	return &gn.Error{
		Code: errcode.CollectHydroRecomputeError,
		Msg:  msg,
		Err:  fmt.Errorf("hydro aggregation recompute: %w", ErrNotImplemented),
	}
}

// ScaledCapacityError is returned when the hydro aggregation has no
// "Scaled Capacity" column.
func ScaledCapacityError(key string) error {
	msg := "Hydro aggregation <em>%s</em> has no <em>Scaled Capacity</em> column"
	return &gn.Error{
		Code: errcode.CacheColumnError,
		Msg:  msg,
		Vars: []any{key},
		Err:  fmt.Errorf("%s: missing column %q", key, "Scaled Capacity"),
	}
}
