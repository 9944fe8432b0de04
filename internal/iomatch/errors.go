package iomatch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/pkg/errcode"
)

// LabelsError is returned when the number of labels does not match the
// number of tables.
func LabelsError(tables, labels int) error {
	msg := "Cannot match %d tables with %d labels"
	return &gn.Error{
		Code: errcode.CollectMatchError,
		Msg:  msg,
		Vars: []any{tables, labels},
		Err:  fmt.Errorf("got %d tables and %d labels", tables, labels),
	}
}

// ExtendError is returned when non-matched records cannot be added.
func ExtendError(label string, err error) error {
	msg := "Cannot extend matched table by non-matched <em>%s</em> records"
	return &gn.Error{
		Code: errcode.CollectExtendError,
		Msg:  msg,
		Vars: []any{label},
		Err:  fmt.Errorf("extend by %s: %w", label, err),
	}
}
