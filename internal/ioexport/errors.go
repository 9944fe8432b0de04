package ioexport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/pkg/errcode"
)

// NotConnectedError is returned when export starts without a database
// connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Export attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TruncateError is returned when the export table cannot be emptied.
func TruncateError(table string, err error) error {
	msg := "Cannot remove old records from <em>%s</em>"
	return &gn.Error{
		Code: errcode.ExportTruncateError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("truncate %s: %w", table, err),
	}
}

// CopyError is returned when a batch cannot be written.
func CopyError(table string, offset int, err error) error {
	msg := `Cannot write records to <em>%s</em>

<em>Failed batch starts at row:</em> %d`
	return &gn.Error{
		Code: errcode.ExportCopyError,
		Msg:  msg,
		Vars: []any{table, offset},
		Err:  fmt.Errorf("copy into %s at row %d: %w", table, offset, err),
	}
}
