package ioclean

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/pkg/errcode"
)

// NoNameColumnError is returned when a raw table has no Name column.
func NoNameColumnError(columns []string) error {
	msg := `Cannot clean a table without <em>Name</em> column

<em>Columns found:</em> %v`
	return &gn.Error{
		Code: errcode.CollectCleanError,
		Msg:  msg,
		Vars: []any{columns},
		Err:  fmt.Errorf("column Name is missing in %v", columns),
	}
}
