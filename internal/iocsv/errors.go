package iocsv

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/pkg/errcode"
)

// MissingError is returned when a cached table does not exist.
func MissingError(path string, err error) error {
	msg := `Cached table <em>%s</em> does not exist

<em>How to fix:</em>
  1. Copy precomputed tables into the data directory
  2. Or recompute matched tables: <em>ppcollect match --update</em>`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

// ReadFileError is returned when a file exists but cannot be read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

// ParseError is returned for malformed CSV content.
func ParseError(path string, err error) error {
	msg := "Cannot parse CSV file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CacheParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse %s: %w", path, err),
	}
}

// ShapeError is returned when a file has a header layout other than the
// one requested by the reader.
func ShapeError(path, want string) error {
	msg := `File <em>%s</em> does not have a %s header

Reduced and hydro tables have one header row, unreduced matched tables
have two.`
	vars := []any{path, want}
	return &gn.Error{
		Code: errcode.CacheShapeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: expected %s header", path, want),
	}
}

// ColumnError is returned when a required column is absent.
func ColumnError(path, column string) error {
	msg := "File <em>%s</em> has no column <em>%s</em>"
	vars := []any{path, column}
	return &gn.Error{
		Code: errcode.CacheColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: missing column %q", path, column),
	}
}

// WriteError is returned when a table cannot be persisted.
func WriteError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
	}
}
