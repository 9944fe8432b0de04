package iosqlite

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/pkg/errcode"
)

// OpenError is returned when the SQLite cache cannot be opened.
func OpenError(path string, err error) error {
	msg := `Cannot open cache database <em>%s</em>

<em>How to fix:</em>
  1. Check permissions of the data directory
  2. Or switch to the CSV backend: <em>data.backend: csv</em>`
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open sqlite cache %s: %w", path, err),
	}
}

// MissingError is returned when a key has no entry.
func MissingError(key string) error {
	msg := `Cached table <em>%s</em> does not exist

<em>How to fix:</em>
  1. Import tables from CSV files: <em>ppcollect cache sync</em>
  2. Or recompute matched tables: <em>ppcollect match --update</em>`
	return &gn.Error{
		Code: errcode.CacheMissingError,
		Msg:  msg,
		Vars: []any{key},
		Err:  fmt.Errorf("no cache entry for %s", key),
	}
}

// ShapeError is returned when an entry is read with the wrong shape.
func ShapeError(key, got, want string) error {
	msg := "Cached table <em>%s</em> is %s, expected %s"
	return &gn.Error{
		Code: errcode.CacheShapeError,
		Msg:  msg,
		Vars: []any{key, got, want},
		Err:  fmt.Errorf("%s: shape %s, expected %s", key, got, want),
	}
}

// ReadError is returned when an entry cannot be loaded or decoded.
func ReadError(key string, err error) error {
	msg := "Cannot read cached table <em>%s</em>"
	return &gn.Error{
		Code: errcode.CacheParseError,
		Msg:  msg,
		Vars: []any{key},
		Err:  fmt.Errorf("cannot read %s: %w", key, err),
	}
}

// WriteError is returned when an entry cannot be stored.
func WriteError(key string, err error) error {
	msg := "Cannot write cached table <em>%s</em>"
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Vars: []any{key},
		Err:  fmt.Errorf("cannot write %s: %w", key, err),
	}
}
