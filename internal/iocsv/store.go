// Package iocsv implements cache.Store on top of a directory of CSV files.
// This is an impure I/O package, every key is one UTF-8 CSV file.
package iocsv

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/ppcollect/pkg/cache"
	"github.com/gnames/ppcollect/pkg/table"
)

type csvStore struct {
	dir string
}

// New creates a CSV store in the given directory. The directory is created
// on the first write.
func New(dir string) cache.Store {
	return &csvStore{dir: dir}
}

// Path returns the file of a key inside dir.
func Path(dir string, key cache.Key) string {
	return filepath.Join(dir, string(key))
}

func (s *csvStore) ReadTable(
	ctx context.Context,
	key cache.Key,
) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadTableFile(Path(s.dir, key), table.ColID)
}

func (s *csvStore) WriteTable(
	ctx context.Context,
	key cache.Key,
	t *table.Table,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteTableFile(Path(s.dir, key), t)
}

func (s *csvStore) ReadMatched(
	ctx context.Context,
	key cache.Key,
) (*table.Matched, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := Path(s.dir, key)
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := DecodeMatched(f)
	if err != nil {
		if errors.Is(err, errShape) {
			return nil, ShapeError(path, "two-level")
		}
		return nil, ParseError(path, err)
	}
	slog.Debug("Read matched table", "path", path, "rows", res.Len())
	return res, nil
}

func (s *csvStore) WriteMatched(
	ctx context.Context,
	key cache.Key,
	m *table.Matched,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := Path(s.dir, key)
	return write(path, func(w io.Writer) error {
		return EncodeMatched(w, m)
	})
}

func (s *csvStore) Exists(
	ctx context.Context,
	key cache.Key,
) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path := Path(s.dir, key)
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, ReadFileError(path, err)
}

// ReadTableFile reads a flat CSV table using indexCol as the index. An
// empty indexCol numbers rows from 0.
func ReadTableFile(path, indexCol string) (*table.Table, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := DecodeTable(f, indexCol)
	if err != nil {
		var mce *table.MissingColumnError
		switch {
		case errors.As(err, &mce):
			return nil, ColumnError(path, mce.Column)
		case errors.Is(err, errShape):
			return nil, ShapeError(path, "single-level")
		default:
			return nil, ParseError(path, err)
		}
	}
	slog.Debug("Read table", "path", path, "rows", res.Len())
	return res, nil
}

// WriteTableFile writes a flat table to path, creating parent directories
// and truncating an existing file.
func WriteTableFile(path string, t *table.Table) error {
	return write(path, func(w io.Writer) error {
		return EncodeTable(w, t)
	})
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, MissingError(path, err)
		}
		return nil, ReadFileError(path, err)
	}
	return f, nil
}

func write(path string, enc func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return WriteError(path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}

	if err = enc(f); err != nil {
		_ = f.Close()
		return WriteError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteError(path, err)
	}
	slog.Info("Wrote cache file", "path", path)
	return nil
}
