// Package iosqlite implements cache.Store in a single SQLite file. Tables
// are kept as GOB-encoded blobs together with their shape, so a matched
// table cannot be read back as a flat one.
package iosqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/gnames/ppcollect/pkg/cache"
	"github.com/gnames/ppcollect/pkg/table"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

const ddl = `CREATE TABLE IF NOT EXISTS tables (
	key        TEXT PRIMARY KEY,
	shape      TEXT NOT NULL,
	payload    BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

// Store is a cache.Store backed by SQLite. It has to be closed after use.
type Store struct {
	path string
	db   *sql.DB
	enc  gnfmt.GNgob
}

var _ cache.Store = (*Store)(nil)

// Open opens or creates the SQLite file at path.
func Open(path string) (*Store, error) {
	err := gnsys.MakeDir(filepath.Dir(path))
	if err != nil {
		slog.Error("Cannot create cache directory", "error", err, "path", path)
		return nil, OpenError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, OpenError(path, err)
	}

	slog.Info("Cache database opened", "path", path)
	return &Store{path: path, db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		slog.Warn("Cache database is already closed")
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		slog.Error("Cannot close cache database", "error", err)
		return err
	}
	slog.Info("Cache database closed", "path", s.path)
	return nil
}

func (s *Store) ReadTable(
	ctx context.Context,
	key cache.Key,
) (*table.Table, error) {
	payload, err := s.load(ctx, key, cache.ShapeFlat)
	if err != nil {
		return nil, err
	}
	var res table.Table
	if err = s.enc.Decode(payload, &res); err != nil {
		slog.Error("Cannot decode cached table", "error", err, "key", key)
		return nil, ReadError(string(key), err)
	}
	return &res, nil
}

func (s *Store) WriteTable(
	ctx context.Context,
	key cache.Key,
	t *table.Table,
) error {
	return s.save(ctx, key, cache.ShapeFlat, t)
}

func (s *Store) ReadMatched(
	ctx context.Context,
	key cache.Key,
) (*table.Matched, error) {
	payload, err := s.load(ctx, key, cache.ShapeMatched)
	if err != nil {
		return nil, err
	}
	var res table.Matched
	if err = s.enc.Decode(payload, &res); err != nil {
		slog.Error("Cannot decode cached table", "error", err, "key", key)
		return nil, ReadError(string(key), err)
	}
	return &res, nil
}

func (s *Store) WriteMatched(
	ctx context.Context,
	key cache.Key,
	m *table.Matched,
) error {
	return s.save(ctx, key, cache.ShapeMatched, m)
}

func (s *Store) Exists(ctx context.Context, key cache.Key) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM tables WHERE key = ?", string(key),
	).Scan(&n)
	if err != nil {
		return false, ReadError(string(key), err)
	}
	return n > 0, nil
}

func (s *Store) load(
	ctx context.Context,
	key cache.Key,
	want cache.Shape,
) ([]byte, error) {
	var shape string
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT shape, payload FROM tables WHERE key = ?", string(key),
	).Scan(&shape, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, MissingError(string(key))
	}
	if err != nil {
		return nil, ReadError(string(key), err)
	}
	if cache.Shape(shape) != want {
		return nil, ShapeError(string(key), shape, string(want))
	}
	return payload, nil
}

func (s *Store) save(
	ctx context.Context,
	key cache.Key,
	shape cache.Shape,
	obj any,
) error {
	payload, err := s.enc.Encode(obj)
	if err != nil {
		slog.Error("Cannot encode table", "error", err, "key", key)
		return WriteError(string(key), err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tables (key, shape, payload, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   shape = excluded.shape,
		   payload = excluded.payload,
		   updated_at = excluded.updated_at`,
		string(key), string(shape), payload,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		slog.Error("Cannot store table", "error", err, "key", key)
		return WriteError(string(key), err)
	}
	slog.Info("Stored cached table", "key", key, "shape", shape)
	return nil
}
