// Package sqlite implements driven ports on an embedded SQLite database: the
// revoked session list and the catalog mutation log.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const (
	commonPragmas = "_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
	maxReaders    = 4
)

// DB holds a single-connection writer and a small reader pool over the same
// database file. Serialising writes avoids "database is locked" errors.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
}

// NewDB opens dbPath in WAL mode.
func NewDB(ctx context.Context, dbPath string) (*DB, error) {
	return open(ctx, fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&%s", dbPath, commonPragmas))
}

// open creates the writer and reader pools for dsn and pings both.
func open(ctx context.Context, dsn string) (*DB, error) {
	writer, err := openPool(ctx, dsn, 1)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}

	reader, err := openPool(ctx, dsn, maxReaders)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}

	return &DB{Writer: writer, Reader: reader}, nil
}

func openPool(ctx context.Context, dsn string, maxConns int) (*sql.DB, error) {
	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(maxConns)

	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// Close closes both pools and returns the first error.
func (db *DB) Close() error {
	var firstErr error

	if err := db.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("close reader: %w", err)
	}

	if err := db.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close writer: %w", err)
	}

	return firstErr
}
