package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RevocationStore = (*RevocationRepo)(nil)

// RevocationRepo is the SQLite implementation of the RevocationStore port.
type RevocationRepo struct {
	db *DB
}

// NewRevocationRepo creates a new RevocationRepo backed by the given DB.
func NewRevocationRepo(db *DB) *RevocationRepo {
	return &RevocationRepo{db: db}
}

// Revoke marks a token ID as signed out until expiresAt.
func (r *RevocationRepo) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	const query = `INSERT OR IGNORE INTO revoked_sessions (token_id, expires_at) VALUES (?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query, tokenID, formatTime(expiresAt))
	if err != nil {
		return fmt.Errorf("revoke session %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked reports whether the token ID has been signed out.
func (r *RevocationRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	const query = `SELECT 1 FROM revoked_sessions WHERE token_id = ?`

	var one int
	err := r.db.Reader.QueryRowContext(ctx, query, tokenID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", tokenID, err)
	}
	return true, nil
}

// PurgeExpired deletes revocations whose tokens have expired anyway and
// returns the number of rows removed.
func (r *RevocationRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM revoked_sessions WHERE expires_at <= ?`

	result, err := r.db.Writer.ExecContext(ctx, query, formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("purge revoked sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return rows, nil
}

// formatTime stores timestamps as lexically sortable UTC strings.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
