package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MutationLog = (*MutationLogRepo)(nil)

// MutationLogRepo is the SQLite implementation of the MutationLog port.
type MutationLogRepo struct {
	db *DB
}

// NewMutationLogRepo creates a new MutationLogRepo backed by the given DB.
func NewMutationLogRepo(db *DB) *MutationLogRepo {
	return &MutationLogRepo{db: db}
}

// Record appends an audit entry. A zero CreatedAt is replaced with the current time.
func (r *MutationLogRepo) Record(ctx context.Context, rec model.MutationRecord) error {
	const query = `INSERT INTO mutation_log (user_email, action, jewellery_id, sku, outcome, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		rec.UserEmail, string(rec.Kind), rec.JewelleryID, rec.SKU, string(rec.Outcome), rec.Message, formatTime(createdAt))
	if err != nil {
		return fmt.Errorf("record %s mutation: %w", rec.Kind, err)
	}
	return nil
}

// ListRecent returns up to limit entries, newest first.
func (r *MutationLogRepo) ListRecent(ctx context.Context, limit int) ([]model.MutationRecord, error) {
	const query = `SELECT id, user_email, action, jewellery_id, sku, outcome, message, created_at
		FROM mutation_log ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list mutation log: %w", err)
	}
	defer rows.Close()

	var records []model.MutationRecord
	for rows.Next() {
		var rec model.MutationRecord
		var kind, outcome, createdAt string
		if err := rows.Scan(&rec.ID, &rec.UserEmail, &kind, &rec.JewelleryID, &rec.SKU, &outcome, &rec.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan mutation log: %w", err)
		}
		rec.Kind = model.MutationKind(kind)
		rec.Outcome = model.Outcome(outcome)
		rec.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mutation log: %w", err)
	}

	return records, nil
}
