package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/db"
)

// SQLiteLockRepo implements LockRepo using a SQLite database.
type SQLiteLockRepo struct {
	db db.DBTX
}

// NewSQLiteLockRepo creates a new SQLiteLockRepo.
func NewSQLiteLockRepo(conn db.DBTX) *SQLiteLockRepo {
	return &SQLiteLockRepo{db: conn}
}

func (r *SQLiteLockRepo) Get(ctx context.Context, id string) (*LockRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, instance_id, heartbeat_at FROM generation_locks WHERE id = ?`, id)

	var rec LockRecord
	var heartbeat string
	if err := row.Scan(&rec.ID, &rec.InstanceID, &heartbeat); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("lock %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning lock: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, heartbeat); err == nil {
		rec.HeartbeatAt = t
	}
	return &rec, nil
}

func (r *SQLiteLockRepo) Upsert(ctx context.Context, rec LockRecord) error {
	query := `INSERT OR REPLACE INTO generation_locks (id, instance_id, heartbeat_at)
		VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.InstanceID, rec.HeartbeatAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting lock: %w", classifyStorageErr(err))
	}
	return nil
}

func (r *SQLiteLockRepo) Delete(ctx context.Context, id, instanceID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM generation_locks WHERE id = ? AND instance_id = ?`, id, instanceID)
	if err != nil {
		return fmt.Errorf("deleting lock: %w", err)
	}
	return nil
}
