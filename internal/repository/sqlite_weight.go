package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/db"
	"github.com/adriancosta/fitflow/internal/domain"
)

// SQLiteWeightRepo implements WeightRepo using a SQLite database.
type SQLiteWeightRepo struct {
	db db.DBTX
}

// NewSQLiteWeightRepo creates a new SQLiteWeightRepo.
func NewSQLiteWeightRepo(conn db.DBTX) *SQLiteWeightRepo {
	return &SQLiteWeightRepo{db: conn}
}

func (r *SQLiteWeightRepo) Create(ctx context.Context, e *domain.WeightEntry) error {
	query := `INSERT INTO weight_entries (id, weight_kg, recorded_at, created_at)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.WeightKg,
		e.RecordedAt.Format(time.RFC3339),
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting weight entry: %w", classifyStorageErr(err))
	}
	return nil
}

func (r *SQLiteWeightRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.WeightEntry, error) {
	query := `SELECT id, weight_kg, recorded_at, created_at
		FROM weight_entries WHERE recorded_at >= ? ORDER BY recorded_at DESC`
	rows, err := r.db.QueryContext(ctx, query, since.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing weight entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		var recordedAt, createdAt string
		if err := rows.Scan(&e.ID, &e.WeightKg, &recordedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning weight entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			e.RecordedAt = t
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *SQLiteWeightRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weight_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting weight entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("weight entry %s: %w", id, ErrNotFound)
	}
	return nil
}
