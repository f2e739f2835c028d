package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/db"
	"github.com/adriancosta/fitflow/internal/domain"
)

// SQLiteMealRepo implements MealRepo using a SQLite database.
type SQLiteMealRepo struct {
	db db.DBTX
}

// NewSQLiteMealRepo creates a new SQLiteMealRepo.
func NewSQLiteMealRepo(conn db.DBTX) *SQLiteMealRepo {
	return &SQLiteMealRepo{db: conn}
}

func (r *SQLiteMealRepo) Create(ctx context.Context, m *domain.MealLog) error {
	query := `INSERT INTO meal_logs
		(id, name, source, calories, protein_g, carbs_g, fat_g, grams, barcode, note, logged_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		string(m.Source),
		m.Calories,
		m.Macros.ProteinG,
		m.Macros.CarbsG,
		m.Macros.FatG,
		m.Grams,
		m.Barcode,
		m.Note,
		m.LoggedAt.Format(time.RFC3339),
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting meal log: %w", classifyStorageErr(err))
	}
	return nil
}

func (r *SQLiteMealRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.MealLog, error) {
	query := `SELECT id, name, source, calories, protein_g, carbs_g, fat_g, grams, barcode, note, logged_at, created_at
		FROM meal_logs WHERE logged_at >= ? ORDER BY logged_at DESC`
	rows, err := r.db.QueryContext(ctx, query, since.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing meal logs: %w", err)
	}
	defer rows.Close()

	var meals []*domain.MealLog
	for rows.Next() {
		var m domain.MealLog
		var loggedAt, createdAt string
		err := rows.Scan(
			&m.ID, &m.Name, (*string)(&m.Source),
			&m.Calories, &m.Macros.ProteinG, &m.Macros.CarbsG, &m.Macros.FatG,
			&m.Grams, &m.Barcode, &m.Note, &loggedAt, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning meal log: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, loggedAt); err == nil {
			m.LoggedAt = t
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			m.CreatedAt = t
		}
		meals = append(meals, &m)
	}
	return meals, rows.Err()
}

func (r *SQLiteMealRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meal_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting meal log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("meal log %s: %w", id, ErrNotFound)
	}
	return nil
}
