package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/db"
	"github.com/adriancosta/fitflow/internal/domain"
)

// SQLiteFoodRepo implements FoodRepo using a SQLite database.
type SQLiteFoodRepo struct {
	db db.DBTX
}

// NewSQLiteFoodRepo creates a new SQLiteFoodRepo.
func NewSQLiteFoodRepo(conn db.DBTX) *SQLiteFoodRepo {
	return &SQLiteFoodRepo{db: conn}
}

func (r *SQLiteFoodRepo) Upsert(ctx context.Context, f *domain.Food) error {
	query := `INSERT INTO foods
		(id, name, brand, barcode, calories_per_100, protein_per_100, carbs_per_100, fat_per_100, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			brand = excluded.brand,
			barcode = excluded.barcode,
			calories_per_100 = excluded.calories_per_100,
			protein_per_100 = excluded.protein_per_100,
			carbs_per_100 = excluded.carbs_per_100,
			fat_per_100 = excluded.fat_per_100`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.Name,
		f.Brand,
		f.Barcode,
		f.CaloriesPer100,
		f.MacrosPer100.ProteinG,
		f.MacrosPer100.CarbsG,
		f.MacrosPer100.FatG,
		f.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting food: %w", classifyStorageErr(err))
	}
	return nil
}

func (r *SQLiteFoodRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.Food, error) {
	query := `SELECT id, name, brand, barcode, calories_per_100, protein_per_100, carbs_per_100, fat_per_100, created_at
		FROM foods WHERE barcode = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, barcode), fmt.Sprintf("food barcode %s", barcode))
}

func (r *SQLiteFoodRepo) Search(ctx context.Context, query string, limit int) ([]*domain.Food, error) {
	if limit <= 0 {
		limit = 20
	}
	stmt := `SELECT id, name, brand, barcode, calories_per_100, protein_per_100, carbs_per_100, fat_per_100, created_at
		FROM foods WHERE name LIKE ? OR brand LIKE ? ORDER BY name LIMIT ?`
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, stmt, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching foods: %w", err)
	}
	defer rows.Close()

	var foods []*domain.Food
	for rows.Next() {
		f, err := scanFood(rows.Scan)
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func (r *SQLiteFoodRepo) scanOne(row *sql.Row, label string) (*domain.Food, error) {
	f, err := scanFood(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", label, ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

func scanFood(scan func(...any) error) (*domain.Food, error) {
	var f domain.Food
	var createdAt string
	err := scan(
		&f.ID, &f.Name, &f.Brand, &f.Barcode,
		&f.CaloriesPer100, &f.MacrosPer100.ProteinG, &f.MacrosPer100.CarbsG, &f.MacrosPer100.FatG,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		f.CreatedAt = t
	}
	return &f, nil
}
