package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/db"
	"github.com/adriancosta/fitflow/internal/domain"
)

// profileRowID is the fixed key of the single local user profile.
const profileRowID = "default"

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	query := `SELECT id, gender, age, height_cm, weight_kg, target_weight_kg,
		activity, goal, diet, training_days, experience, calorie_target,
		created_at, updated_at
		FROM user_profile WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, profileRowID)

	var p domain.Profile
	var age, trainingDays, calorieTarget sql.NullInt64
	var height, weight, target sql.NullFloat64
	var createdAt, updatedAt string
	err := row.Scan(
		&p.ID,
		(*string)(&p.Gender),
		&age,
		&height,
		&weight,
		&target,
		(*string)(&p.Activity),
		(*string)(&p.Goal),
		(*string)(&p.Diet),
		&trainingDays,
		(*string)(&p.Experience),
		&calorieTarget,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	p.Age = intPtrFromNull(age)
	p.TrainingDays = intPtrFromNull(trainingDays)
	p.CalorieTarget = intPtrFromNull(calorieTarget)
	p.HeightCm = floatPtrFromNull(height)
	p.WeightKg = floatPtrFromNull(weight)
	p.TargetWeightKg = floatPtrFromNull(target)

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		p.UpdatedAt = t
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = profileRowID
	}
	query := `INSERT OR REPLACE INTO user_profile
		(id, gender, age, height_cm, weight_kg, target_weight_kg,
		 activity, goal, diet, training_days, experience, calorie_target,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		string(p.Gender),
		nullableIntToValue(p.Age),
		nullableFloatToValue(p.HeightCm),
		nullableFloatToValue(p.WeightKg),
		nullableFloatToValue(p.TargetWeightKg),
		string(p.Activity),
		string(p.Goal),
		string(p.Diet),
		nullableIntToValue(p.TrainingDays),
		string(p.Experience),
		nullableIntToValue(p.CalorieTarget),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", classifyStorageErr(err))
	}
	return nil
}
