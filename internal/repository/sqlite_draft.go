package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adriancosta/fitflow/internal/db"
	"github.com/adriancosta/fitflow/internal/domain"
)

// draftRowID is the fixed key of the single stored draft snapshot.
const draftRowID = "current"

// SQLiteDraftRepo implements DraftRepo using a SQLite database.
type SQLiteDraftRepo struct {
	db db.DBTX
}

// NewSQLiteDraftRepo creates a new SQLiteDraftRepo.
func NewSQLiteDraftRepo(conn db.DBTX) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: conn}
}

func (r *SQLiteDraftRepo) Save(ctx context.Context, d *domain.ProgramDraft) error {
	query := `INSERT OR REPLACE INTO program_drafts
		(id, version, days, nutrition_json, workout_text, stages_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		draftRowID,
		d.Version,
		d.Days,
		nullableJSON(d.NutritionJSON),
		d.WorkoutText,
		nullableJSON(d.StagesJSON),
		d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving program draft: %w", classifyStorageErr(err))
	}
	return nil
}

func (r *SQLiteDraftRepo) Get(ctx context.Context) (*domain.ProgramDraft, error) {
	query := `SELECT version, days, nutrition_json, workout_text, stages_json, created_at
		FROM program_drafts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, draftRowID)

	var d domain.ProgramDraft
	var nutrition, stages sql.NullString
	var createdAt string
	err := row.Scan(&d.Version, &d.Days, &nutrition, &d.WorkoutText, &stages, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning program draft: %w", err)
	}

	// Silent invalidation: a draft from another schema generation reads
	// the same as no draft at all.
	if d.Version != domain.DraftSchemaVersion {
		return nil, nil
	}

	if nutrition.Valid {
		d.NutritionJSON = []byte(nutrition.String)
	}
	if stages.Valid {
		d.StagesJSON = []byte(stages.String)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		d.CreatedAt = t
	}
	return &d, nil
}

func (r *SQLiteDraftRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM program_drafts WHERE id = ?`, draftRowID); err != nil {
		return fmt.Errorf("clearing program draft: %w", err)
	}
	return nil
}

func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
