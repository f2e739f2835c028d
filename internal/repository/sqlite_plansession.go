package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/adriancosta/fitflow/internal/db"
	"github.com/adriancosta/fitflow/internal/domain"
)

// SQLitePlanSessionRepo implements PlanSessionRepo using a SQLite database.
type SQLitePlanSessionRepo struct {
	db db.DBTX
}

// NewSQLitePlanSessionRepo creates a new SQLitePlanSessionRepo.
func NewSQLitePlanSessionRepo(conn db.DBTX) *SQLitePlanSessionRepo {
	return &SQLitePlanSessionRepo{db: conn}
}

func (r *SQLitePlanSessionRepo) Create(ctx context.Context, s *domain.PlanSession) error {
	// A new session supersedes whatever came before it.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_sessions WHERE id != ?`, s.ID); err != nil {
		return fmt.Errorf("superseding previous sessions: %w", err)
	}

	query := `INSERT INTO plan_sessions (
		id, schema_version, status, progress, message,
		nutrition_status, workout_status, stages_status,
		created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.SchemaVersion,
		string(s.Status),
		s.Progress,
		s.Message,
		string(s.Nutrition.Status),
		string(s.Workout.Status),
		string(s.Stages.Status),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan session: %w", classifyStorageErr(err))
	}
	return nil
}

func (r *SQLitePlanSessionRepo) Get(ctx context.Context) (*domain.PlanSession, error) {
	query := `SELECT id, schema_version, status, progress, message,
		nutrition_status, nutrition_plan, nutrition_error, nutrition_started_at, nutrition_completed_at,
		workout_status, workout_plan, workout_error, workout_started_at, workout_completed_at,
		stages_status, stages_plan, stages_error, stages_started_at, stages_completed_at,
		created_at, updated_at
		FROM plan_sessions ORDER BY created_at DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)

	var s domain.PlanSession
	var createdAt, updatedAt string
	subs := []*domain.SubPlan{&s.Nutrition, &s.Workout, &s.Stages}
	fields := make([]struct {
		status                 string
		plan, errMsg           sql.NullString
		startedAt, completedAt sql.NullString
	}, 3)

	dest := []any{&s.ID, &s.SchemaVersion, (*string)(&s.Status), &s.Progress, &s.Message}
	for i := range fields {
		dest = append(dest,
			&fields[i].status, &fields[i].plan, &fields[i].errMsg,
			&fields[i].startedAt, &fields[i].completedAt)
	}
	dest = append(dest, &createdAt, &updatedAt)

	if err := row.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning plan session: %w", err)
	}

	for i, sub := range subs {
		sub.Status = domain.SubPlanStatus(fields[i].status)
		if fields[i].plan.Valid && fields[i].plan.String != "" {
			sub.Plan = []byte(fields[i].plan.String)
		}
		if fields[i].errMsg.Valid {
			sub.Error = fields[i].errMsg.String
		}
		sub.StartedAt = parseNullableTime(fields[i].startedAt)
		sub.CompletedAt = parseNullableTime(fields[i].completedAt)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		s.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		s.UpdatedAt = t
	}

	// A stale schema or corrupted shape is treated as no session at all,
	// never as an error; the orchestrator simply starts fresh.
	if s.SchemaVersion != domain.SessionSchemaVersion {
		return nil, nil
	}
	if err := s.Validate(); err != nil {
		return nil, nil
	}

	return &s, nil
}

func (r *SQLitePlanSessionRepo) UpdateSubPlan(ctx context.Context, id string, kind domain.ArtifactKind, patch SubPlanPatch) error {
	prefix, ok := subPlanColumnPrefix(kind)
	if !ok {
		return fmt.Errorf("unknown artifact kind %q", kind)
	}

	var sets []string
	var args []any

	if patch.Status != nil {
		sets = append(sets, prefix+"_status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Plan != nil {
		sets = append(sets, prefix+"_plan = ?")
		args = append(args, string(patch.Plan))
	} else if patch.ClearPlan {
		sets = append(sets, prefix+"_plan = NULL")
	}
	if patch.Error != nil {
		sets = append(sets, prefix+"_error = ?")
		args = append(args, *patch.Error)
	} else if patch.ClearError {
		sets = append(sets, prefix+"_error = NULL")
	}
	if patch.StartedAt != nil {
		sets = append(sets, prefix+"_started_at = ?")
		args = append(args, patch.StartedAt.Format(time.RFC3339))
	}
	if patch.CompletedAt != nil {
		sets = append(sets, prefix+"_completed_at = ?")
		args = append(args, patch.CompletedAt.Format(time.RFC3339))
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, nowUTC(), id)

	query := fmt.Sprintf(`UPDATE plan_sessions SET %s WHERE id = ?`, strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating %s sub-plan: %w", kind, classifyStorageErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePlanSessionRepo) UpdateProgress(ctx context.Context, id string, value int, message string) error {
	query := `UPDATE plan_sessions SET progress = ?, message = ?, updated_at = ?
		WHERE id = ? AND progress <= ?`
	res, err := r.db.ExecContext(ctx, query, value, message, nowUTC(), id, value)
	if err != nil {
		return fmt.Errorf("updating progress: %w", classifyStorageErr(err))
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	// Distinguish a missing session from a rejected backwards write.
	var existing int
	err = r.db.QueryRowContext(ctx, `SELECT progress FROM plan_sessions WHERE id = ?`, id).Scan(&existing)
	if err == sql.ErrNoRows {
		return fmt.Errorf("plan session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("reading progress: %w", err)
	}
	return fmt.Errorf("progress %d < stored %d: %w", value, existing, ErrProgressRegression)
}

func (r *SQLitePlanSessionRepo) SetStatus(ctx context.Context, id string, status domain.SessionStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plan_sessions SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting session status: %w", classifyStorageErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLitePlanSessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plan_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan session: %w", err)
	}
	return nil
}

func subPlanColumnPrefix(kind domain.ArtifactKind) (string, bool) {
	switch kind {
	case domain.ArtifactNutrition:
		return "nutrition", true
	case domain.ArtifactWorkout:
		return "workout", true
	case domain.ArtifactStages:
		return "stages", true
	default:
		return "", false
	}
}
