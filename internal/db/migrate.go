package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// full list re-runs on every startup.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			// ALTER TABLE re-runs surface as duplicate column errors.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_profile (
		id               TEXT PRIMARY KEY,
		gender           TEXT NOT NULL DEFAULT '',
		age              INTEGER,
		height_cm        REAL,
		weight_kg        REAL,
		target_weight_kg REAL,
		activity         TEXT NOT NULL DEFAULT '',
		goal             TEXT NOT NULL DEFAULT '',
		diet             TEXT NOT NULL DEFAULT '',
		training_days    INTEGER,
		experience       TEXT NOT NULL DEFAULT '',
		calorie_target   INTEGER,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_sessions (
		id                   TEXT PRIMARY KEY,
		schema_version       INTEGER NOT NULL,
		status               TEXT NOT NULL DEFAULT 'idle'
		                     CHECK(status IN ('idle','running','done','failed')),
		progress             INTEGER NOT NULL DEFAULT 0,
		message              TEXT NOT NULL DEFAULT '',
		nutrition_status     TEXT NOT NULL DEFAULT 'pending'
		                     CHECK(nutrition_status IN ('pending','generating','ready','failed')),
		nutrition_plan       TEXT,
		nutrition_error      TEXT,
		nutrition_started_at TEXT,
		nutrition_completed_at TEXT,
		workout_status       TEXT NOT NULL DEFAULT 'pending'
		                     CHECK(workout_status IN ('pending','generating','ready','failed')),
		workout_plan         TEXT,
		workout_error        TEXT,
		workout_started_at   TEXT,
		workout_completed_at TEXT,
		stages_status        TEXT NOT NULL DEFAULT 'pending'
		                     CHECK(stages_status IN ('pending','generating','ready','failed')),
		stages_plan          TEXT,
		stages_error         TEXT,
		stages_started_at    TEXT,
		stages_completed_at  TEXT,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS program_drafts (
		id             TEXT PRIMARY KEY,
		version        INTEGER NOT NULL,
		days           INTEGER NOT NULL DEFAULT 1,
		nutrition_json TEXT,
		workout_text   TEXT NOT NULL DEFAULT '',
		stages_json    TEXT,
		created_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS meal_logs (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		source     TEXT NOT NULL
		           CHECK(source IN ('manual','photo','barcode','search')),
		calories   REAL NOT NULL DEFAULT 0,
		protein_g  REAL NOT NULL DEFAULT 0,
		carbs_g    REAL NOT NULL DEFAULT 0,
		fat_g      REAL NOT NULL DEFAULT 0,
		grams      REAL NOT NULL DEFAULT 0,
		barcode    TEXT NOT NULL DEFAULT '',
		note       TEXT NOT NULL DEFAULT '',
		logged_at  TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_meal_logs_logged_at ON meal_logs(logged_at)`,

	`CREATE TABLE IF NOT EXISTS foods (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		brand            TEXT NOT NULL DEFAULT '',
		barcode          TEXT NOT NULL DEFAULT '',
		calories_per_100 REAL NOT NULL DEFAULT 0,
		protein_per_100  REAL NOT NULL DEFAULT 0,
		carbs_per_100    REAL NOT NULL DEFAULT 0,
		fat_per_100      REAL NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_foods_barcode ON foods(barcode) WHERE barcode != ''`,
	`CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(name)`,

	`CREATE TABLE IF NOT EXISTS weight_entries (
		id          TEXT PRIMARY KEY,
		weight_kg   REAL NOT NULL,
		recorded_at TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_weight_entries_recorded ON weight_entries(recorded_at)`,

	`CREATE TABLE IF NOT EXISTS generation_locks (
		id           TEXT PRIMARY KEY,
		instance_id  TEXT NOT NULL,
		heartbeat_at TEXT NOT NULL
	)`,

	// A handful of staple foods so search works before any remote lookup.
	`INSERT OR IGNORE INTO foods (id, name, brand, barcode, calories_per_100, protein_per_100, carbs_per_100, fat_per_100, created_at) VALUES
		('seed-oats',    'Rolled Oats',     '', '', 379, 13.2, 67.7, 6.5, '2026-01-01T00:00:00Z'),
		('seed-egg',     'Egg, whole',      '', '', 143, 12.6, 0.7, 9.5, '2026-01-01T00:00:00Z'),
		('seed-chicken', 'Chicken Breast',  '', '', 165, 31.0, 0.0, 3.6, '2026-01-01T00:00:00Z'),
		('seed-rice',    'White Rice, cooked', '', '', 130, 2.7, 28.2, 0.3, '2026-01-01T00:00:00Z'),
		('seed-banana',  'Banana',          '', '', 89, 1.1, 22.8, 0.3, '2026-01-01T00:00:00Z'),
		('seed-yogurt',  'Greek Yogurt 5%', '', '', 97, 9.0, 3.9, 5.0, '2026-01-01T00:00:00Z')`,
}
