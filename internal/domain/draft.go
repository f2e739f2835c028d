package domain

import (
	"encoding/json"
	"time"
)

// DraftSchemaVersion is embedded in every persisted ProgramDraft.
// A stored draft carrying a different version is invalid and read as absent.
const DraftSchemaVersion = 3

// DraftTTL is how long a draft stays consumable after creation.
// Enforced by the reader, not the writer.
const DraftTTL = 48 * time.Hour

// ProgramDraft is the immutable snapshot written once the generation
// pipeline completes, consumed by the downstream preview screen.
type ProgramDraft struct {
	Version       int
	Days          int
	NutritionJSON json.RawMessage
	WorkoutText   string
	StagesJSON    json.RawMessage
	CreatedAt     time.Time
}

// Expired reports whether the draft has outlived its TTL.
func (d *ProgramDraft) Expired(now time.Time) bool {
	return now.Sub(d.CreatedAt) > DraftTTL
}
