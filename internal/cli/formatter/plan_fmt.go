package formatter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
)

// artifactLabels maps artifact kinds to display names in pipeline order.
var artifactLabels = []struct {
	Kind  domain.ArtifactKind
	Label string
}{
	{domain.ArtifactNutrition, "Nutrition plan"},
	{domain.ArtifactWorkout, "Workout plan"},
	{domain.ArtifactStages, "Journey stages"},
}

// Escalation thresholds for a sub-plan stuck in generating.
const (
	generatingSlowAfter  = 30 * time.Second
	generatingStuckAfter = 90 * time.Second
)

// FormatPlanStatus renders a plan session's progress and per-artifact state.
func FormatPlanStatus(sess *domain.PlanSession, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Plan Generation"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", SessionPill(sess.Status), TruncID(sess.ID)))
	b.WriteString(fmt.Sprintf("%s\n", RenderProgress(float64(sess.Progress)/100, 24)))
	if sess.Message != "" {
		b.WriteString(Dim(sess.Message) + "\n")
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(artifactLabels))
	for _, a := range artifactLabels {
		sp := sess.SubPlanFor(a.Kind)
		detail := ""
		if sp.Error != "" {
			detail = StyleRed.Render(sp.Error)
		} else if stuck := sp.GeneratingSince(now); stuck > generatingStuckAfter {
			detail = StyleRed.Render(fmt.Sprintf("no response for %s, try 'fitflow plan retry'", roundSeconds(stuck)))
		} else if stuck > generatingSlowAfter {
			detail = StyleYellow.Render("taking longer than usual")
		} else if sp.CompletedAt != nil {
			detail = Dim(HumanTimestamp(*sp.CompletedAt))
		}
		rows = append(rows, []string{a.Label, ArtifactPill(sp.Status), detail})
	}
	b.WriteString(RenderTable([]string{"Artifact", "Status", ""}, rows))

	return b.String()
}

func roundSeconds(d time.Duration) time.Duration {
	return d.Round(time.Second)
}

// nutritionPreview is a loose view of the server's nutrition plan payload.
// Only the fields the preview needs are decoded; unknown shapes fall back
// to a byte-count line.
type nutritionPreview struct {
	Calories int `json:"calories"`
	Meals    []struct {
		Name     string  `json:"name"`
		Calories float64 `json:"calories"`
	} `json:"meals"`
}

// FormatDraft renders the completed program draft.
func FormatDraft(d *domain.ProgramDraft, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Created %s, valid until %s\n\n",
		HumanDateFrom(d.CreatedAt, now),
		d.CreatedAt.Add(domain.DraftTTL).Format("Jan 2 15:04")))

	b.WriteString(Bold("Nutrition") + "\n")
	var np nutritionPreview
	if len(d.NutritionJSON) == 0 {
		b.WriteString(Dim("  not generated yet, run 'fitflow plan retry'\n"))
	} else if err := json.Unmarshal(d.NutritionJSON, &np); err == nil && (np.Calories > 0 || len(np.Meals) > 0) {
		if np.Calories > 0 {
			b.WriteString(fmt.Sprintf("  Daily target: %s\n", FormatKcal(float64(np.Calories))))
		}
		for _, m := range np.Meals {
			b.WriteString(fmt.Sprintf("  • %s %s\n", m.Name, Dim(FormatKcal(m.Calories))))
		}
	} else {
		b.WriteString(Dim(fmt.Sprintf("  stored plan (%d bytes)\n", len(d.NutritionJSON))))
	}

	if d.WorkoutText != "" {
		b.WriteString("\n" + Bold("Workout") + "\n")
		for _, line := range strings.Split(strings.TrimSpace(d.WorkoutText), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	if len(d.StagesJSON) > 0 {
		var stages []json.RawMessage
		if err := json.Unmarshal(d.StagesJSON, &stages); err == nil {
			b.WriteString("\n" + Bold("Journey") + "\n")
			b.WriteString(fmt.Sprintf("  %d stages mapped out\n", len(stages)))
		}
	}

	return RenderBox("Your Program", strings.TrimRight(b.String(), "\n"))
}
