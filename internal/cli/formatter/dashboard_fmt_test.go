package formatter

import (
	"testing"
	"time"

	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/adriancosta/fitflow/internal/service"
	"github.com/stretchr/testify/assert"
)

func testDashboardData() *service.DashboardData {
	now := time.Now()
	return &service.DashboardData{
		Today: domain.DailySummary{
			Date:     now,
			Calories: 1450,
			Macros:   domain.Macros{ProteinG: 95, CarbsG: 140, FatG: 50},
			Meals:    3,
		},
		Days: []domain.DailySummary{
			{Date: now, Calories: 1450, Meals: 3},
			{Date: now.AddDate(0, 0, -1), Calories: 1820, Meals: 4},
		},
		Streak:        5,
		WeightTrend:   -0.6,
		LatestWeight:  &domain.WeightEntry{WeightKg: 67.4, RecordedAt: now},
		CalorieTarget: 1800,
	}
}

func TestFormatDashboard(t *testing.T) {
	out := stripANSI(FormatDashboard(testDashboardData()))

	assert.Contains(t, out, "TODAY")
	assert.Contains(t, out, "1450 kcal")
	assert.Contains(t, out, "of 1800 kcal")
	assert.Contains(t, out, "5-day logging streak")
	assert.Contains(t, out, "67.4")
	assert.Contains(t, out, "-0.6 kg this week")
	assert.Contains(t, out, "Yesterday")
}

func TestFormatDashboard_NoTargetNoWeight(t *testing.T) {
	data := testDashboardData()
	data.CalorieTarget = 0
	data.LatestWeight = nil
	data.Streak = 0

	out := stripANSI(FormatDashboard(data))

	assert.Contains(t, out, "1450 kcal")
	assert.NotContains(t, out, "of ")
	assert.Contains(t, out, "No logging streak yet.")
	assert.NotContains(t, out, "Weight")
}

func TestRenderBudget_OverBudgetShowsFullBar(t *testing.T) {
	out := stripANSI(renderBudget(1.3, 10))
	assert.Contains(t, out, "130%")
	assert.Contains(t, out, "██████████")
}
