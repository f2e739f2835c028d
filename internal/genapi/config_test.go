package genapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Timeouts(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 90000, cfg.TaskTimeout(TaskNutrition))
	assert.Equal(t, 60000, cfg.TaskTimeout(TaskWorkout))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskStages))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskVision))
	assert.Equal(t, 10000, cfg.TaskTimeout(TaskBarcode))
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := Config{TimeoutMs: 12000}
	assert.Equal(t, 12000, cfg.TaskTimeout(TaskNutrition))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FITFLOW_API_BASE_URL", "http://localhost:9999")
	t.Setenv("FITFLOW_NUTRITION_TIMEOUT_MS", "5000")
	t.Setenv("FITFLOW_BARCODE_TIMEOUT_MS", "junk")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, 5000, cfg.TaskTimeout(TaskNutrition))
	assert.Equal(t, 10000, cfg.TaskTimeout(TaskBarcode), "invalid env value keeps the default")
}

func TestLoadConfig_DefaultsWhenUnset(t *testing.T) {
	t.Setenv("FITFLOW_API_BASE_URL", "")
	cfg := LoadConfig()
	assert.Equal(t, "https://api.fitflow.app", cfg.BaseURL)
}
