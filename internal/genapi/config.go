package genapi

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of remote generation call being made.
type TaskType string

const (
	TaskNutrition TaskType = "nutrition"
	TaskWorkout   TaskType = "workout"
	TaskStages    TaskType = "stages"
	TaskVision    TaskType = "vision"
	TaskBarcode   TaskType = "barcode"
)

// TaskConfig holds per-task call parameters.
type TaskConfig struct {
	TimeoutMs int // overrides global if > 0
}

// Config holds all configuration for the generation API client.
type Config struct {
	BaseURL   string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with the production endpoint timeouts:
// 90s nutrition, 60s workout, 30s stages and vision, 10s barcode.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://api.fitflow.app",
		TimeoutMs: 30000,
		Tasks: map[TaskType]TaskConfig{
			TaskNutrition: {TimeoutMs: 90000},
			TaskWorkout:   {TimeoutMs: 60000},
			TaskStages:    {TimeoutMs: 30000},
			TaskVision:    {TimeoutMs: 30000},
			TaskBarcode:   {TimeoutMs: 10000},
		},
	}
}

// LoadConfig reads client configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("FITFLOW_API_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FITFLOW_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskNutrition, "FITFLOW_NUTRITION_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskWorkout, "FITFLOW_WORKOUT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskStages, "FITFLOW_STAGES_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskVision, "FITFLOW_VISION_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskBarcode, "FITFLOW_BARCODE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout in milliseconds for a task.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
