package pipeline

// Progress checkpoints reported while the pipeline runs. Progress only
// moves forward; re-entering the pipeline never rewinds a checkpoint
// already reached.
const (
	ProgressStart          = 0
	ProgressPreparing      = 10
	ProgressNutritionStart = 30
	ProgressNutritionReady = 50
	ProgressWorkout        = 70
	ProgressStages         = 85
	ProgressDone           = 100
)

// Checkpoint status messages shown alongside the progress bar.
const (
	msgPreparing      = "Preparing your plan"
	msgNutrition      = "Generating your nutrition plan"
	msgNutritionReady = "Nutrition plan ready"
	msgWorkout        = "Building your workout program"
	msgStages         = "Mapping your journey stages"
	msgDone           = "Your program is ready"
)
