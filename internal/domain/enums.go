package domain

type SessionStatus string

const (
	SessionIdle    SessionStatus = "idle"
	SessionRunning SessionStatus = "running"
	SessionDone    SessionStatus = "done"
	SessionFailed  SessionStatus = "failed"
)

// ValidSessionStatuses is the canonical set of accepted session status strings.
var ValidSessionStatuses = map[string]bool{
	"idle": true, "running": true, "done": true, "failed": true,
}

type SubPlanStatus string

const (
	SubPlanPending    SubPlanStatus = "pending"
	SubPlanGenerating SubPlanStatus = "generating"
	SubPlanReady      SubPlanStatus = "ready"
	SubPlanFailed     SubPlanStatus = "failed"
)

// ValidSubPlanStatuses is the canonical set of accepted sub-plan status strings.
var ValidSubPlanStatuses = map[string]bool{
	"pending": true, "generating": true, "ready": true, "failed": true,
}

// ArtifactKind names one of the three generated artifacts in a plan session.
type ArtifactKind string

const (
	ArtifactNutrition ArtifactKind = "nutrition"
	ArtifactWorkout   ArtifactKind = "workout"
	ArtifactStages    ArtifactKind = "stages"
)

// AllArtifactKinds lists artifacts in pipeline execution order.
var AllArtifactKinds = []ArtifactKind{ArtifactNutrition, ArtifactWorkout, ArtifactStages}

type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

type Goal string

const (
	GoalLoss     Goal = "loss"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
	ActivityAthlete   ActivityLevel = "athlete"
)

type Diet string

const (
	DietNone        Diet = "none"
	DietVegetarian  Diet = "vegetarian"
	DietVegan       Diet = "vegan"
	DietKeto        Diet = "keto"
	DietPescatarian Diet = "pescatarian"
)

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// MealSource records how a meal entry was captured.
type MealSource string

const (
	MealManual  MealSource = "manual"
	MealPhoto   MealSource = "photo"
	MealBarcode MealSource = "barcode"
	MealSearch  MealSource = "search"
)

// ValidMealSources is the canonical set of accepted meal source strings.
var ValidMealSources = map[string]bool{
	"manual": true, "photo": true, "barcode": true, "search": true,
}
