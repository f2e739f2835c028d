package domain

import "time"

// Profile holds the user data collected by the onboarding wizard.
// Numeric fields are pointers so that "never answered" is distinguishable
// from a legitimate zero; ApplyDefaults resolves the gaps.
type Profile struct {
	ID             string
	Gender         Gender
	Age            *int
	HeightCm       *float64
	WeightKg       *float64
	TargetWeightKg *float64
	Activity       ActivityLevel
	Goal           Goal
	Diet           Diet
	TrainingDays   *int
	Experience     Experience
	CalorieTarget  *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ApplyDefaults fills any missing fields so that payload building never
// blocks on an incomplete profile. The fallbacks mirror the onboarding
// form's prefilled values.
func (p *Profile) ApplyDefaults() {
	p.Gender = Gender(CoalesceStr(string(p.Gender), string(GenderOther)))
	p.Activity = ActivityLevel(CoalesceStr(string(p.Activity), string(ActivityLight)))
	p.Goal = Goal(CoalesceStr(string(p.Goal), string(GoalMaintain)))
	p.Diet = Diet(CoalesceStr(string(p.Diet), string(DietNone)))
	p.Experience = Experience(CoalesceStr(string(p.Experience), string(ExperienceBeginner)))

	age := IntFromPtrWithDefault(30, p.Age)
	p.Age = &age
	height := Float64FromPtrWithDefault(170, p.HeightCm)
	p.HeightCm = &height
	weight := Float64FromPtrWithDefault(70, p.WeightKg)
	p.WeightKg = &weight
	target := Float64FromPtrWithDefault(*p.WeightKg, p.TargetWeightKg)
	p.TargetWeightKg = &target
	days := IntFromPtrWithDefault(3, p.TrainingDays)
	p.TrainingDays = &days
}
