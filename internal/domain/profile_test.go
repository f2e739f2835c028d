package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_FillsMissingFields(t *testing.T) {
	p := &Profile{}
	p.ApplyDefaults()

	assert.Equal(t, GenderOther, p.Gender)
	assert.Equal(t, ActivityLight, p.Activity)
	assert.Equal(t, GoalMaintain, p.Goal)
	assert.Equal(t, DietNone, p.Diet)
	assert.Equal(t, ExperienceBeginner, p.Experience)
	assert.Equal(t, 30, *p.Age)
	assert.Equal(t, 170.0, *p.HeightCm)
	assert.Equal(t, 70.0, *p.WeightKg)
	assert.Equal(t, 3, *p.TrainingDays)
}

func TestApplyDefaults_TargetWeightFallsBackToCurrentWeight(t *testing.T) {
	w := 82.5
	p := &Profile{WeightKg: &w}
	p.ApplyDefaults()

	assert.Equal(t, 82.5, *p.TargetWeightKg)
}

func TestApplyDefaults_PreservesAnsweredFields(t *testing.T) {
	age := 29
	height := 165.0
	weight := 68.0
	target := 60.0
	p := &Profile{
		Gender:         GenderFemale,
		Age:            &age,
		HeightCm:       &height,
		WeightKg:       &weight,
		TargetWeightKg: &target,
		Activity:       ActivityLight,
		Goal:           GoalLoss,
		Diet:           DietNone,
	}
	p.ApplyDefaults()

	assert.Equal(t, GenderFemale, p.Gender)
	assert.Equal(t, 29, *p.Age)
	assert.Equal(t, 165.0, *p.HeightCm)
	assert.Equal(t, 68.0, *p.WeightKg)
	assert.Equal(t, 60.0, *p.TargetWeightKg)
	assert.Equal(t, GoalLoss, p.Goal)
}
