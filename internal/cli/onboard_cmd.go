package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/adriancosta/fitflow/internal/cli/formatter"
	"github.com/adriancosta/fitflow/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newOnboardCmd(app *App) *cobra.Command {
	var (
		gender, activity, goal, diet, experience string
		age, days, calories                      int
		height, weight, target                   float64
	)

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up your profile",
		Long: "Collects the profile used to generate your program. Runs an " +
			"interactive wizard on a terminal; every answer can also be " +
			"supplied as a flag for scripted setups.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			p, err := app.Onboarding.GetProfile(ctx)
			if err != nil {
				return err
			}
			if p == nil {
				p = &domain.Profile{}
			}

			if app.interactive() && cmd.Flags().NFlag() == 0 {
				if err := runOnboardWizard(p); err != nil {
					return err
				}
			} else {
				applyProfileFlags(cmd.Flags(), p,
					gender, activity, goal, diet, experience,
					age, days, calories, height, weight, target)
			}

			if err := app.Onboarding.SaveProfile(ctx, p); err != nil {
				return err
			}

			fmt.Println("Profile saved.")
			fmt.Println(formatter.Dim("Run 'fitflow plan run' to generate your program."))
			return nil
		},
	}

	cmd.Flags().StringVar(&gender, "gender", "", "Gender (female|male|other)")
	cmd.Flags().IntVar(&age, "age", 0, "Age in years")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Current weight in kg")
	cmd.Flags().Float64Var(&target, "target-weight", 0, "Target weight in kg")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity level (sedentary|light|moderate|active|athlete)")
	cmd.Flags().StringVar(&goal, "goal", "", "Goal (loss|maintain|gain)")
	cmd.Flags().StringVar(&diet, "diet", "", "Dietary preference (none|vegetarian|vegan|keto|pescatarian)")
	cmd.Flags().IntVar(&days, "days", 0, "Training days per week")
	cmd.Flags().StringVar(&experience, "experience", "", "Training experience (beginner|intermediate|advanced)")
	cmd.Flags().IntVar(&calories, "calories", 0, "Daily calorie target (0 = let the plan decide)")

	return cmd
}

// applyProfileFlags overwrites only the fields whose flags were set, so a
// re-run can adjust a single answer without wiping the rest.
func applyProfileFlags(flags *pflag.FlagSet, p *domain.Profile,
	gender, activity, goal, diet, experience string,
	age, days, calories int,
	height, weight, target float64,
) {
	if flags.Changed("gender") {
		p.Gender = domain.Gender(gender)
	}
	if flags.Changed("activity") {
		p.Activity = domain.ActivityLevel(activity)
	}
	if flags.Changed("goal") {
		p.Goal = domain.Goal(goal)
	}
	if flags.Changed("diet") {
		p.Diet = domain.Diet(diet)
	}
	if flags.Changed("experience") {
		p.Experience = domain.Experience(experience)
	}
	if flags.Changed("age") {
		p.Age = &age
	}
	if flags.Changed("days") {
		p.TrainingDays = &days
	}
	if flags.Changed("calories") {
		p.CalorieTarget = &calories
	}
	if flags.Changed("height") {
		p.HeightCm = &height
	}
	if flags.Changed("weight") {
		p.WeightKg = &weight
	}
	if flags.Changed("target-weight") {
		p.TargetWeightKg = &target
	}
}

// runOnboardWizard walks the huh form and writes the answers into p.
func runOnboardWizard(p *domain.Profile) error {
	gender := string(p.Gender)
	activity := string(p.Activity)
	goal := string(p.Goal)
	diet := string(p.Diet)
	experience := string(p.Experience)
	age := numericAnswer(p.Age, func(v int) string { return strconv.Itoa(v) })
	height := numericAnswer(p.HeightCm, formatFloat)
	weight := numericAnswer(p.WeightKg, formatFloat)
	target := numericAnswer(p.TargetWeightKg, formatFloat)
	days := numericAnswer(p.TrainingDays, func(v int) string { return strconv.Itoa(v) })

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("Female", string(domain.GenderFemale)),
					huh.NewOption("Male", string(domain.GenderMale)),
					huh.NewOption("Other / prefer not to say", string(domain.GenderOther)),
				).
				Value(&gender),
			huh.NewInput().
				Title("Age").
				Placeholder("30").
				Validate(optionalInt(10, 120)).
				Value(&age),
			huh.NewInput().
				Title("Height (cm)").
				Placeholder("170").
				Validate(optionalFloat(100, 250)).
				Value(&height),
			huh.NewInput().
				Title("Current weight (kg)").
				Placeholder("70").
				Validate(optionalFloat(30, 350)).
				Value(&weight),
			huh.NewInput().
				Title("Target weight (kg)").
				Description("Leave empty to maintain your current weight").
				Validate(optionalFloat(30, 350)).
				Value(&target),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How active are you?").
				Options(
					huh.NewOption("Mostly sitting", string(domain.ActivitySedentary)),
					huh.NewOption("Lightly active", string(domain.ActivityLight)),
					huh.NewOption("Moderately active", string(domain.ActivityModerate)),
					huh.NewOption("Very active", string(domain.ActivityActive)),
					huh.NewOption("Athlete", string(domain.ActivityAthlete)),
				).
				Value(&activity),
			huh.NewSelect[string]().
				Title("What is your goal?").
				Options(
					huh.NewOption("Lose weight", string(domain.GoalLoss)),
					huh.NewOption("Maintain", string(domain.GoalMaintain)),
					huh.NewOption("Build muscle", string(domain.GoalGain)),
				).
				Value(&goal),
			huh.NewSelect[string]().
				Title("Dietary preference").
				Options(
					huh.NewOption("No restrictions", string(domain.DietNone)),
					huh.NewOption("Vegetarian", string(domain.DietVegetarian)),
					huh.NewOption("Vegan", string(domain.DietVegan)),
					huh.NewOption("Keto", string(domain.DietKeto)),
					huh.NewOption("Pescatarian", string(domain.DietPescatarian)),
				).
				Value(&diet),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Training days per week").
				Placeholder("3").
				Validate(optionalInt(1, 7)).
				Value(&days),
			huh.NewSelect[string]().
				Title("Training experience").
				Options(
					huh.NewOption("Just starting out", string(domain.ExperienceBeginner)),
					huh.NewOption("Trained before", string(domain.ExperienceIntermediate)),
					huh.NewOption("Training regularly for years", string(domain.ExperienceAdvanced)),
				).
				Value(&experience),
		),
	).WithTheme(fitflowHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	p.Gender = domain.Gender(gender)
	p.Activity = domain.ActivityLevel(activity)
	p.Goal = domain.Goal(goal)
	p.Diet = domain.Diet(diet)
	p.Experience = domain.Experience(experience)
	p.Age = parseIntAnswer(age)
	p.HeightCm = parseFloatAnswer(height)
	p.WeightKg = parseFloatAnswer(weight)
	p.TargetWeightKg = parseFloatAnswer(target)
	p.TrainingDays = parseIntAnswer(days)
	return nil
}

func numericAnswer[T any](v *T, format func(T) string) string {
	if v == nil {
		return ""
	}
	return format(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// optionalInt validates an input that may be left blank.
func optionalInt(min, max int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if v < min || v > max {
			return fmt.Errorf("enter a value between %d and %d", min, max)
		}
		return nil
	}
}

// optionalFloat validates a decimal input that may be left blank.
func optionalFloat(min, max float64) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if v < min || v > max {
			return fmt.Errorf("enter a value between %.0f and %.0f", min, max)
		}
		return nil
	}
}

func parseIntAnswer(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatAnswer(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
