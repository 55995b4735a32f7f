// Package nutrition holds the daily intake arithmetic shown on dashboards.
package nutrition

import (
	"math"

	"github.com/BruksfildServices01/coachtrack/internal/models"
)

// Defaults used when a user has not set a goal.
const (
	DefaultCalories = 2500.0
	DefaultProteins = 150.0
	DefaultCarbs    = 250.0
	DefaultFats     = 70.0
)

type Goals struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Totals is what was consumed over a day.
type Totals struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type DashboardStats struct {
	DailyCaloricGoal   float64 `json:"daily_caloric_goal"`
	CaloriesConsumed   float64 `json:"calories_consumed"`
	CaloriesRemaining  float64 `json:"calories_remaining"`
	ProteinsConsumed   float64 `json:"proteins_consumed"`
	CarbsConsumed      float64 `json:"carbs_consumed"`
	FatsConsumed       float64 `json:"fats_consumed"`
	ProgressPercentage float64 `json:"progress_percentage"`
	GoalProteins       float64 `json:"goal_proteins"`
	GoalCarbs          float64 `json:"goal_carbs"`
	GoalFats           float64 `json:"goal_fats"`
}

func orDefault(v *float64, def float64) float64 {
	if v == nil || *v <= 0 {
		return def
	}
	return *v
}

// GoalsOf returns u's goals with defaults filled in.
func GoalsOf(u *models.User) Goals {
	return Goals{
		Calories: orDefault(u.DailyCaloricNeeds, DefaultCalories),
		Proteins: orDefault(u.GoalProteins, DefaultProteins),
		Carbs:    orDefault(u.GoalCarbs, DefaultCarbs),
		Fats:     orDefault(u.GoalFats, DefaultFats),
	}
}

// Stats compares consumed totals with goals. Remaining calories never go
// below zero and progress is capped at 1.
func Stats(g Goals, t Totals) DashboardStats {
	progress := 0.0
	if g.Calories > 0 {
		progress = math.Min(1, t.Calories/g.Calories)
	}

	return DashboardStats{
		DailyCaloricGoal:   g.Calories,
		CaloriesConsumed:   t.Calories,
		CaloriesRemaining:  math.Max(0, g.Calories-t.Calories),
		ProteinsConsumed:   t.Proteins,
		CarbsConsumed:      t.Carbs,
		FatsConsumed:       t.Fats,
		ProgressPercentage: progress,
		GoalProteins:       g.Proteins,
		GoalCarbs:          g.Carbs,
		GoalFats:           g.Fats,
	}
}
