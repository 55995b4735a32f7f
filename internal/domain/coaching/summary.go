package coaching

import (
	"fmt"
	"math"
	"sort"
)

const (
	DefaultCaloricGoal = 2000.0

	SevereDeficitKcal = 800
	ExcessMarginKcal  = 500
	LowerBandFactor   = 0.9
	UpperBandFactor   = 1.1
	PerfectThreshold  = 2.0
	MaxTopPerformers  = 3

	IssueNoMeals       = "Did not log meals yesterday"
	IssueSevereDeficit = "Severe deficit (< 800kcal)"

	ScorePerfect = "Perfect"
	ScoreOnTrack = "On Track"
)

// ClientDay is one client's intake for the day being reviewed.
type ClientDay struct {
	ClientID uint
	Name     string
	Calories float64
	Goal     *float64
}

type Alert struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Issue string  `json:"issue"`
	Value int64   `json:"value"`
	Goal  float64 `json:"goal"`
}

type TopPerformer struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Score       string  `json:"score"`
	Value       int64   `json:"value"`
	Goal        float64 `json:"goal"`
	DiffPercent float64 `json:"diff_percent"`
}

// EffectiveGoal returns the configured daily goal or DefaultCaloricGoal when
// unset or non-positive.
func EffectiveGoal(goal *float64) float64 {
	if goal == nil || *goal <= 0 {
		return DefaultCaloricGoal
	}
	return *goal
}

// Classify places a client's day in at most one bucket: an alert, a top
// performer candidate, or neither.
func Classify(day ClientDay) (*Alert, *TopPerformer) {
	value := int64(math.Round(day.Calories))
	goal := EffectiveGoal(day.Goal)
	v := float64(value)

	issue := ""
	switch {
	case value == 0:
		issue = IssueNoMeals
	case value < SevereDeficitKcal:
		issue = IssueSevereDeficit
	case v > goal+ExcessMarginKcal:
		issue = fmt.Sprintf("Excess (+%d kcal)", int64(v-goal))
	}

	if issue != "" {
		return &Alert{
			ID:    day.ClientID,
			Name:  day.Name,
			Issue: issue,
			Value: value,
			Goal:  goal,
		}, nil
	}

	if v < goal*LowerBandFactor || v > goal*UpperBandFactor {
		return nil, nil
	}

	diff := math.Abs(1-v/goal) * 100
	score := ScoreOnTrack
	if diff < PerfectThreshold {
		score = ScorePerfect
	}

	return nil, &TopPerformer{
		ID:          day.ClientID,
		Name:        day.Name,
		Score:       score,
		Value:       value,
		Goal:        goal,
		DiffPercent: diff,
	}
}

// Review classifies every client, keeping input order for alerts and
// returning at most MaxTopPerformers performers closest to their goal.
func Review(days []ClientDay) ([]Alert, []TopPerformer) {
	alerts := make([]Alert, 0)
	top := make([]TopPerformer, 0)

	for _, d := range days {
		a, p := Classify(d)
		if a != nil {
			alerts = append(alerts, *a)
		}
		if p != nil {
			top = append(top, *p)
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].DiffPercent < top[j].DiffPercent
	})
	if len(top) > MaxTopPerformers {
		top = top[:MaxTopPerformers]
	}

	return alerts, top
}
