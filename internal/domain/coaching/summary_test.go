package coaching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goal(v float64) *float64 { return &v }

func TestEffectiveGoal(t *testing.T) {
	assert.Equal(t, DefaultCaloricGoal, EffectiveGoal(nil))
	assert.Equal(t, DefaultCaloricGoal, EffectiveGoal(goal(0)))
	assert.Equal(t, 2500.0, EffectiveGoal(goal(2500)))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		day      ClientDay
		issue    string
		score    string
		none     bool
		value    int64
		diffOver float64
	}{
		{name: "no meals", day: ClientDay{Calories: 0}, issue: IssueNoMeals},
		{name: "rounds to zero", day: ClientDay{Calories: 0.4}, issue: IssueNoMeals},
		{name: "severe deficit", day: ClientDay{Calories: 799}, issue: IssueSevereDeficit, value: 799},
		{name: "excess", day: ClientDay{Calories: 2600, Goal: goal(2000)}, issue: "Excess (+600 kcal)", value: 2600},
		{name: "excess on default goal", day: ClientDay{Calories: 2501}, issue: "Excess (+501 kcal)", value: 2501},
		{name: "exactly goal plus 500 is not excess", day: ClientDay{Calories: 2500}, none: true, value: 2500},
		{name: "perfect", day: ClientDay{Calories: 2010, Goal: goal(2000)}, score: ScorePerfect, value: 2010},
		{name: "exactly two percent is on track", day: ClientDay{Calories: 2040, Goal: goal(2000)}, score: ScoreOnTrack, value: 2040},
		{name: "lower band edge", day: ClientDay{Calories: 1800, Goal: goal(2000)}, score: ScoreOnTrack, value: 1800},
		{name: "upper band edge", day: ClientDay{Calories: 2200, Goal: goal(2000)}, score: ScoreOnTrack, value: 2200},
		{name: "below band", day: ClientDay{Calories: 1500, Goal: goal(2000)}, none: true, value: 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert, top := Classify(tt.day)

			switch {
			case tt.issue != "":
				require.NotNil(t, alert)
				assert.Nil(t, top)
				assert.Equal(t, tt.issue, alert.Issue)
				assert.Equal(t, tt.value, alert.Value)
			case tt.score != "":
				require.NotNil(t, top)
				assert.Nil(t, alert)
				assert.Equal(t, tt.score, top.Score)
				assert.Equal(t, tt.value, top.Value)
			case tt.none:
				assert.Nil(t, alert)
				assert.Nil(t, top)
			}
		})
	}
}

func TestClassify_RoundsBeforeComparing(t *testing.T) {
	alert, _ := Classify(ClientDay{Calories: 799.6})
	assert.Nil(t, alert, "799.6 rounds to 800 which is not a severe deficit")
}

func TestReview_TopPerformersOrderedAndCapped(t *testing.T) {
	days := []ClientDay{
		{ClientID: 1, Name: "A", Calories: 2100, Goal: goal(2000)}, // 5%
		{ClientID: 2, Name: "B", Calories: 2000, Goal: goal(2000)}, // 0%
		{ClientID: 3, Name: "C", Calories: 0},
		{ClientID: 4, Name: "D", Calories: 1960, Goal: goal(2000)}, // 2%
		{ClientID: 5, Name: "E", Calories: 2100, Goal: goal(2000)}, // 5%, after A
		{ClientID: 6, Name: "F", Calories: 300},
	}

	alerts, top := Review(days)

	require.Len(t, alerts, 2)
	assert.Equal(t, uint(3), alerts[0].ID)
	assert.Equal(t, uint(6), alerts[1].ID)

	require.Len(t, top, MaxTopPerformers)
	assert.Equal(t, []uint{2, 4, 1}, []uint{top[0].ID, top[1].ID, top[2].ID})
	assert.Equal(t, ScorePerfect, top[0].Score)
	assert.Equal(t, ScoreOnTrack, top[1].Score)
}

func TestReview_Empty(t *testing.T) {
	alerts, top := Review(nil)
	assert.NotNil(t, alerts)
	assert.NotNil(t, top)
	assert.Empty(t, alerts)
	assert.Empty(t, top)
}
