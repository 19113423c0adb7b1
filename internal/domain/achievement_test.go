package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAchievementStats(t *testing.T) {
	t.Parallel()

	user := &User{OnboardingCompleted: true, StreakDays: 4, CurrentLevel: 3}
	sims := []*Simulation{{}, {}}
	progress := []*InternProgress{
		{Status: ProgressNotStarted},
		{Status: ProgressInProgress},
		{Status: ProgressCompleted},
		{Status: ProgressCompleted},
	}

	stats := NewAchievementStats(user, sims, progress)

	assert.Equal(t, AchievementStats{
		OnboardingCompleted: true,
		SimulationsCreated:  2,
		ProjectsStarted:     3,
		ProjectsCompleted:   2,
		StreakDays:          4,
		Level:               3,
	}, stats)
}

func TestAchievementStats_Value(t *testing.T) {
	t.Parallel()

	stats := AchievementStats{
		SimulationsCreated: 1,
		ProjectsStarted:    2,
		ProjectsCompleted:  3,
		StreakDays:         4,
		Level:              5,
	}

	tests := []struct {
		metric AchievementMetric
		want   int
	}{
		{MetricOnboarding, 0},
		{MetricSimulationsCreated, 1},
		{MetricProjectsStarted, 2},
		{MetricProjectsCompleted, 3},
		{MetricStreakDays, 4},
		{MetricLevel, 5},
		{AchievementMetric("reviews_approved"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			assert.Equal(t, tt.want, stats.Value(tt.metric))
			assert.Equal(t, tt.want != 0 || tt.metric == MetricOnboarding, tt.metric.IsValid())
		})
	}

	stats.OnboardingCompleted = true
	assert.Equal(t, 1, stats.Value(MetricOnboarding))
}

func TestRarity_IsValid(t *testing.T) {
	t.Parallel()

	for _, r := range []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary} {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Rarity("mythic").IsValid())
	assert.False(t, Rarity("").IsValid())
}
