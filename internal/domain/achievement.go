package domain

import (
	"time"

	"github.com/google/uuid"
)

// AchievementMetric names the user statistic an achievement is earned on.
type AchievementMetric string

// Supported achievement metrics.
const (
	MetricOnboarding         AchievementMetric = "onboarding_completed"
	MetricSimulationsCreated AchievementMetric = "simulations_created"
	MetricProjectsStarted    AchievementMetric = "projects_started"
	MetricProjectsCompleted  AchievementMetric = "projects_completed"
	MetricStreakDays         AchievementMetric = "streak_days"
	MetricLevel              AchievementMetric = "level"
)

// IsValid reports whether m is a supported metric.
func (m AchievementMetric) IsValid() bool {
	switch m {
	case MetricOnboarding, MetricSimulationsCreated, MetricProjectsStarted,
		MetricProjectsCompleted, MetricStreakDays, MetricLevel:
		return true
	default:
		return false
	}
}

// Rarity grades how hard an achievement is to earn.
type Rarity string

// Supported rarities, from most to least common.
const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// IsValid reports whether r is a supported rarity.
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

// AchievementStats is the snapshot of a user's activity that achievement
// conditions are evaluated against.
type AchievementStats struct {
	OnboardingCompleted bool
	SimulationsCreated  int
	ProjectsStarted     int
	ProjectsCompleted   int
	StreakDays          int
	Level               int
}

// Value returns the statistic measured by m. Onboarding counts as 1 once
// completed. Unknown metrics read as 0.
func (s AchievementStats) Value(m AchievementMetric) int {
	switch m {
	case MetricOnboarding:
		if s.OnboardingCompleted {
			return 1
		}
		return 0
	case MetricSimulationsCreated:
		return s.SimulationsCreated
	case MetricProjectsStarted:
		return s.ProjectsStarted
	case MetricProjectsCompleted:
		return s.ProjectsCompleted
	case MetricStreakDays:
		return s.StreakDays
	case MetricLevel:
		return s.Level
	default:
		return 0
	}
}

// NewAchievementStats builds the snapshot from a user and their records.
func NewAchievementStats(
	user *User,
	simulations []*Simulation,
	progress []*InternProgress,
) AchievementStats {
	stats := AchievementStats{
		OnboardingCompleted: user.OnboardingCompleted,
		SimulationsCreated:  len(simulations),
		StreakDays:          user.StreakDays,
		Level:               user.CurrentLevel,
	}
	for _, p := range progress {
		switch p.Status {
		case ProgressInProgress:
			stats.ProjectsStarted++
		case ProgressCompleted:
			stats.ProjectsStarted++
			stats.ProjectsCompleted++
		}
	}
	return stats
}

// UserAchievement records that a user unlocked an achievement.
type UserAchievement struct {
	UserID        uuid.UUID `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
