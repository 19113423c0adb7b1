package dto

import (
	"time"

	"github.com/internsim/practice-api/internal/catalog"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/service"
)

// AchievementDTO is an achievement with the caller's unlock state.
type AchievementDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	Category     string     `json:"category"`
	Rarity       string     `json:"rarity"`
	XPReward     int        `json:"xp_reward"`
	CreditReward int        `json:"credit_reward"`
	Unlocked     bool       `json:"unlocked"`
	UnlockedAt   *time.Time `json:"unlocked_at"`
}

func newAchievementDTO(a catalog.Achievement) AchievementDTO {
	return AchievementDTO{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Icon:         a.Icon,
		Category:     a.Category,
		Rarity:       string(a.Rarity),
		XPReward:     a.XPReward,
		CreditReward: a.CreditReward,
	}
}

// NewAchievementDTOs maps the enriched achievement list.
func NewAchievementDTOs(views []service.AchievementView) []AchievementDTO {
	out := make([]AchievementDTO, 0, len(views))
	for _, v := range views {
		a := newAchievementDTO(v.Achievement)
		a.Unlocked = v.Unlocked
		a.UnlockedAt = v.UnlockedAt
		out = append(out, a)
	}
	return out
}

// AchievementCheckDTO is the outcome of an achievement check.
type AchievementCheckDTO struct {
	Unlocked       []AchievementDTO `json:"unlocked"`
	XPAwarded      int              `json:"xp_awarded"`
	CreditsAwarded int              `json:"credits_awarded"`
	LeveledUp      bool             `json:"leveled_up"`
	Credits        int              `json:"credits"`
	Level          LevelDTO         `json:"level"`
}

// NewAchievementCheckDTO maps a service result. Newly unlocked entries
// carry the check time as their unlock time.
func NewAchievementCheckDTO(r *service.AchievementCheckResult, checkedAt time.Time) AchievementCheckDTO {
	unlocked := make([]AchievementDTO, 0, len(r.Unlocked))
	for _, a := range r.Unlocked {
		d := newAchievementDTO(a)
		d.Unlocked = true
		at := checkedAt
		d.UnlockedAt = &at
		unlocked = append(unlocked, d)
	}
	return AchievementCheckDTO{
		Unlocked:       unlocked,
		XPAwarded:      r.XPAwarded,
		CreditsAwarded: r.CreditsAwarded,
		LeveledUp:      r.LeveledUp,
		Credits:        r.User.Credits,
		Level:          NewLevelDTO(domain.ProgressForXP(r.User.XP)),
	}
}
