package dto

import (
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/service"
)

// CreditsDTO reports a credit balance.
type CreditsDTO struct {
	Credits int `json:"credits"`
}

// MaxCreditChange bounds a single top-up or charge.
const MaxCreditChange = 1_000_000

// AddCreditsDTO is the payload for topping up credits.
type AddCreditsDTO struct {
	Amount int `json:"amount" validate:"gt=0,lte=1000000"`
}

// DeductCreditsDTO is the payload for charging credits. A zero or missing
// cost charges the default session cost.
type DeductCreditsDTO struct {
	Cost int `json:"cost" validate:"gte=0,lte=1000000"`
}

// DeductResultDTO is the outcome of a charge.
type DeductResultDTO struct {
	Success   bool `json:"success"`
	Remaining int  `json:"remaining"`
}

// NewDeductResultDTO maps a service result.
func NewDeductResultDTO(r service.DeductResult) DeductResultDTO {
	return DeductResultDTO{Success: r.Success, Remaining: r.Remaining}
}

// LevelDTO describes a user's place on the level ladder.
type LevelDTO struct {
	XP              int     `json:"xp"`
	CurrentLevel    int     `json:"current_level"`
	CurrentTitle    string  `json:"current_title"`
	NextLevel       *int    `json:"next_level"`
	XPToNext        int     `json:"xp_to_next"`
	ProgressPercent float64 `json:"progress_percent"`
}

// NewLevelDTO maps level progress.
func NewLevelDTO(p domain.LevelProgress) LevelDTO {
	return LevelDTO{
		XP:              p.XP,
		CurrentLevel:    p.CurrentLevel,
		CurrentTitle:    p.CurrentTitle,
		NextLevel:       p.NextLevel,
		XPToNext:        p.XPToNext,
		ProgressPercent: p.ProgressPercent,
	}
}

// AwardXPDTO is the payload for recording an XP-earning activity.
type AwardXPDTO struct {
	Reason string `json:"reason" validate:"required"`
}

// XPResultDTO is the outcome of an XP award.
type XPResultDTO struct {
	Awarded   int      `json:"awarded"`
	LeveledUp bool     `json:"leveled_up"`
	Level     LevelDTO `json:"level"`
}

// NewXPResultDTO maps a service result.
func NewXPResultDTO(r *service.XPResult) XPResultDTO {
	return XPResultDTO{
		Awarded:   r.Awarded,
		LeveledUp: r.LeveledUp,
		Level:     NewLevelDTO(domain.ProgressForXP(r.User.XP)),
	}
}
