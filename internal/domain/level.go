package domain

import "errors"

// LevelInfo describes one step of the level ladder.
type LevelInfo struct {
	Level        int    `json:"level"`
	CumulativeXP int    `json:"cumulative_xp"`
	Title        string `json:"title"`
}

// LevelThresholds is the ladder ordered by level. CumulativeXP is the total
// XP needed to reach the level.
var LevelThresholds = []LevelInfo{
	{Level: 1, CumulativeXP: 0, Title: "Intern Arrival"},
	{Level: 2, CumulativeXP: 100, Title: "First Steps"},
	{Level: 3, CumulativeXP: 250, Title: "Getting Traction"},
	{Level: 4, CumulativeXP: 500, Title: "Balanced"},
	{Level: 5, CumulativeXP: 750, Title: "Pressure Check"},
	{Level: 6, CumulativeXP: 1000, Title: "Deep Dive"},
	{Level: 7, CumulativeXP: 1500, Title: "Full Challenge"},
	{Level: 8, CumulativeXP: 2000, Title: "Expert Pressure"},
	{Level: 9, CumulativeXP: 3000, Title: "Architectural Lead"},
	{Level: 10, CumulativeXP: 5000, Title: "Visionary"},
}

// XPReason names an activity that earns experience.
type XPReason string

// Activities that award XP.
const (
	XPOnboardingCompleted XPReason = "onboarding_completed"
	XPSimulationStarted   XPReason = "simulation_started"
	XPSimulationCompleted XPReason = "simulation_completed"
	XPChatMessageSent     XPReason = "chat_message_sent"
	XPCodeReviewRequested XPReason = "code_review_requested"
	XPCodeReviewCompleted XPReason = "code_review_completed"
	XPInterviewCompleted  XPReason = "interview_completed"
	XPQuizCompleted       XPReason = "quiz_completed"
	XPReportGenerated     XPReason = "report_generated"
)

var xpAwards = map[XPReason]int{
	XPOnboardingCompleted: 25,
	XPSimulationStarted:   10,
	XPSimulationCompleted: 100,
	XPChatMessageSent:     2,
	XPCodeReviewRequested: 15,
	XPCodeReviewCompleted: 30,
	XPInterviewCompleted:  40,
	XPQuizCompleted:       25,
	XPReportGenerated:     20,
}

// ErrUnknownXPReason is returned for activities without an award.
var ErrUnknownXPReason = errors.New("unknown xp reason")

// XPAward returns the XP granted for reason.
func XPAward(reason XPReason) (int, error) {
	xp, ok := xpAwards[reason]
	if !ok {
		return 0, ErrUnknownXPReason
	}
	return xp, nil
}

// LevelForXP returns the highest level reached with xp.
func LevelForXP(xp int) LevelInfo {
	for i := len(LevelThresholds) - 1; i >= 0; i-- {
		if xp >= LevelThresholds[i].CumulativeXP {
			return LevelThresholds[i]
		}
	}
	return LevelThresholds[0]
}

// LevelProgress summarises where xp sits on the ladder.
type LevelProgress struct {
	XP              int     `json:"xp"`
	CurrentLevel    int     `json:"current_level"`
	CurrentTitle    string  `json:"current_title"`
	NextLevel       *int    `json:"next_level"`
	XPToNext        int     `json:"xp_to_next"`
	ProgressPercent float64 `json:"progress_percent"`
}

// ProgressForXP computes the level progress for xp.
func ProgressForXP(xp int) LevelProgress {
	current := LevelForXP(xp)
	if current.Level >= len(LevelThresholds) {
		return LevelProgress{
			XP:              xp,
			CurrentLevel:    current.Level,
			CurrentTitle:    current.Title,
			ProgressPercent: 100,
		}
	}

	next := LevelThresholds[current.Level]
	span := next.CumulativeXP - current.CumulativeXP
	pct := float64(xp-current.CumulativeXP) / float64(span) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	nextLevel := next.Level

	return LevelProgress{
		XP:              xp,
		CurrentLevel:    current.Level,
		CurrentTitle:    current.Title,
		NextLevel:       &nextLevel,
		XPToNext:        next.CumulativeXP - xp,
		ProgressPercent: pct,
	}
}
