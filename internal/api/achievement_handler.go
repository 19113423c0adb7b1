package api

import (
	"net/http"
	"time"

	"github.com/internsim/practice-api/internal/api/shared"
	"github.com/internsim/practice-api/internal/dto"
	"github.com/internsim/practice-api/internal/service"
)

// AchievementHandler serves the caller's achievements.
type AchievementHandler struct {
	achievementService service.AchievementService
}

// NewAchievementHandler creates a new AchievementHandler
func NewAchievementHandler(achievementService service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// ListAchievements handles GET /api/me/achievements
func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	views, err := h.achievementService.ListAchievements(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewAchievementDTOs(views))
}

// CheckAchievements handles POST /api/me/achievements/check
func (h *AchievementHandler) CheckAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.achievementService.CheckAchievements(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewAchievementCheckDTO(result, time.Now().UTC()))
}
