package api

import (
	"net/http"

	"github.com/internsim/practice-api/internal/api/shared"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/dto"
	"github.com/internsim/practice-api/internal/service"
)

// CreditsHandler serves the caller's credit balance and XP level.
type CreditsHandler struct {
	creditsService      service.CreditsService
	gamificationService service.GamificationService
}

// NewCreditsHandler creates a new CreditsHandler
func NewCreditsHandler(
	creditsService service.CreditsService,
	gamificationService service.GamificationService,
) *CreditsHandler {
	return &CreditsHandler{
		creditsService:      creditsService,
		gamificationService: gamificationService,
	}
}

// GetCredits handles GET /api/me/credits
func (h *CreditsHandler) GetCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	credits, err := h.creditsService.GetCredits(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.CreditsDTO{Credits: credits})
}

// AddCredits handles POST /api/me/credits
func (h *CreditsHandler) AddCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.AddCreditsDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	credits, err := h.creditsService.AddCredits(r.Context(), userID, req.Amount)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.CreditsDTO{Credits: credits})
}

// DeductCredits handles POST /api/me/credits/deduct. An insufficient
// balance is reported in the body with success=false, not as an error.
func (h *CreditsHandler) DeductCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.DeductCreditsDTO
	if r.ContentLength != 0 && !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.creditsService.CheckAndDeduct(r.Context(), userID, req.Cost)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewDeductResultDTO(result))
}

// GetLevel handles GET /api/me/level
func (h *CreditsHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	progress, err := h.gamificationService.LevelProgress(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewLevelDTO(progress))
}

// AwardXP handles POST /api/me/xp
func (h *CreditsHandler) AwardXP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.AwardXPDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.gamificationService.AwardXP(r.Context(), userID, domain.XPReason(req.Reason))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewXPResultDTO(result))
}
