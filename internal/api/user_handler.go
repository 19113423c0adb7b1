package api

import (
	"net/http"

	"github.com/internsim/practice-api/internal/api/shared"
	"github.com/internsim/practice-api/internal/dto"
	"github.com/internsim/practice-api/internal/platform/logger"
	"github.com/internsim/practice-api/internal/service"
)

// UserHandler serves registration, credential checks and the caller's
// own profile.
type UserHandler struct {
	userService       service.UserService
	onboardingService service.OnboardingService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, onboardingService service.OnboardingService) *UserHandler {
	return &UserHandler{
		userService:       userService,
		onboardingService: onboardingService,
	}
}

// Register handles POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.ToRegisterParams())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Info("user registered", "user_id", user.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, dto.NewUserDTO(user))
}

// Login handles POST /api/login. It checks the credentials and returns the
// user; issuing a session is left to the upstream auth layer.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewUserDTO(user))
}

// GetMe handles GET /api/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewUserDTO(user))
}

// UpdateMe handles PATCH /api/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req.ToParams())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewUserDTO(user))
}

// CompleteOnboarding handles POST /api/me/onboarding
func (h *UserHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.OnboardingDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.onboardingService.CompleteOnboarding(r.Context(), userID, req.ToInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewUserDTO(user))
}
