package api

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/internsim/practice-api/internal/api/shared"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/dto"
	"github.com/internsim/practice-api/internal/service"
)

// projectIDPattern matches catalog project slugs.
var projectIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,99}$`)

// ProgressHandler serves per-project progress and the project overview.
type ProgressHandler struct {
	progressService service.ProgressService
	projectService  service.ProjectService
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(
	progressService service.ProgressService,
	projectService service.ProjectService,
) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		projectService:  projectService,
	}
}

// ListProgress handles GET /api/progress
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	records, err := h.progressService.ListProgress(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewProgressDTOs(records))
}

// GetProgress handles GET /api/progress/{projectID}. A project that was
// never started answers 404.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathProjectID(w, r)
	if !ok {
		return
	}

	p, err := h.progressService.GetProjectProgress(r.Context(), userID, projectID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if p == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Project not started")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewProgressDTO(p))
}

// UpdateProgress handles PUT /api/progress/{projectID}
func (h *ProgressHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathProjectID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProgressDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.progressService.UpdateProgress(r.Context(), userID, req.ToInput(projectID))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewProgressDTO(p))
}

// ListProjects handles GET /api/projects
func (h *ProgressHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewUserProjectDTOs(projects))
}

func pathProjectID(w http.ResponseWriter, r *http.Request) (string, bool) {
	projectID := chi.URLParam(r, "projectID")
	if !projectIDPattern.MatchString(projectID) {
		HandleAPIError(w, r,
			domain.NewValidationError("project_id", "has invalid format", domain.ErrEmptyProgressProjectID), "")
		return "", false
	}
	return projectID, true
}
