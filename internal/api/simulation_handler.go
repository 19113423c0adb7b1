package api

import (
	"net/http"

	"github.com/internsim/practice-api/internal/api/shared"
	"github.com/internsim/practice-api/internal/dto"
	"github.com/internsim/practice-api/internal/platform/logger"
	"github.com/internsim/practice-api/internal/service"
)

// SimulationHandler serves the caller's custom simulations. Simulations of
// other users answer 404.
type SimulationHandler struct {
	simulationService service.SimulationService
}

// NewSimulationHandler creates a new SimulationHandler
func NewSimulationHandler(simulationService service.SimulationService) *SimulationHandler {
	return &SimulationHandler{simulationService: simulationService}
}

// ListSimulations handles GET /api/simulations
func (h *SimulationHandler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sims, err := h.simulationService.ListSimulations(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewSimulationDTOs(sims))
}

// CreateSimulation handles POST /api/simulations
func (h *SimulationHandler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateSimulationDTO
	if !decodeAndValidate(w, r, &req) {
		return
	}

	details, err := h.simulationService.CreateSimulation(r.Context(), userID, req.ToInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Debug("simulation created", "simulation_id", details.Simulation.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, dto.NewSimulationDetailsDTO(details))
}

// GetSimulation handles GET /api/simulations/{id}
func (h *SimulationHandler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	userID, simID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	details, err := h.simulationService.GetSimulation(r.Context(), userID, simID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dto.NewSimulationDetailsDTO(details))
}

// DeleteSimulation handles DELETE /api/simulations/{id}
func (h *SimulationHandler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	userID, simID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.simulationService.DeleteSimulation(r.Context(), userID, simID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondNoContent(w)
}
