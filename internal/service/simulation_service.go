package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
)

// SimulationDetails is a simulation together with its personas.
type SimulationDetails struct {
	Simulation *domain.Simulation
	Personas   []*domain.Persona
}

// CreateSimulationInput describes a new custom simulation and its persona
// batch. The owner is taken from the caller, not from the input.
type CreateSimulationInput struct {
	Simulation domain.CreateSimulationParams
	Personas   []domain.CreatePersonaParams
}

// SimulationService manages the custom simulations of a user. Every
// operation is scoped to the calling user; simulations owned by someone
// else behave as if they did not exist.
type SimulationService interface {
	// ListSimulations returns the user's simulations, newest first
	ListSimulations(ctx context.Context, userID uuid.UUID) ([]*domain.Simulation, error)

	// GetSimulation returns one of the user's simulations with its personas
	GetSimulation(ctx context.Context, userID, simulationID uuid.UUID) (*SimulationDetails, error)

	// CreateSimulation charges the simulation cost and stores the
	// simulation with its personas in one transaction.
	CreateSimulation(ctx context.Context, userID uuid.UUID, input CreateSimulationInput) (*SimulationDetails, error)

	// DeleteSimulation removes one of the user's simulations and its personas
	DeleteSimulation(ctx context.Context, userID, simulationID uuid.UUID) error
}

// SimulationServiceImpl implements the SimulationService interface
type SimulationServiceImpl struct {
	simulationStore store.SimulationStore
	personaStore    store.PersonaStore
	userStore       store.UserStore
	transactor      store.Transactor
	simulationCost  int
	logger          *slog.Logger
}

// NewSimulationService creates a new SimulationService
func NewSimulationService(
	simulationStore store.SimulationStore,
	personaStore store.PersonaStore,
	userStore store.UserStore,
	transactor store.Transactor,
	simulationCost int,
	logger *slog.Logger,
) SimulationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulationServiceImpl{
		simulationStore: simulationStore,
		personaStore:    personaStore,
		userStore:       userStore,
		transactor:      transactor,
		simulationCost:  simulationCost,
		logger:          logger.With("component", "simulation_service"),
	}
}

// ListSimulations returns the user's simulations
func (s *SimulationServiceImpl) ListSimulations(ctx context.Context, userID uuid.UUID) ([]*domain.Simulation, error) {
	sims, err := s.simulationStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list simulations", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	return sims, nil
}

// GetSimulation returns one of the user's simulations with its personas
func (s *SimulationServiceImpl) GetSimulation(
	ctx context.Context,
	userID, simulationID uuid.UUID,
) (*SimulationDetails, error) {
	sim, err := s.simulationStore.GetByID(ctx, userID, simulationID)
	if err != nil {
		if !errors.Is(err, store.ErrSimulationNotFound) {
			s.logger.Error("failed to get simulation", "error", err, "simulation_id", simulationID)
		}
		return nil, fmt.Errorf("failed to get simulation: %w", err)
	}

	personas, err := s.personaStore.ListBySimulation(ctx, userID, simulationID)
	if err != nil {
		s.logger.Error("failed to list personas", "error", err, "simulation_id", simulationID)
		return nil, fmt.Errorf("failed to get simulation personas: %w", err)
	}

	return &SimulationDetails{Simulation: sim, Personas: personas}, nil
}

// CreateSimulation charges the user and stores the simulation with its personas
func (s *SimulationServiceImpl) CreateSimulation(
	ctx context.Context,
	userID uuid.UUID,
	input CreateSimulationInput,
) (*SimulationDetails, error) {
	params := input.Simulation
	params.OwnerID = userID

	sim, err := domain.NewSimulation(params)
	if err != nil {
		return nil, fmt.Errorf("invalid simulation: %w", err)
	}
	for _, p := range input.Personas {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid persona: %w", err)
		}
	}

	details := &SimulationDetails{Simulation: sim}
	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)

		if s.simulationCost > 0 {
			if _, err := users.UpdateCredits(ctx, userID, -s.simulationCost); err != nil {
				return err
			}
		}

		if err := s.simulationStore.WithTx(tx).Create(ctx, sim); err != nil {
			return err
		}

		personas, err := s.personaStore.WithTx(tx).CreateMany(ctx, userID, sim.ID, input.Personas)
		if err != nil {
			return err
		}
		details.Personas = personas

		_, err = awardXP(ctx, users, userID, domain.XPSimulationStarted)
		return err
	})
	if err != nil {
		if !errors.Is(err, store.ErrInsufficientCredits) && !errors.Is(err, store.ErrUserNotFound) &&
			!errors.Is(err, store.ErrDuplicate) {
			s.logger.Error("failed to create simulation", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	s.logger.Info("simulation created",
		"user_id", userID,
		"simulation_id", sim.ID,
		"personas", len(details.Personas),
		"cost", s.simulationCost)
	return details, nil
}

// DeleteSimulation removes one of the user's simulations
func (s *SimulationServiceImpl) DeleteSimulation(ctx context.Context, userID, simulationID uuid.UUID) error {
	if err := s.simulationStore.Delete(ctx, userID, simulationID); err != nil {
		if !errors.Is(err, store.ErrSimulationNotFound) {
			s.logger.Error("failed to delete simulation", "error", err, "simulation_id", simulationID)
		}
		return fmt.Errorf("failed to delete simulation: %w", err)
	}

	s.logger.Info("simulation deleted", "user_id", userID, "simulation_id", simulationID)
	return nil
}
