package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/platform/logger"
	"github.com/internsim/practice-api/internal/store"
)

const simulationColumns = `id, owner_id, title, context, domain, difficulty, level,
	estimated_duration, tech_stack, overview, learning_objectives, functional_requirements,
	non_functional_requirements, milestones, resources, quiz, field, duration, tools,
	client_persona, client_mood, description, created_at, updated_at`

// PostgresSimulationStore implements the store.SimulationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSimulationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSimulationStore creates a new PostgreSQL implementation of the SimulationStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSimulationStore(db store.DBTX, logger *slog.Logger) *PostgresSimulationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSimulationStore{
		db:     db,
		logger: logger.With(slog.String("component", "simulation_store")),
	}
}

// Ensure PostgresSimulationStore implements store.SimulationStore interface
var _ store.SimulationStore = (*PostgresSimulationStore)(nil)

// WithTx implements store.SimulationStore.WithTx
func (s *PostgresSimulationStore) WithTx(tx *sql.Tx) store.SimulationStore {
	return &PostgresSimulationStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanSimulation(row rowScanner) (*domain.Simulation, error) {
	var (
		sim                                                  domain.Simulation
		simContext, simDomain, difficulty, estimated         sql.NullString
		overview, field, duration, clientPersona, clientMood sql.NullString
		description                                          sql.NullString
		techStack, objectives, functional, nonFunctional     []byte
		milestones, resources, quiz, tools                   []byte
	)

	err := row.Scan(
		&sim.ID, &sim.OwnerID, &sim.Title, &simContext, &simDomain, &difficulty, &sim.Level,
		&estimated, &techStack, &overview, &objectives, &functional,
		&nonFunctional, &milestones, &resources, &quiz, &field, &duration, &tools,
		&clientPersona, &clientMood, &description, &sim.CreatedAt, &sim.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sim.Context = stringPtr(simContext)
	sim.Domain = stringPtr(simDomain)
	if difficulty.Valid {
		d := domain.Difficulty(difficulty.String)
		sim.Difficulty = &d
	}
	sim.EstimatedDuration = stringPtr(estimated)
	sim.Overview = stringPtr(overview)
	sim.Field = stringPtr(field)
	sim.Duration = stringPtr(duration)
	sim.ClientPersona = stringPtr(clientPersona)
	sim.ClientMood = stringPtr(clientMood)
	sim.Description = stringPtr(description)

	for _, err := range []error{
		decodeList("tech_stack", techStack, &sim.TechStack),
		decodeList("learning_objectives", objectives, &sim.LearningObjectives),
		decodeList("functional_requirements", functional, &sim.FunctionalRequirements),
		decodeList("non_functional_requirements", nonFunctional, &sim.NonFunctionalRequirements),
		decodeList("milestones", milestones, &sim.Milestones),
		decodeList("resources", resources, &sim.Resources),
		decodeList("quiz", quiz, &sim.Quiz),
		decodeList("tools", tools, &sim.Tools),
	} {
		if err != nil {
			return nil, err
		}
	}

	return &sim, nil
}

// Create implements store.SimulationStore.Create
// Returns store.ErrInvalidEntity if the owner doesn't exist (foreign key violation).
func (s *PostgresSimulationStore) Create(ctx context.Context, sim *domain.Simulation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sim.Validate(); err != nil {
		log.Warn("simulation validation failed during create",
			slog.String("error", err.Error()),
			slog.String("simulation_id", sim.ID.String()))
		return err
	}

	lists := make([][]byte, 0, 8)
	for _, encode := range []func() ([]byte, error){
		func() ([]byte, error) { return jsonList(sim.TechStack) },
		func() ([]byte, error) { return jsonList(sim.LearningObjectives) },
		func() ([]byte, error) { return jsonList(sim.FunctionalRequirements) },
		func() ([]byte, error) { return jsonList(sim.NonFunctionalRequirements) },
		func() ([]byte, error) { return jsonList(sim.Milestones) },
		func() ([]byte, error) { return jsonList(sim.Resources) },
		func() ([]byte, error) { return jsonList(sim.Quiz) },
		func() ([]byte, error) { return jsonList(sim.Tools) },
	} {
		b, err := encode()
		if err != nil {
			return fmt.Errorf("failed to encode simulation lists: %w", err)
		}
		lists = append(lists, b)
	}

	var difficulty sql.NullString
	if sim.Difficulty != nil {
		difficulty = nullIfEmpty(*sim.Difficulty)
	}

	query := `
		INSERT INTO simulations (` + simulationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		sim.ID,
		sim.OwnerID,
		sim.Title,
		sim.Context,
		sim.Domain,
		difficulty,
		sim.Level,
		sim.EstimatedDuration,
		lists[0],
		sim.Overview,
		lists[1],
		lists[2],
		lists[3],
		lists[4],
		lists[5],
		lists[6],
		sim.Field,
		sim.Duration,
		lists[7],
		sim.ClientPersona,
		sim.ClientMood,
		sim.Description,
		sim.CreatedAt,
		sim.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during simulation creation",
				slog.String("simulation_id", sim.ID.String()),
				slog.String("owner_id", sim.OwnerID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, sim.OwnerID)
		}
		log.Error("failed to create simulation",
			slog.String("error", err.Error()),
			slog.String("simulation_id", sim.ID.String()))
		return MapError(err)
	}

	log.Info("simulation created successfully",
		slog.String("simulation_id", sim.ID.String()),
		slog.String("owner_id", sim.OwnerID.String()))
	return nil
}

// GetByID implements store.SimulationStore.GetByID
// Returns store.ErrSimulationNotFound if the simulation does not exist or is owned by someone else.
func (s *PostgresSimulationStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Simulation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + simulationColumns + ` FROM simulations WHERE id = $1 AND owner_id = $2`

	sim, err := scanSimulation(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("simulation not found",
				slog.String("simulation_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrSimulationNotFound
		}
		log.Error("failed to get simulation",
			slog.String("error", err.Error()),
			slog.String("simulation_id", id.String()))
		return nil, MapError(err)
	}

	return sim, nil
}

// ListByUser implements store.SimulationStore.ListByUser
func (s *PostgresSimulationStore) ListByUser(ctx context.Context, ownerID uuid.UUID) ([]*domain.Simulation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + simulationColumns + `
		FROM simulations
		WHERE owner_id = $1
		ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list simulations",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	sims := make([]*domain.Simulation, 0)
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			log.Error("failed to scan simulation row", slog.String("error", err.Error()))
			return nil, err
		}
		sims = append(sims, sim)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating simulation rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("simulations listed",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(sims)))
	return sims, nil
}

// Delete implements store.SimulationStore.Delete
// Personas are removed in the same transaction as the simulation. The
// schema's ON DELETE CASCADE covers any other path that removes a simulation.
func (s *PostgresSimulationStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := inTx(ctx, s.db, func(q store.DBTX) error {
		_, err := q.ExecContext(ctx, `
			DELETE FROM personas
			WHERE simulation_id = $1
			  AND EXISTS (SELECT 1 FROM simulations WHERE id = $1 AND owner_id = $2)
		`, id, ownerID)
		if err != nil {
			return MapError(err)
		}

		result, err := q.ExecContext(ctx,
			`DELETE FROM simulations WHERE id = $1 AND owner_id = $2`, id, ownerID)
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(result, store.ErrSimulationNotFound)
	})
	if err != nil {
		if errors.Is(err, store.ErrSimulationNotFound) {
			log.Debug("simulation not found for delete",
				slog.String("simulation_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return err
		}
		log.Error("failed to delete simulation",
			slog.String("error", err.Error()),
			slog.String("simulation_id", id.String()))
		return err
	}

	log.Info("simulation deleted successfully",
		slog.String("simulation_id", id.String()),
		slog.String("owner_id", ownerID.String()))
	return nil
}
