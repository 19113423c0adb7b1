package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/platform/logger"
	"github.com/internsim/practice-api/internal/store"
)

const personaColumns = `id, simulation_id, name, role, personality, system_prompt,
	initial_message, position, created_at`

// personaInsertColumns is the number of placeholders per persona row.
const personaInsertColumns = 9

// PostgresPersonaStore implements the store.PersonaStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPersonaStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPersonaStore creates a new PostgreSQL implementation of the PersonaStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPersonaStore(db store.DBTX, logger *slog.Logger) *PostgresPersonaStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPersonaStore{
		db:     db,
		logger: logger.With(slog.String("component", "persona_store")),
	}
}

// Ensure PostgresPersonaStore implements store.PersonaStore interface
var _ store.PersonaStore = (*PostgresPersonaStore)(nil)

// WithTx implements store.PersonaStore.WithTx
func (s *PostgresPersonaStore) WithTx(tx *sql.Tx) store.PersonaStore {
	return &PostgresPersonaStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanPersona(row rowScanner) (*domain.Persona, error) {
	var (
		p                                         domain.Persona
		personality, systemPrompt, initialMessage sql.NullString
	)

	err := row.Scan(
		&p.ID, &p.SimulationID, &p.Name, &p.Role, &personality, &systemPrompt,
		&initialMessage, &p.Position, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Personality = stringPtr(personality)
	p.SystemPrompt = stringPtr(systemPrompt)
	p.InitialMessage = stringPtr(initialMessage)
	return &p, nil
}

// ListBySimulation implements store.PersonaStore.ListBySimulation
func (s *PostgresPersonaStore) ListBySimulation(
	ctx context.Context,
	ownerID, simulationID uuid.UUID,
) ([]*domain.Persona, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT p.id, p.simulation_id, p.name, p.role, p.personality, p.system_prompt,
			p.initial_message, p.position, p.created_at
		FROM personas p
		JOIN simulations s ON s.id = p.simulation_id
		WHERE p.simulation_id = $1 AND s.owner_id = $2
		ORDER BY p.position, p.id
	`

	rows, err := s.db.QueryContext(ctx, query, simulationID, ownerID)
	if err != nil {
		log.Error("failed to list personas",
			slog.String("error", err.Error()),
			slog.String("simulation_id", simulationID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	personas := make([]*domain.Persona, 0)
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			log.Error("failed to scan persona row", slog.String("error", err.Error()))
			return nil, err
		}
		personas = append(personas, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating persona rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return personas, nil
}

// CreateMany implements store.PersonaStore.CreateMany
// The batch is written by a single INSERT ... SELECT guarded by the
// ownership check, so either every persona is stored or none is.
func (s *PostgresPersonaStore) CreateMany(
	ctx context.Context,
	ownerID, simulationID uuid.UUID,
	params []domain.CreatePersonaParams,
) ([]*domain.Persona, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	personas, err := domain.NewPersonaBatch(simulationID, params)
	if err != nil {
		log.Warn("persona validation failed during batch create",
			slog.String("error", err.Error()),
			slog.String("simulation_id", simulationID.String()))
		return nil, store.NewStoreError("persona", "create", "validation failed", err)
	}

	if len(personas) == 0 {
		return personas, nil
	}

	values := make([]string, 0, len(personas))
	args := make([]any, 0, len(personas)*personaInsertColumns+2)
	for _, p := range personas {
		n := len(args)
		values = append(values, fmt.Sprintf(
			"($%d::uuid, $%d::uuid, $%d::text, $%d::text, $%d::text, $%d::text, $%d::text, $%d::integer, $%d::timestamptz)",
			n+1, n+2, n+3, n+4, n+5, n+6, n+7, n+8, n+9,
		))
		args = append(args,
			p.ID, p.SimulationID, p.Name, p.Role, p.Personality,
			p.SystemPrompt, p.InitialMessage, p.Position, p.CreatedAt,
		)
	}
	args = append(args, simulationID, ownerID)

	query := fmt.Sprintf(`
		INSERT INTO personas (%s)
		SELECT v.* FROM (VALUES %s) AS v(%s)
		WHERE EXISTS (SELECT 1 FROM simulations WHERE id = $%d AND owner_id = $%d)
		RETURNING id
	`, personaColumns, strings.Join(values, ", "), personaColumns, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to create personas",
			slog.String("error", err.Error()),
			slog.String("simulation_id", simulationID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	inserted := 0
	for rows.Next() {
		inserted++
	}
	if err := rows.Err(); err != nil {
		if isConstraintViolation(err, constraintPersonaSimulation) {
			log.Debug("duplicate persona name in batch",
				slog.String("simulation_id", simulationID.String()))
		} else {
			log.Error("failed to create personas",
				slog.String("error", err.Error()),
				slog.String("simulation_id", simulationID.String()))
		}
		return nil, MapError(err)
	}

	if inserted == 0 {
		log.Debug("simulation not found for persona batch",
			slog.String("simulation_id", simulationID.String()),
			slog.String("owner_id", ownerID.String()))
		return nil, store.ErrSimulationNotFound
	}

	log.Info("personas created successfully",
		slog.String("simulation_id", simulationID.String()),
		slog.Int("count", inserted))
	return personas, nil
}
