package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/catalog"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// ProjectType distinguishes catalog projects from custom simulations.
type ProjectType string

// Project types
const (
	ProjectPredefined ProjectType = "predefined"
	ProjectCustom     ProjectType = "custom"
)

// Fallbacks applied to custom simulations that leave display fields empty.
const (
	customDescription   = "Custom AI-generated simulation"
	customDuration      = "Variable"
	customClientPersona = "AI Client"
	customClientMood    = "Neutral"
	customField         = domain.FieldFullstack
	customDifficulty    = domain.DifficultyMedium
)

// UserProject is a read-only view of a project the user is working on,
// either a catalog project with progress or a custom simulation.
type UserProject struct {
	ID            string
	Title         string
	Description   string
	Field         domain.Field
	FieldLabel    string
	Type          ProjectType
	Status        domain.ProgressStatus
	LastActivity  time.Time
	Difficulty    domain.Difficulty
	Level         int
	Duration      string
	Tools         []string
	ClientPersona string
	ClientMood    string
	SimulationID  *uuid.UUID
}

// ProjectCatalog looks up predefined projects and field labels.
type ProjectCatalog interface {
	Project(id string) (catalog.Project, bool)
	FieldLabel(field domain.Field) string
}

// ProjectService assembles the project overview of a user
type ProjectService interface {
	// ListProjects returns the user's started catalog projects and custom
	// simulations, most recent activity first.
	ListProjects(ctx context.Context, userID uuid.UUID) ([]UserProject, error)
}

// ProjectServiceImpl implements the ProjectService interface
type ProjectServiceImpl struct {
	progressStore   store.ProgressStore
	simulationStore store.SimulationStore
	catalog         ProjectCatalog
	logger          *slog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	progressStore store.ProgressStore,
	simulationStore store.SimulationStore,
	projectCatalog ProjectCatalog,
	logger *slog.Logger,
) ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectServiceImpl{
		progressStore:   progressStore,
		simulationStore: simulationStore,
		catalog:         projectCatalog,
		logger:          logger.With("component", "project_service"),
	}
}

// ListProjects returns the user's projects
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, userID uuid.UUID) ([]UserProject, error) {
	var (
		progress    []*domain.InternProgress
		simulations []*domain.Simulation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		progress, err = s.progressStore.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		simulations, err = s.simulationStore.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load projects", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]UserProject, 0, len(progress)+len(simulations))
	for _, row := range progress {
		p, ok := s.catalog.Project(row.ProjectID)
		if !ok {
			// Progress for projects removed from the catalog is kept but not shown.
			continue
		}
		projects = append(projects, s.predefinedProject(p, row))
	}
	for _, sim := range simulations {
		projects = append(projects, s.customProject(sim))
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastActivity.After(projects[j].LastActivity)
	})
	return projects, nil
}

func (s *ProjectServiceImpl) predefinedProject(p catalog.Project, row *domain.InternProgress) UserProject {
	status := domain.ProgressInProgress
	if row.Status == domain.ProgressCompleted {
		status = domain.ProgressCompleted
	}

	lastActivity := row.CreatedAt
	if row.LastActivityAt != nil {
		lastActivity = *row.LastActivityAt
	}

	return UserProject{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Field:         p.Field,
		FieldLabel:    s.catalog.FieldLabel(p.Field),
		Type:          ProjectPredefined,
		Status:        status,
		LastActivity:  lastActivity,
		Difficulty:    p.Difficulty,
		Level:         p.Level,
		Duration:      p.Duration,
		Tools:         p.Tools,
		ClientPersona: p.ClientPersona,
		ClientMood:    p.ClientMood,
	}
}

func (s *ProjectServiceImpl) customProject(sim *domain.Simulation) UserProject {
	field := customField
	for _, candidate := range []*string{sim.Domain, sim.Field} {
		if candidate != nil && domain.Field(*candidate).IsValid() {
			field = domain.Field(*candidate)
			break
		}
	}

	difficulty := customDifficulty
	if sim.Difficulty != nil {
		difficulty = *sim.Difficulty
	}

	lastActivity := sim.UpdatedAt
	if lastActivity.IsZero() {
		lastActivity = sim.CreatedAt
	}

	id := sim.ID
	return UserProject{
		ID:            "sim-" + sim.ID.String(),
		Title:         sim.Title,
		Description:   orDefault(sim.Description, customDescription),
		Field:         field,
		FieldLabel:    s.catalog.FieldLabel(field),
		Type:          ProjectCustom,
		Status:        domain.ProgressInProgress,
		LastActivity:  lastActivity,
		Difficulty:    difficulty,
		Level:         sim.Level,
		Duration:      orDefault(sim.Duration, customDuration),
		Tools:         sim.TechStack,
		ClientPersona: orDefault(sim.ClientPersona, customClientPersona),
		ClientMood:    orDefault(sim.ClientMood, customClientMood),
		SimulationID:  &id,
	}
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
