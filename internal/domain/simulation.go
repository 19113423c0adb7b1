package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Difficulty of a simulation.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is a known difficulty.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Common validation errors for Simulation
var (
	ErrEmptySimulationID      = errors.New("simulation ID cannot be empty")
	ErrEmptySimulationOwnerID = errors.New("simulation owner ID cannot be empty")
	ErrEmptySimulationTitle   = errors.New("simulation title cannot be empty")
	ErrInvalidDifficulty      = errors.New("invalid simulation difficulty")
	ErrInvalidSimulationLevel = errors.New("simulation level must be at least 1")
)

// Milestone is one step of a simulated project.
type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// QuizQuestion is a multiple-choice check attached to a simulation.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Resource is a learning link attached to a simulation.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// Simulation is a user-initiated practice session. It is created once and
// only ever deleted afterwards; there is no update path.
type Simulation struct {
	ID                        uuid.UUID      `json:"id"`
	OwnerID                   uuid.UUID      `json:"owner_id"`
	Title                     string         `json:"title"`
	Context                   *string        `json:"context"`
	Domain                    *string        `json:"domain"`
	Difficulty                *Difficulty    `json:"difficulty"`
	Level                     int            `json:"level"`
	EstimatedDuration         *string        `json:"estimated_duration"`
	TechStack                 []string       `json:"tech_stack"`
	Overview                  *string        `json:"overview"`
	LearningObjectives        []string       `json:"learning_objectives"`
	FunctionalRequirements    []string       `json:"functional_requirements"`
	NonFunctionalRequirements []string       `json:"non_functional_requirements"`
	Milestones                []Milestone    `json:"milestones"`
	Resources                 []Resource     `json:"resources"`
	Quiz                      []QuizQuestion `json:"quiz"`
	Field                     *string        `json:"field"`
	Duration                  *string        `json:"duration"`
	Tools                     []string       `json:"tools"`
	ClientPersona             *string        `json:"client_persona"`
	ClientMood                *string        `json:"client_mood"`
	Description               *string        `json:"description"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`
}

// CreateSimulationParams carries everything a caller may choose when
// creating a simulation. Identity and timestamps are assigned by the system.
type CreateSimulationParams struct {
	OwnerID                   uuid.UUID
	Title                     string
	Context                   *string
	Domain                    *string
	Difficulty                *Difficulty
	Level                     int
	EstimatedDuration         *string
	TechStack                 []string
	Overview                  *string
	LearningObjectives        []string
	FunctionalRequirements    []string
	NonFunctionalRequirements []string
	Milestones                []Milestone
	Resources                 []Resource
	Quiz                      []QuizQuestion
	Field                     *string
	Duration                  *string
	Tools                     []string
	ClientPersona             *string
	ClientMood                *string
	Description               *string
}

// NewSimulation builds a Simulation from params, filling defaults and
// assigning the ID and timestamps. Returns an error if validation fails.
func NewSimulation(params CreateSimulationParams) (*Simulation, error) {
	now := time.Now().UTC()
	level := params.Level
	if level == 0 {
		level = 1
	}

	sim := &Simulation{
		ID:                        uuid.New(),
		OwnerID:                   params.OwnerID,
		Title:                     params.Title,
		Context:                   params.Context,
		Domain:                    params.Domain,
		Difficulty:                params.Difficulty,
		Level:                     level,
		EstimatedDuration:         params.EstimatedDuration,
		TechStack:                 nonNil(params.TechStack),
		Overview:                  params.Overview,
		LearningObjectives:        nonNil(params.LearningObjectives),
		FunctionalRequirements:    nonNil(params.FunctionalRequirements),
		NonFunctionalRequirements: nonNil(params.NonFunctionalRequirements),
		Milestones:                nonNil(params.Milestones),
		Resources:                 nonNil(params.Resources),
		Quiz:                      nonNil(params.Quiz),
		Field:                     params.Field,
		Duration:                  params.Duration,
		Tools:                     nonNil(params.Tools),
		ClientPersona:             params.ClientPersona,
		ClientMood:                params.ClientMood,
		Description:               params.Description,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	if err := sim.Validate(); err != nil {
		return nil, err
	}

	return sim, nil
}

// Validate checks if the Simulation has valid data.
func (s *Simulation) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySimulationID
	}

	if s.OwnerID == uuid.Nil {
		return ErrEmptySimulationOwnerID
	}

	if s.Title == "" {
		return ErrEmptySimulationTitle
	}

	if s.Difficulty != nil && !s.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}

	if s.Level < 1 {
		return ErrInvalidSimulationLevel
	}

	return nil
}

// IsOwnedBy reports whether userID owns the simulation.
func (s *Simulation) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
