package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/service"
)

// SimulationDTO is the public view of a simulation.
type SimulationDTO struct {
	ID                        uuid.UUID             `json:"id"`
	OwnerID                   uuid.UUID             `json:"owner_id"`
	Title                     string                `json:"title"`
	Context                   *string               `json:"context"`
	Domain                    *string               `json:"domain"`
	Difficulty                *string               `json:"difficulty"`
	Level                     int                   `json:"level"`
	EstimatedDuration         *string               `json:"estimated_duration"`
	TechStack                 []string              `json:"tech_stack"`
	Overview                  *string               `json:"overview"`
	LearningObjectives        []string              `json:"learning_objectives"`
	FunctionalRequirements    []string              `json:"functional_requirements"`
	NonFunctionalRequirements []string              `json:"non_functional_requirements"`
	Milestones                []domain.Milestone    `json:"milestones"`
	Resources                 []domain.Resource     `json:"resources"`
	Quiz                      []domain.QuizQuestion `json:"quiz"`
	Field                     *string               `json:"field"`
	Duration                  *string               `json:"duration"`
	Tools                     []string              `json:"tools"`
	ClientPersona             *string               `json:"client_persona"`
	ClientMood                *string               `json:"client_mood"`
	Description               *string               `json:"description"`
	Personas                  []PersonaDTO          `json:"personas,omitempty"`
	CreatedAt                 time.Time             `json:"created_at"`
	UpdatedAt                 time.Time             `json:"updated_at"`
}

// NewSimulationDTO maps a domain simulation to its public view.
func NewSimulationDTO(s *domain.Simulation) SimulationDTO {
	var difficulty *string
	if s.Difficulty != nil {
		d := string(*s.Difficulty)
		difficulty = &d
	}
	return SimulationDTO{
		ID:                        s.ID,
		OwnerID:                   s.OwnerID,
		Title:                     s.Title,
		Context:                   s.Context,
		Domain:                    s.Domain,
		Difficulty:                difficulty,
		Level:                     s.Level,
		EstimatedDuration:         s.EstimatedDuration,
		TechStack:                 s.TechStack,
		Overview:                  s.Overview,
		LearningObjectives:        s.LearningObjectives,
		FunctionalRequirements:    s.FunctionalRequirements,
		NonFunctionalRequirements: s.NonFunctionalRequirements,
		Milestones:                s.Milestones,
		Resources:                 s.Resources,
		Quiz:                      s.Quiz,
		Field:                     s.Field,
		Duration:                  s.Duration,
		Tools:                     s.Tools,
		ClientPersona:             s.ClientPersona,
		ClientMood:                s.ClientMood,
		Description:               s.Description,
		CreatedAt:                 s.CreatedAt,
		UpdatedAt:                 s.UpdatedAt,
	}
}

// NewSimulationDetailsDTO maps a simulation with its personas.
func NewSimulationDetailsDTO(d *service.SimulationDetails) SimulationDTO {
	out := NewSimulationDTO(d.Simulation)
	out.Personas = NewPersonaDTOs(d.Personas)
	return out
}

// NewSimulationDTOs maps a list of simulations.
func NewSimulationDTOs(sims []*domain.Simulation) []SimulationDTO {
	out := make([]SimulationDTO, 0, len(sims))
	for _, s := range sims {
		out = append(out, NewSimulationDTO(s))
	}
	return out
}

// CreateSimulationDTO is the payload for a new custom simulation together
// with its persona batch.
type CreateSimulationDTO struct {
	Title                     string                `json:"title"                       validate:"required,max=200"`
	Context                   *string               `json:"context"`
	Domain                    *string               `json:"domain"                      validate:"omitempty,max=50"`
	Difficulty                *string               `json:"difficulty"                  validate:"omitempty,oneof=easy medium hard"`
	Level                     int                   `json:"level"                       validate:"gte=0,lte=10"`
	EstimatedDuration         *string               `json:"estimated_duration"`
	TechStack                 []string              `json:"tech_stack"                  validate:"omitempty,dive,min=1"`
	Overview                  *string               `json:"overview"`
	LearningObjectives        []string              `json:"learning_objectives"`
	FunctionalRequirements    []string              `json:"functional_requirements"`
	NonFunctionalRequirements []string              `json:"non_functional_requirements"`
	Milestones                []domain.Milestone    `json:"milestones"`
	Resources                 []domain.Resource     `json:"resources"`
	Quiz                      []domain.QuizQuestion `json:"quiz"`
	Field                     *string               `json:"field"                       validate:"omitempty,max=50"`
	Duration                  *string               `json:"duration"`
	Tools                     []string              `json:"tools"`
	ClientPersona             *string               `json:"client_persona"`
	ClientMood                *string               `json:"client_mood"`
	Description               *string               `json:"description"`
	Personas                  []CreatePersonaDTO    `json:"personas"                    validate:"omitempty,max=10,dive"`
}

// ToInput converts the payload to service input. The owner is assigned by
// the service from the caller identity.
func (d CreateSimulationDTO) ToInput() service.CreateSimulationInput {
	var difficulty *domain.Difficulty
	if d.Difficulty != nil {
		v := domain.Difficulty(*d.Difficulty)
		difficulty = &v
	}

	personas := make([]domain.CreatePersonaParams, 0, len(d.Personas))
	for _, p := range d.Personas {
		personas = append(personas, p.ToParams())
	}

	return service.CreateSimulationInput{
		Simulation: domain.CreateSimulationParams{
			Title:                     d.Title,
			Context:                   d.Context,
			Domain:                    d.Domain,
			Difficulty:                difficulty,
			Level:                     d.Level,
			EstimatedDuration:         d.EstimatedDuration,
			TechStack:                 d.TechStack,
			Overview:                  d.Overview,
			LearningObjectives:        d.LearningObjectives,
			FunctionalRequirements:    d.FunctionalRequirements,
			NonFunctionalRequirements: d.NonFunctionalRequirements,
			Milestones:                d.Milestones,
			Resources:                 d.Resources,
			Quiz:                      d.Quiz,
			Field:                     d.Field,
			Duration:                  d.Duration,
			Tools:                     d.Tools,
			ClientPersona:             d.ClientPersona,
			ClientMood:                d.ClientMood,
			Description:               d.Description,
		},
		Personas: personas,
	}
}

// PersonaDTO is the public view of a persona.
type PersonaDTO struct {
	ID             uuid.UUID `json:"id"`
	SimulationID   uuid.UUID `json:"simulation_id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Personality    *string   `json:"personality"`
	SystemPrompt   *string   `json:"system_prompt"`
	InitialMessage *string   `json:"initial_message"`
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewPersonaDTOs maps personas keeping their batch order.
func NewPersonaDTOs(personas []*domain.Persona) []PersonaDTO {
	out := make([]PersonaDTO, 0, len(personas))
	for _, p := range personas {
		out = append(out, PersonaDTO{
			ID:             p.ID,
			SimulationID:   p.SimulationID,
			Name:           p.Name,
			Role:           p.Role,
			Personality:    p.Personality,
			SystemPrompt:   p.SystemPrompt,
			InitialMessage: p.InitialMessage,
			Position:       p.Position,
			CreatedAt:      p.CreatedAt,
		})
	}
	return out
}

// CreatePersonaDTO describes one persona of a creation batch.
type CreatePersonaDTO struct {
	Name           string  `json:"name"            validate:"required,max=100"`
	Role           string  `json:"role"            validate:"required,max=100"`
	Personality    *string `json:"personality"`
	SystemPrompt   *string `json:"system_prompt"`
	InitialMessage *string `json:"initial_message"`
}

// ToParams converts the payload to domain input.
func (d CreatePersonaDTO) ToParams() domain.CreatePersonaParams {
	return domain.CreatePersonaParams{
		Name:           d.Name,
		Role:           d.Role,
		Personality:    d.Personality,
		SystemPrompt:   d.SystemPrompt,
		InitialMessage: d.InitialMessage,
	}
}
