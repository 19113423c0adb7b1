package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Persona
var (
	ErrEmptyPersonaSimulationID = errors.New("persona simulation ID cannot be empty")
	ErrEmptyPersonaName         = errors.New("persona name cannot be empty")
	ErrEmptyPersonaRole         = errors.New("persona role cannot be empty")
)

// Persona is an AI character definition scoped to one simulation. Only its
// metadata is tracked here; conversations are generated elsewhere.
type Persona struct {
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

// CreatePersonaParams describes one persona of a creation batch.
type CreatePersonaParams struct {
	Name           string
	Role           string
	Personality    *string
	SystemPrompt   *string
	InitialMessage *string
}

// Validate checks the caller supplied fields.
func (p CreatePersonaParams) Validate() error {
	if p.Name == "" {
		return ErrEmptyPersonaName
	}
	if p.Role == "" {
		return ErrEmptyPersonaRole
	}
	return nil
}

// NewPersonaBatch builds the personas of one simulation in batch order.
// All personas share one creation timestamp. Returns the first validation
// error encountered, in which case no persona is returned.
func NewPersonaBatch(simulationID uuid.UUID, params []CreatePersonaParams) ([]*Persona, error) {
	if simulationID == uuid.Nil {
		return nil, ErrEmptyPersonaSimulationID
	}

	now := time.Now().UTC()
	personas := make([]*Persona, 0, len(params))
	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		personas = append(personas, &Persona{
			ID:             uuid.New(),
			SimulationID:   simulationID,
			Name:           p.Name,
			Role:           p.Role,
			Personality:    p.Personality,
			SystemPrompt:   p.SystemPrompt,
			InitialMessage: p.InitialMessage,
			Position:       i,
			CreatedAt:      now,
		})
	}

	return personas, nil
}
