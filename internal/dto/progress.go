package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/service"
)

// ProgressDTO is the public view of a progress record.
type ProgressDTO struct {
	ID                 uuid.UUID  `json:"id"`
	ProjectID          string     `json:"project_id"`
	Status             string     `json:"status"`
	LastActivityAt     *time.Time `json:"last_activity_at"`
	LastReviewAt       *time.Time `json:"last_review_at"`
	LastReviewApproved *bool      `json:"last_review_approved"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewProgressDTO maps a progress record.
func NewProgressDTO(p *domain.InternProgress) ProgressDTO {
	return ProgressDTO{
		ID:                 p.ID,
		ProjectID:          p.ProjectID,
		Status:             string(p.Status),
		LastActivityAt:     p.LastActivityAt,
		LastReviewAt:       p.LastReviewAt,
		LastReviewApproved: p.LastReviewApproved,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// NewProgressDTOs maps a list of progress records.
func NewProgressDTOs(records []*domain.InternProgress) []ProgressDTO {
	out := make([]ProgressDTO, 0, len(records))
	for _, p := range records {
		out = append(out, NewProgressDTO(p))
	}
	return out
}

// UpdateProgressDTO is the payload for moving a project forward. The project
// comes from the path and the activity time is stamped by the server.
type UpdateProgressDTO struct {
	Status             string                      `json:"status"               validate:"required,oneof=not_started in_progress completed"`
	LastReviewAt       domain.Optional[*time.Time] `json:"last_review_at"`
	LastReviewApproved domain.Optional[*bool]      `json:"last_review_approved"`
}

// ToInput converts the payload to service input for projectID.
func (d UpdateProgressDTO) ToInput(projectID string) service.UpdateProgressInput {
	return service.UpdateProgressInput{
		ProjectID:          projectID,
		Status:             domain.ProgressStatus(d.Status),
		LastReviewAt:       d.LastReviewAt,
		LastReviewApproved: d.LastReviewApproved,
	}
}

// UserProjectDTO is a read-only project card combining catalog metadata,
// progress and custom simulations.
type UserProjectDTO struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Field         string     `json:"field"`
	FieldLabel    string     `json:"field_label"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	LastActivity  time.Time  `json:"last_activity"`
	Difficulty    string     `json:"difficulty"`
	Level         int        `json:"level"`
	Duration      string     `json:"duration"`
	Tools         []string   `json:"tools"`
	ClientPersona string     `json:"client_persona"`
	ClientMood    string     `json:"client_mood"`
	SimulationID  *uuid.UUID `json:"simulation_id,omitempty"`
}

// NewUserProjectDTOs maps the project overview.
func NewUserProjectDTOs(projects []service.UserProject) []UserProjectDTO {
	out := make([]UserProjectDTO, 0, len(projects))
	for _, p := range projects {
		tools := p.Tools
		if tools == nil {
			tools = []string{}
		}
		out = append(out, UserProjectDTO{
			ID:            p.ID,
			Title:         p.Title,
			Description:   p.Description,
			Field:         string(p.Field),
			FieldLabel:    p.FieldLabel,
			Type:          string(p.Type),
			Status:        string(p.Status),
			LastActivity:  p.LastActivity,
			Difficulty:    string(p.Difficulty),
			Level:         p.Level,
			Duration:      p.Duration,
			Tools:         tools,
			ClientPersona: p.ClientPersona,
			ClientMood:    p.ClientMood,
			SimulationID:  p.SimulationID,
		})
	}
	return out
}
