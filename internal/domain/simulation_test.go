package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewSimulation(t *testing.T) {
	t.Parallel() // Enable parallel execution

	ownerID := uuid.New()
	sim, err := NewSimulation(CreateSimulationParams{
		OwnerID: ownerID,
		Title:   "Build a payments API",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if sim.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if !sim.IsOwnedBy(ownerID) {
		t.Error("Expected simulation to be owned by the creating user")
	}

	if sim.IsOwnedBy(uuid.New()) {
		t.Error("Expected simulation not to be owned by another user")
	}

	if sim.Level != 1 {
		t.Errorf("Expected default level 1, got %d", sim.Level)
	}

	if sim.TechStack == nil || sim.Milestones == nil || sim.Quiz == nil || sim.Tools == nil {
		t.Error("Expected list fields to default to empty slices")
	}

	if sim.CreatedAt.IsZero() || !sim.CreatedAt.Equal(sim.UpdatedAt) {
		t.Error("Expected matching non-zero timestamps")
	}

	_, err = NewSimulation(CreateSimulationParams{Title: "No owner"})
	if err != ErrEmptySimulationOwnerID {
		t.Errorf("Expected error %v, got %v", ErrEmptySimulationOwnerID, err)
	}

	_, err = NewSimulation(CreateSimulationParams{OwnerID: ownerID})
	if err != ErrEmptySimulationTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptySimulationTitle, err)
	}

	bad := Difficulty("brutal")
	_, err = NewSimulation(CreateSimulationParams{OwnerID: ownerID, Title: "x", Difficulty: &bad})
	if err != ErrInvalidDifficulty {
		t.Errorf("Expected error %v, got %v", ErrInvalidDifficulty, err)
	}

	_, err = NewSimulation(CreateSimulationParams{OwnerID: ownerID, Title: "x", Level: -1})
	if err != ErrInvalidSimulationLevel {
		t.Errorf("Expected error %v, got %v", ErrInvalidSimulationLevel, err)
	}
}

func TestNewPersonaBatch(t *testing.T) {
	t.Parallel() // Enable parallel execution

	simID := uuid.New()
	personas, err := NewPersonaBatch(simID, []CreatePersonaParams{
		{Name: "Dana", Role: "Product Owner"},
		{Name: "Lee", Role: "Tech Lead"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(personas) != 2 {
		t.Fatalf("Expected 2 personas, got %d", len(personas))
	}

	for i, p := range personas {
		if p.Position != i {
			t.Errorf("Expected position %d, got %d", i, p.Position)
		}
		if p.SimulationID != simID {
			t.Errorf("Expected simulation ID %s, got %s", simID, p.SimulationID)
		}
	}

	if !personas[0].CreatedAt.Equal(personas[1].CreatedAt) {
		t.Error("Expected the batch to share one creation timestamp")
	}

	_, err = NewPersonaBatch(uuid.Nil, nil)
	if err != ErrEmptyPersonaSimulationID {
		t.Errorf("Expected error %v, got %v", ErrEmptyPersonaSimulationID, err)
	}

	_, err = NewPersonaBatch(simID, []CreatePersonaParams{{Name: "Dana", Role: "PO"}, {Role: "QA"}})
	if err != ErrEmptyPersonaName {
		t.Errorf("Expected error %v, got %v", ErrEmptyPersonaName, err)
	}

	_, err = NewPersonaBatch(simID, []CreatePersonaParams{{Name: "Dana"}})
	if err != ErrEmptyPersonaRole {
		t.Errorf("Expected error %v, got %v", ErrEmptyPersonaRole, err)
	}
}
