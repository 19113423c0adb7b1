package service_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser(id uuid.UUID) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           id,
		Email:        "intern@example.com",
		Interests:    []string{},
		CurrentLevel: domain.DefaultLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
