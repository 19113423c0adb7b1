package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/internsim/practice-api/internal/api/middleware"
	"github.com/internsim/practice-api/internal/api/shared"
)

// Pinger reports whether a dependency such as the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Users        *UserHandler
	Credits      *CreditsHandler
	Progress     *ProgressHandler
	Simulations  *SimulationHandler
	Achievements *AchievementHandler
}

// NewRouter builds the chi router with all routes and middleware. db may be
// nil, in which case /health does not check the database.
func NewRouter(h Handlers, db Pinger, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTraceMiddleware(logger))
	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", h.Users.Register)
		r.Post("/login", h.Users.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity)

			r.Get("/me", h.Users.GetMe)
			r.Patch("/me", h.Users.UpdateMe)
			r.Post("/me/onboarding", h.Users.CompleteOnboarding)

			r.Get("/me/credits", h.Credits.GetCredits)
			r.Post("/me/credits", h.Credits.AddCredits)
			r.Post("/me/credits/deduct", h.Credits.DeductCredits)
			r.Get("/me/level", h.Credits.GetLevel)
			r.Post("/me/xp", h.Credits.AwardXP)
			r.Get("/me/achievements", h.Achievements.ListAchievements)
			r.Post("/me/achievements/check", h.Achievements.CheckAchievements)

			r.Get("/progress", h.Progress.ListProgress)
			r.Get("/progress/{projectID}", h.Progress.GetProgress)
			r.Put("/progress/{projectID}", h.Progress.UpdateProgress)
			r.Get("/projects", h.Progress.ListProjects)

			r.Get("/simulations", h.Simulations.ListSimulations)
			r.Post("/simulations", h.Simulations.CreateSimulation)
			r.Get("/simulations/{id}", h.Simulations.GetSimulation)
			r.Delete("/simulations/{id}", h.Simulations.DeleteSimulation)
		})
	})

	r.Get("/health", healthHandler(db))

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
				return
			}
		}
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
