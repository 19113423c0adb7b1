package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/internsim/practice-api/internal/api"
	"github.com/internsim/practice-api/internal/catalog"
	"github.com/internsim/practice-api/internal/config"
	"github.com/internsim/practice-api/internal/platform/postgres"
	"github.com/internsim/practice-api/internal/service"
	"github.com/internsim/practice-api/internal/store"
)

// application holds the shared dependencies of the server so that they can
// be wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore        store.UserStore
	simulationStore  store.SimulationStore
	personaStore     store.PersonaStore
	progressStore    store.ProgressStore
	achievementStore store.AchievementStore
	transactor       store.Transactor

	userService         service.UserService
	onboardingService   service.OnboardingService
	creditsService      service.CreditsService
	gamificationService service.GamificationService
	progressService     service.ProgressService
	projectService      service.ProjectService
	simulationService   service.SimulationService
	achievementService  service.AchievementService
}

// newApplication wires stores and services over an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	projects, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	app := &application{
		config:     cfg,
		logger:     logger,
		db:         db,
		transactor: store.NewSQLTransactor(db),
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.simulationStore = postgres.NewPostgresSimulationStore(db, logger)
	app.personaStore = postgres.NewPostgresPersonaStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.achievementStore = postgres.NewPostgresAchievementStore(db, logger)

	app.userService = service.NewUserService(
		app.userStore,
		service.NewBcryptVerifier(),
		cfg.Auth.BCryptCost,
		cfg.Credits.InitialBalance,
		logger,
	)
	app.onboardingService = service.NewOnboardingService(app.userStore, app.transactor, logger)
	app.creditsService = service.NewCreditsService(app.userStore, cfg.Credits.SessionCost, logger)
	app.gamificationService = service.NewGamificationService(app.userStore, logger)
	app.progressService = service.NewProgressService(app.progressStore, logger)
	app.projectService = service.NewProjectService(app.progressStore, app.simulationStore, projects, logger)
	app.simulationService = service.NewSimulationService(
		app.simulationStore,
		app.personaStore,
		app.userStore,
		app.transactor,
		cfg.Credits.SimulationCost,
		logger,
	)

	app.achievementService = service.NewAchievementService(
		app.userStore,
		app.simulationStore,
		app.progressStore,
		app.achievementStore,
		app.transactor,
		projects,
		logger,
	)

	logger.Info("application initialized",
		"catalog_projects", len(projects.Projects()),
		"catalog_achievements", len(projects.Achievements()))
	return app, nil
}

// loadCatalog returns the embedded catalog unless cfg names an override file.
func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	projects, err := catalog.Load(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load project catalog: %w", err)
	}
	return projects, nil
}

// setupRouter builds the HTTP handler tree.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.Handlers{
		Users:        api.NewUserHandler(app.userService, app.onboardingService),
		Credits:      api.NewCreditsHandler(app.creditsService, app.gamificationService),
		Progress:     api.NewProgressHandler(app.progressService, app.projectService),
		Simulations:  api.NewSimulationHandler(app.simulationService),
		Achievements: api.NewAchievementHandler(app.achievementService),
	}, app.db, app.logger)
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases
// resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
