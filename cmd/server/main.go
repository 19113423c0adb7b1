// Package main implements the entry point for the practice API server,
// which tracks users' onboarding, credits, XP, project progress and
// custom practice simulations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/internsim/practice-api/internal/config"
	"github.com/internsim/practice-api/internal/platform/logger"
	"github.com/internsim/practice-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		log.Fatalf("practice-api: %v", err)
	}
}

// run loads configuration, prepares the database and either executes a
// single migration command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"catalog_override", cfg.Catalog.Path != "")

	db, err := setupAppDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDB(db, l)
		return postgres.Migrate(ctx, db, migrateCmd, l)
	}

	if err := postgres.Migrate(ctx, db, "up", l); err != nil {
		closeDB(db, l)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		closeDB(db, l)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
