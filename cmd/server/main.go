// Package main implements the entry point for the Scry deck server, which
// stores users' flashcard decks and serves weighted review sessions over them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/platform/postgres"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (default: ./config.yaml if present)")
	migrateCmd := flag.String("migrate", "", "Run a database migration command (up|down|status|version) and exit")
	flag.Parse()

	if err := run(context.Background(), *configPath, *migrateCmd); err != nil {
		log.Printf("scry-decks: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and the database, then either
// executes a migration command or serves HTTP until a shutdown signal.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, migrateCmd, l)
	}

	// The schema must be current before any store touches it.
	if err := postgres.Migrate(ctx, db, postgres.MigrateUp, l); err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
