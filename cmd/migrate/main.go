package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/postgres"
)

func main() {
	// Parse command line flags
	dryRun := flag.Bool("dry-run", false, "List pending migrations without applying them")
	down := flag.Int("down", 0, "Revert this many migrations instead of applying")
	showVersion := flag.Bool("version", false, "Print the applied schema version and exit")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host, "database", cfg.Postgres.DBName)

	migrator, err := postgres.NewMigrator(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to prepare migrations", "error", err)
	}
	defer migrator.Close()

	switch {
	case *showVersion:
		version, dirty, err := migrator.Version()
		if err != nil {
			logger.Fatalw("Failed to read schema version", "error", err)
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return
	case *dryRun:
		logger.Info("Dry run mode - listing pending migrations without applying them")
		pending, err := migrator.Pending()
		if err != nil {
			logger.Fatalw("Failed to list pending migrations", "error", err)
		}
		if len(pending) == 0 {
			fmt.Println("No pending migrations")
		}
		for _, name := range pending {
			fmt.Fprintln(os.Stdout, name)
		}
		return
	case *down > 0:
		logger.Infow("Reverting migrations", "steps", *down)
		if err := migrator.Down(*down); err != nil {
			logger.Fatalw("Failed to revert migrations", "error", err)
		}
	default:
		logger.Info("Running database migrations...")
		if err := migrator.Up(); err != nil {
			logger.Fatalw("Failed to apply migrations", "error", err)
		}
	}

	fmt.Println("Migration process completed")
}
