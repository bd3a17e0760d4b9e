package internal

import (
	"fmt"

	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/postgres"
	"github.com/paperstack/paperstack/internal/validator"
)

type scriptEnv struct {
	cfg *config.Configuration
	log *logger.Logger
	db  *postgres.DB
}

func newScriptEnv() (*scriptEnv, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	validator.NewValidator()

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &scriptEnv{cfg: cfg, log: log, db: db}, nil
}
