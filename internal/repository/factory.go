package repository

import (
	"github.com/paperstack/paperstack/internal/domain/asset"
	"github.com/paperstack/paperstack/internal/domain/document"
	"github.com/paperstack/paperstack/internal/domain/user"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/postgres"
	postgresRepo "github.com/paperstack/paperstack/internal/repository/postgres"
)

func NewDocumentRepository(db *postgres.DB, logger *logger.Logger) document.Repository {
	return postgresRepo.NewDocumentRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewAssetRepository(db *postgres.DB, logger *logger.Logger) asset.Repository {
	return postgresRepo.NewAssetRepository(db, logger)
}
