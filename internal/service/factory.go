package service

import (
	"github.com/paperstack/paperstack/internal/auth"
	"github.com/paperstack/paperstack/internal/cache"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/domain/asset"
	"github.com/paperstack/paperstack/internal/domain/document"
	"github.com/paperstack/paperstack/internal/domain/user"
	"github.com/paperstack/paperstack/internal/email"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/pdf"
	"github.com/paperstack/paperstack/internal/postgres"
	"github.com/paperstack/paperstack/internal/s3"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	DB           postgres.IClient
	Cache        cache.Cache
	AuthProvider auth.Provider
	Email        *email.Email
	PDFGenerator pdf.Generator
	S3           s3.Service

	// Repositories
	DocumentRepo document.Repository
	UserRepo     user.Repository
	AssetRepo    asset.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	authProvider auth.Provider,
	emailClient *email.Email,
	pdfGenerator pdf.Generator,
	s3Service s3.Service,
	documentRepo document.Repository,
	userRepo user.Repository,
	assetRepo asset.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		Cache:        cache,
		AuthProvider: authProvider,
		Email:        emailClient,
		PDFGenerator: pdfGenerator,
		S3:           s3Service,
		DocumentRepo: documentRepo,
		UserRepo:     userRepo,
		AssetRepo:    assetRepo,
	}
}
