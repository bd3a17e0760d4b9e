package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/paperstack/paperstack/internal/api"
	v1 "github.com/paperstack/paperstack/internal/api/v1"
	"github.com/paperstack/paperstack/internal/auth"
	"github.com/paperstack/paperstack/internal/cache"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/email"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/pdf"
	"github.com/paperstack/paperstack/internal/postgres"
	"github.com/paperstack/paperstack/internal/repository"
	"github.com/paperstack/paperstack/internal/s3"
	"github.com/paperstack/paperstack/internal/sentry"
	"github.com/paperstack/paperstack/internal/service"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/paperstack/paperstack/internal/typst"
	"github.com/paperstack/paperstack/internal/validator"
	"go.uber.org/fx"
)

// @title Paperstack API
// @version 1.0
// @description Quotations, invoices and receipts with pdf rendering and offline sync
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the token in the format **Bearer &lt;token&gt;**

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,
			provideDBClient,

			// Auth
			auth.NewProvider,

			// Email
			email.NewEmailClient,
			email.NewEmail,

			// PDF
			typst.NewCompilerFromConfig,
			pdf.NewGenerator,

			// Object storage
			s3.NewService,

			// Repositories
			repository.NewDocumentRepository,
			repository.NewUserRepository,
			repository.NewAssetRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewAuthService,
			service.NewUserService,
			service.NewDocumentService,
			service.NewConversionService,
			service.NewPdfService,
			service.NewEmailService,
			service.NewSyncService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			registerDBHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideDBClient(db *postgres.DB, sentryService *sentry.Service, logger *logger.Logger) postgres.IClient {
	client := postgres.NewClient(db)
	if !sentryService.Enabled() {
		return client
	}
	return postgres.NewSentryClient(client, sentryService, logger)
}

func provideHandlers(
	logger *logger.Logger,
	authService service.AuthService,
	userService service.UserService,
	documentService service.DocumentService,
	conversionService service.ConversionService,
	pdfService service.PdfService,
	emailService service.EmailService,
	syncService service.SyncService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(logger),
		Auth:     v1.NewAuthHandler(authService, logger),
		User:     v1.NewUserHandler(userService),
		Document: v1.NewDocumentHandler(documentService, conversionService, pdfService, emailService, syncService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, authProvider auth.Provider) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, authProvider)
}

func registerDBHooks(lc fx.Lifecycle, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing database connections")
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(r)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startAWSLambdaAPI(r *gin.Engine) {
	ginLambda := ginadapter.New(r)
	lambda.Start(ginLambda.ProxyWithContext)
}
