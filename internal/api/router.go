package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/paperstack/paperstack/internal/api/v1"
	"github.com/paperstack/paperstack/internal/auth"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Auth     *v1.AuthHandler
	Document *v1.DocumentHandler
	User     *v1.UserHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, authProvider auth.Provider) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.SentryScopeMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Router := router.Group("/v1")
	optionalAuth := middleware.OptionalAuthenticateMiddleware(authProvider, logger)
	requiredAuth := middleware.AuthenticateMiddleware(authProvider, logger)
	limiter := middleware.RateLimitMiddleware(cfg)

	authRoutes := v1Router.Group("/auth")
	{
		authRoutes.POST("", handlers.Auth.Authenticate)
		authRoutes.GET("/verify/:token", handlers.Auth.VerifyEmail)
		authRoutes.POST("/forgot-password", limiter, handlers.Auth.ForgotPassword)
		authRoutes.POST("/reset-password", handlers.Auth.ResetPassword)
	}

	documents := v1Router.Group("/documents")
	{
		documents.GET("/user", requiredAuth, handlers.Document.ListUserDocuments)
		documents.GET("/guest", handlers.Document.ListGuestDocuments)
		documents.POST("/sync-local", requiredAuth, handlers.Document.SyncLocalDocuments)

	}

	// guests and signed-in users share these, ownership is checked by the services
	shared := documents.Group("", optionalAuth)
	{
		shared.POST("", handlers.Document.CreateDocument)
		shared.POST("/convert", handlers.Document.ConvertDocument)
		shared.GET("/:id", handlers.Document.GetDocument)
		shared.PUT("/:id", handlers.Document.UpdateDocument)
		shared.DELETE("/:id", handlers.Document.DeleteDocument)
		shared.GET("/:id/pdf", limiter, handlers.Document.GetDocumentPdf)
		shared.POST("/:id/email", limiter, handlers.Document.EmailDocument)
	}

	users := v1Router.Group("/users", requiredAuth)
	{
		users.GET("/profile", handlers.User.GetProfile)
		users.PUT("/business-info", handlers.User.UpdateBusinessInfo)
		users.PUT("/document-customization", handlers.User.UpdateDocumentCustomization)
	}

	return router
}
