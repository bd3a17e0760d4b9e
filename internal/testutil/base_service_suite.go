package testutil

import (
	"context"
	"time"

	"github.com/paperstack/paperstack/internal/auth"
	"github.com/paperstack/paperstack/internal/cache"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/domain/asset"
	"github.com/paperstack/paperstack/internal/domain/document"
	"github.com/paperstack/paperstack/internal/domain/user"
	"github.com/paperstack/paperstack/internal/email"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/postgres"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/paperstack/paperstack/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	DocumentRepo document.Repository
	UserRepo     user.Repository
	AssetRepo    asset.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	db           *MockPostgresClient
	cache        cache.Cache
	authProvider auth.Provider
	emailSender  *InMemoryEmailSender
	pdfGenerator *StubPdfGenerator
	logger       *logger.Logger
	config       *config.Configuration
	now          time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Auth.Secret = "test-secret-for-unit-tests-only"
	cfg.Email.Enabled = true
	cfg.Email.AppURL = "http://localhost:3000"

	s.config = cfg
	s.logger = NewNoopLogger()
	s.authProvider = auth.NewProvider(cfg)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	documents := NewInMemoryDocumentStore()
	users := NewInMemoryUserStore()
	assets := NewInMemoryAssetStore()

	s.stores = Stores{
		DocumentRepo: documents,
		UserRepo:     users,
		AssetRepo:    assets,
	}

	s.db = NewMockPostgresClient(s.logger, documents, users, assets)
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.emailSender = NewInMemoryEmailSender()
	s.pdfGenerator = NewStubPdfGenerator()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.DocumentRepo.(*InMemoryDocumentStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.AssetRepo.(*InMemoryAssetStore).Clear()
	s.cache.Flush(context.Background())
	s.emailSender.Clear()
	s.pdfGenerator.Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetAuthProvider() auth.Provider {
	return s.authProvider
}

// GetEmailSender returns the recording email transport
func (s *BaseServiceTestSuite) GetEmailSender() *InMemoryEmailSender {
	return s.emailSender
}

// GetEmail returns an email service backed by the recording transport
func (s *BaseServiceTestSuite) GetEmail() *email.Email {
	return email.NewEmail(s.emailSender, s.logger)
}

// GetPDFGenerator returns the test PDF generator
func (s *BaseServiceTestSuite) GetPDFGenerator() *StubPdfGenerator {
	return s.pdfGenerator
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}

// NewNoopLogger returns a logger that discards output
func NewNoopLogger() *logger.Logger {
	return logger.NewNoopLogger()
}
