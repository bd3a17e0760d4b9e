package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig
	Auth       AuthConfig
	Documents  DocumentsConfig
	Local      LocalConfig
	PDF        PDFConfig
	Email      EmailConfig
	S3         S3Config
	Sentry     SentryConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
	Client     ClientConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

type AuthConfig struct {
	Secret          string        `mapstructure:"secret"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	ResetTokenTTL   time.Duration `mapstructure:"reset_token_ttl"`
	PasswordMinimum int           `mapstructure:"password_minimum"`
}

// DocumentsConfig holds the access policy for server-side documents
type DocumentsConfig struct {
	// GuestDocumentsArePublic lets any requester read and edit documents that
	// were created without an authenticated owner. When false, guest documents
	// are only reachable from the address that created them.
	GuestDocumentsArePublic bool `mapstructure:"guest_documents_are_public"`
}

// LocalConfig configures the offline document store used by the CLI
type LocalConfig struct {
	Path           string `mapstructure:"path"`
	QuotaBytes     int64  `mapstructure:"quota_bytes"`
	RetentionLimit int    `mapstructure:"retention_limit"`
	LogoMaxWidth   int    `mapstructure:"logo_max_width"`
	LogoQuality    int    `mapstructure:"logo_quality"`
}

type PDFConfig struct {
	TypstBinary string `mapstructure:"typst_binary"`
	FontDir     string `mapstructure:"font_dir"`
	WorkDir     string `mapstructure:"work_dir"`
}

type EmailConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
	ReplyTo     string `mapstructure:"reply_to"`
	MaxRetries  uint64 `mapstructure:"max_retries"`
	AppURL      string `mapstructure:"app_url"`
}

type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type CacheConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig bounds the expensive endpoints (pdf rendering and email)
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// ClientConfig is read by the CLI to reach the API server
type ClientConfig struct {
	ServerURL string        `mapstructure:"server_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RetryMax  int           `mapstructure:"retry_max"`
	TokenPath string        `mapstructure:"token_path"`
}

func NewConfig() (*Configuration, error) {
	// a missing .env file is fine, real deployments use the environment
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/paperstack")

	v.SetEnvPrefix("PAPERSTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults mirrors GetDefaultConfig so that env-only deployments work
func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("postgres.host", d.Postgres.Host)
	v.SetDefault("postgres.port", d.Postgres.Port)
	v.SetDefault("postgres.user", d.Postgres.User)
	v.SetDefault("postgres.password", d.Postgres.Password)
	v.SetDefault("postgres.dbname", d.Postgres.DBName)
	v.SetDefault("postgres.sslmode", d.Postgres.SSLMode)
	v.SetDefault("postgres.max_open_conns", d.Postgres.MaxOpenConns)
	v.SetDefault("postgres.max_idle_conns", d.Postgres.MaxIdleConns)
	v.SetDefault("postgres.conn_max_lifetime_minutes", d.Postgres.ConnMaxLifetimeMinutes)
	v.SetDefault("auth.secret", d.Auth.Secret)
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL)
	v.SetDefault("auth.reset_token_ttl", d.Auth.ResetTokenTTL)
	v.SetDefault("auth.password_minimum", d.Auth.PasswordMinimum)
	v.SetDefault("documents.guest_documents_are_public", d.Documents.GuestDocumentsArePublic)
	v.SetDefault("local.path", d.Local.Path)
	v.SetDefault("local.quota_bytes", d.Local.QuotaBytes)
	v.SetDefault("local.retention_limit", d.Local.RetentionLimit)
	v.SetDefault("local.logo_max_width", d.Local.LogoMaxWidth)
	v.SetDefault("local.logo_quality", d.Local.LogoQuality)
	v.SetDefault("pdf.typst_binary", d.PDF.TypstBinary)
	v.SetDefault("email.max_retries", d.Email.MaxRetries)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.default_expiration", d.Cache.DefaultExpiration)
	v.SetDefault("cache.cleanup_interval", d.Cache.CleanupInterval)
	v.SetDefault("ratelimit.requests_per_second", d.RateLimit.RequestsPerSecond)
	v.SetDefault("ratelimit.burst", d.RateLimit.Burst)
	v.SetDefault("client.server_url", d.Client.ServerURL)
	v.SetDefault("client.timeout", d.Client.Timeout)
	v.SetDefault("client.retry_max", d.Client.RetryMax)
	v.SetDefault("client.token_path", d.Client.TokenPath)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts, the CLI and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Postgres: PostgresConfig{
			Host:                   "localhost",
			Port:                   5432,
			User:                   "paperstack",
			Password:               "paperstack",
			DBName:                 "paperstack",
			SSLMode:                "disable",
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
		},
		Auth: AuthConfig{
			Secret:          "change-me",
			TokenTTL:        7 * 24 * time.Hour,
			ResetTokenTTL:   time.Hour,
			PasswordMinimum: 6,
		},
		Documents: DocumentsConfig{GuestDocumentsArePublic: true},
		Local: LocalConfig{
			Path:           ".paperstack/local.db",
			QuotaBytes:     5 << 20,
			RetentionLimit: 20,
			LogoMaxWidth:   600,
			LogoQuality:    60,
		},
		PDF:   PDFConfig{TypstBinary: "typst"},
		Email: EmailConfig{MaxRetries: 3},
		Cache: CacheConfig{
			Enabled:           true,
			DefaultExpiration: 30 * time.Minute,
			CleanupInterval:   time.Hour,
		},
		RateLimit: RateLimitConfig{RequestsPerSecond: 5, Burst: 10},
		Client: ClientConfig{
			ServerURL: "http://localhost:8080",
			Timeout:   30 * time.Second,
			RetryMax:  3,
			TokenPath: ".paperstack/token",
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

// GetURL returns the postgres URL form used by the migration runner
func (c PostgresConfig) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}
