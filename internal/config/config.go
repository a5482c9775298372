package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Token verification providers.
const (
	ProviderOIDC = "oidc"
	ProviderHMAC = "hmac"
)

// MinJWTSecretLength is the shortest HMAC secret accepted.
const MinJWTSecretLength = 16

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Auth     AuthConfig
	App      AppConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" required:"true"`
	Host            string        `envconfig:"SERVER_HOST" required:"true"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	AllowedOrigins  []string      `envconfig:"SERVER_ALLOWED_ORIGINS"` // empty allows any origin
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

// StoreConfig selects and tunes the link store.
type StoreConfig struct {
	Driver      string `envconfig:"STORE_DRIVER" default:"postgres"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"linkbio.db"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		return nil
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite path cannot be empty")
		}
		return nil
	default:
		return fmt.Errorf("invalid store driver: %s (must be one of: postgres, sqlite)", c.Driver)
	}
}

// DatabaseConfig holds PostgreSQL connection configuration. It is only
// loaded when the postgres driver is selected.
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" required:"true"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Name     string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"1"`
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.User == "" {
		return fmt.Errorf("user cannot be empty")
	}
	if c.Password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if c.MaxConns <= 0 {
		return fmt.Errorf("max connections must be positive")
	}
	if c.MinConns <= 0 {
		return fmt.Errorf("min connections must be positive")
	}
	if c.MinConns > c.MaxConns {
		return fmt.Errorf("min connections (%d) cannot be greater than max connections (%d)", c.MinConns, c.MaxConns)
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid SSL mode: %s (must be one of: disable, require, verify-ca, verify-full)", c.SSLMode)
	}
	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// AuthConfig holds token verification and admin identity settings.
type AuthConfig struct {
	Provider   string `envconfig:"AUTH_PROVIDER" required:"true"` // oidc, hmac
	AdminEmail string `envconfig:"ADMIN_EMAIL"`

	OIDCIssuer        string `envconfig:"OIDC_ISSUER"`
	OIDCAudience      string `envconfig:"OIDC_AUDIENCE"`
	FirebaseProjectID string `envconfig:"FIREBASE_PROJECT_ID"`

	JWTSecret   string `envconfig:"JWT_SECRET"`
	JWTIssuer   string `envconfig:"JWT_ISSUER"`
	JWTAudience string `envconfig:"JWT_AUDIENCE"`
}

// Issuer returns the OIDC issuer, derived from the Firebase project when
// no explicit issuer is configured.
func (c *AuthConfig) Issuer() string {
	if c.OIDCIssuer != "" {
		return c.OIDCIssuer
	}
	if c.FirebaseProjectID != "" {
		return "https://securetoken.google.com/" + c.FirebaseProjectID
	}
	return ""
}

// Audience returns the expected OIDC audience, which for Firebase ID
// tokens is the project ID.
func (c *AuthConfig) Audience() string {
	if c.OIDCAudience != "" {
		return c.OIDCAudience
	}
	return c.FirebaseProjectID
}

// Validate validates the auth configuration. An empty admin email is
// allowed; the gate then rejects every identity.
func (c *AuthConfig) Validate() error {
	switch c.Provider {
	case ProviderOIDC:
		if c.Issuer() == "" {
			return fmt.Errorf("OIDC issuer or Firebase project ID is required for the oidc provider")
		}
		if c.Audience() == "" {
			return fmt.Errorf("OIDC audience or Firebase project ID is required for the oidc provider")
		}
	case ProviderHMAC:
		if len(c.JWTSecret) < MinJWTSecretLength {
			return fmt.Errorf("JWT secret must be at least %d bytes for the hmac provider", MinJWTSecretLength)
		}
	default:
		return fmt.Errorf("invalid auth provider: %s (must be one of: oidc, hmac)", c.Provider)
	}
	return nil
}

// AppConfig holds application-specific configuration.
type AppConfig struct {
	Environment    string `envconfig:"APP_ENV" required:"true"` // development, staging, production, test
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"` // debug, info, warn, error
	ServiceName    string `envconfig:"SERVICE_NAME" default:"linkbio"`
	ServiceVersion string `envconfig:"SERVICE_VERSION" default:"dev"`
}

// Validate validates the app configuration.
func (c *AppConfig) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Environment)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// Load loads configuration from environment variables only.
// (.env loading happens in internal/app for development.)
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load Server config: %w", err)
	}
	if err := cfg.Server.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Server config: %w", err)
	}

	store, err := LoadStore()
	if err != nil {
		return nil, err
	}
	cfg.Store = store.Store
	cfg.Database = store.Database

	authCfg, err := LoadAuth()
	if err != nil {
		return nil, err
	}
	cfg.Auth = *authCfg

	if err := envconfig.Process("", &cfg.App); err != nil {
		return nil, fmt.Errorf("failed to load App config: %w", err)
	}
	if err := cfg.App.Validate(); err != nil {
		return nil, fmt.Errorf("invalid App config: %w", err)
	}

	return cfg, nil
}

// LoadStore loads only the store and database sections. The offline CLI
// uses it so that it can run without server or auth settings.
func LoadStore() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process("", &cfg.Store); err != nil {
		return nil, fmt.Errorf("failed to load Store config: %w", err)
	}
	if err := cfg.Store.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Store config: %w", err)
	}

	if cfg.Store.Driver == DriverPostgres {
		if err := envconfig.Process("", &cfg.Database); err != nil {
			return nil, fmt.Errorf("failed to load Database config: %w", err)
		}
		if err := cfg.Database.Validate(); err != nil {
			return nil, fmt.Errorf("invalid Database config: %w", err)
		}
	}

	return cfg, nil
}

// LoadAuth loads only the auth section.
func LoadAuth() (*AuthConfig, error) {
	cfg := &AuthConfig{}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load Auth config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Auth config: %w", err)
	}
	return cfg, nil
}
