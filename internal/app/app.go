package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sundayezeilo/linkbio/internal/auth"
	"github.com/sundayezeilo/linkbio/internal/config"
	"github.com/sundayezeilo/linkbio/internal/links"
	"github.com/sundayezeilo/linkbio/internal/server"
)

// App holds the application dependencies and configuration.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   *Store
	Server  *server.Server
	Handler *links.Handler
}

// New initializes and returns a new App instance with all dependencies wired up.
func New(ctx context.Context) (*App, error) {
	LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := NewLogger(cfg.App.LogLevel)

	logger.Info("starting application",
		"env", cfg.App.Environment,
		"version", cfg.App.ServiceVersion,
		"store", cfg.Store.Driver,
		"auth", cfg.Auth.Provider,
	)

	verifier, err := newVerifier(ctx, cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}
	if cfg.Auth.AdminEmail == "" {
		logger.Warn("ADMIN_EMAIL is empty, every mutating request will be rejected")
	}

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	guard := auth.NewGuard(verifier, auth.Gate{AdminEmail: cfg.Auth.AdminEmail}, logger)
	repo := links.NewRepository(store.Queries, nil)
	svc := links.NewService(repo, nil)
	handler := links.NewHandler(links.HandlerConfig{
		Service: svc,
		Logger:  logger,
	})

	srv := server.New(cfg, logger, handler, guard)

	logger.Info("application initialized", "port", cfg.Server.Port)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Server:  srv,
		Handler: handler,
	}, nil
}

// Start starts the application server.
func (a *App) Start(ctx context.Context) error {
	if err := a.Server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown releases the store.
func (a *App) Shutdown() error {
	a.Logger.Info("shutting down application")

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
		a.Logger.Info("store closed")
	}

	return nil
}

// LoadEnv loads a .env file in development and test.
func LoadEnv() {
	env := os.Getenv("APP_ENV")
	if env == "development" || env == "test" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found.")
		}
	}
}

// NewLogger creates a JSON logger writing to stdout at level.
func NewLogger(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newVerifier(ctx context.Context, cfg config.AuthConfig) (auth.Verifier, error) {
	switch cfg.Provider {
	case config.ProviderOIDC:
		return auth.NewOIDCVerifier(ctx, cfg.Issuer(), cfg.Audience())
	case config.ProviderHMAC:
		return auth.NewHMACVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}
