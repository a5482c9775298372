package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sundayezeilo/linkbio/internal/config"
	"github.com/sundayezeilo/linkbio/internal/db"
)

// Queries is the query set both store drivers provide.
type Queries interface {
	Migrate(ctx context.Context) error
	ListLinks(ctx context.Context) ([]db.Link, error)
	CountLinks(ctx context.Context) (int64, error)
	CreateLink(ctx context.Context, arg db.CreateLinkParams) (db.Link, error)
	ImportLinks(ctx context.Context, args []db.CreateLinkParams, replace bool) ([]db.Link, error)
	UpdateLink(ctx context.Context, arg db.UpdateLinkParams) (db.Link, error)
	DeleteLink(ctx context.Context, id string) error
}

// Store is an open connection to the configured link store.
type Store struct {
	Queries Queries
	close   func() error
}

// Close releases the underlying pool or database handle.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStore connects to the store selected by STORE_DRIVER and applies
// the schema when DB_AUTO_MIGRATE is set.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	var store *Store

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := connectDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		store = &Store{
			Queries: db.New(pool),
			close:   func() error { pool.Close(); return nil },
		}

	case config.DriverSQLite:
		conn, err := openSQLite(ctx, cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		store = &Store{
			Queries: db.NewSQLite(conn),
			close:   conn.Close,
		}

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Store.AutoMigrate {
		if err := store.Queries.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		logger.Info("schema migrated", "driver", cfg.Store.Driver)
	}

	return store, nil
}

// connectDatabase establishes a connection to the PostgreSQL database.
func connectDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.Database.MaxConns
	poolConfig.MinConns = cfg.Database.MinConns

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")

	return pool, nil
}

func openSQLite(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("opening sqlite database", "path", path)

	conn, err := db.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return conn, nil
}
