// Package db предоставляет функционал для работы с базой данных сервиса каталога.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"filmorate/internal/catalog/config"
	"filmorate/pkg/db/postgres"
	"filmorate/pkg/logger"
	"filmorate/pkg/resilience"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing catalog database"
	LogDBInitialized     = "catalog database initialized successfully"
	LogMigrationStarting = "starting database migrations for catalog service"
	LogMigrationsApplied = "catalog migrations applied"
	LogSchemaUpToDate    = "catalog schema is up to date"
	LogDBClosing         = "closing catalog database pool"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply catalog database migrations"
	ErrDBConnection      = "failed to connect to catalog database"
	ErrGetPath           = "failed to get path"
	ErrDBCheckConnection = "error checking the database connection"
)

const filePrefix = "file://"

// DB представляет соединение с базой данных каталога.
type DB struct {
	pool *pgxpool.Pool
}

// New применяет миграции и открывает пул соединений. Оба шага повторяются
// cfg.ConnectAttempts раз, пока база недоступна.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database))

	migrationsPath, err := MigrationsURL(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.ConnectAttempts

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	var migration postgres.MigrationResult
	err = resilience.Retry(ctx, "catalog migrations", retryCfg, func(ctx context.Context) error {
		var migrateErr error
		migration, migrateErr = postgres.Migrate(ctx, migrationsPath, cfg.GetConnectionURL())
		return migrateErr
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	if migration.Applied {
		log.Info(ctx, LogMigrationsApplied, zap.Uint("version", migration.Version))
	} else {
		log.Info(ctx, LogSchemaUpToDate, zap.Uint("version", migration.Version))
	}

	var pool *pgxpool.Pool
	err = resilience.Retry(ctx, "catalog database connection", retryCfg, func(ctx context.Context) error {
		var connErr error
		pool, connErr = postgres.Connect(ctx, cfg.GetDSN(), PoolOptions(cfg)...)
		return connErr
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{pool: pool}, nil
}

// PoolOptions переводит настройки каталога в опции пула.
func PoolOptions(cfg *config.PostgresConfig) []postgres.PoolOption {
	return []postgres.PoolOption{
		postgres.WithPoolSize(cfg.MinConn, cfg.MaxConn),
		postgres.WithConnectTimeout(cfg.ConnectTimeout),
	}
}

// MigrationsURL переводит каталог миграций в file:// URL с абсолютным путем.
func MigrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filePrefix + dir, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return filePrefix + absPath, nil
}

// Close закрывает пул соединений.
func (db *DB) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogDBClosing)
	db.pool.Close()
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping проверяет соединение с базой данных. Используется проверкой готовности.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
