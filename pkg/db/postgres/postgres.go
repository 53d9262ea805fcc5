// Package postgres содержит пул соединений, миграции и транзакции поверх pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to Postgres database"
	LogConnected  = "successfully connected to Postgres"
)

// Константы для сообщений об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// PoolOption меняет настройки пула до его создания.
type PoolOption func(*pgxpool.Config)

// WithPoolSize задает минимальное и максимальное число соединений.
// Неположительные значения оставляют настройки pgx по умолчанию.
func WithPoolSize(minConns, maxConns int) PoolOption {
	return func(cfg *pgxpool.Config) {
		if minConns > 0 {
			cfg.MinConns = int32(minConns)
		}
		if maxConns > 0 {
			cfg.MaxConns = int32(maxConns)
		}
		if cfg.MinConns > cfg.MaxConns {
			cfg.MinConns = cfg.MaxConns
		}
	}
}

// WithConnectTimeout ограничивает установку одного соединения.
func WithConnectTimeout(timeout time.Duration) PoolOption {
	return func(cfg *pgxpool.Config) {
		if timeout > 0 {
			cfg.ConnConfig.ConnectTimeout = timeout
		}
	}
}

// WithHealthCheckPeriod задает период фоновой проверки простаивающих соединений.
func WithHealthCheckPeriod(period time.Duration) PoolOption {
	return func(cfg *pgxpool.Config) {
		if period > 0 {
			cfg.HealthCheckPeriod = period
		}
	}
}

// PoolConfig разбирает DSN и применяет опции.
func PoolConfig(dsn string, opts ...PoolOption) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg, nil
}

// Connect создает пул и проверяет соединение. При неудачной проверке пул закрывается.
func Connect(ctx context.Context, dsn string, opts ...PoolOption) (*pgxpool.Pool, error) {
	log := logger.Log(ctx)

	cfg, err := PoolConfig(dsn, opts...)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, LogConnecting,
		zap.String("host", cfg.ConnConfig.Host),
		zap.Int32("min_conns", cfg.MinConns),
		zap.Int32("max_conns", cfg.MaxConns))

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Warn(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected)
	return pool, nil
}
