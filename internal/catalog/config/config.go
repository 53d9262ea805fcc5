// Package config содержит конфигурацию сервиса каталога.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "filmorate/pkg/config"
	"filmorate/pkg/logger"
)

// Константы конфигурации.
const (
	ServiceName   = "catalog"
	EnvConfigPath = "CATALOG_CONFIG_PATH"

	LogConfigLoaded = "catalog configuration loaded"
	ErrInvalid      = "invalid configuration"
)

// Config представляет полную конфигурацию сервиса каталога.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	HTTP     HTTPConfig     `yaml:"http"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла CATALOG_CONFIG_PATH, если он задан, и из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, которые не выражаются тегами cleanenv.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("%s: unknown storage backend %q", ErrInvalid, c.Storage.Backend)
	}
	if c.Shutdown.Timeout <= 0 {
		return fmt.Errorf("%s: shutdown timeout must be positive", ErrInvalid)
	}
	return nil
}
