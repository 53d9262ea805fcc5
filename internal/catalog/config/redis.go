package config

import (
	"time"

	"filmorate/pkg/db/redis"
	"filmorate/pkg/resilience"
)

// RedisConfig представляет конфигурацию кэша справочников.
type RedisConfig struct {
	Enabled    bool          `yaml:"enabled" env:"CATALOG_REDIS_ENABLED" env-default:"false"`
	Host       string        `yaml:"host" env:"CATALOG_REDIS_HOST" env-default:"localhost"`
	Port       int           `yaml:"port" env:"CATALOG_REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"CATALOG_REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"db" env:"CATALOG_REDIS_DB" env-default:"0"`
	PoolSize   int           `yaml:"pool_size" env:"CATALOG_REDIS_POOL_SIZE" env-default:"10"`
	Timeout    time.Duration `yaml:"timeout" env:"CATALOG_REDIS_TIMEOUT" env-default:"3s"`
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CATALOG_REDIS_DEFAULT_TTL" env-default:"15m"`

	BreakerThreshold int           `yaml:"breaker_threshold" env:"CATALOG_REDIS_BREAKER_THRESHOLD" env-default:"5"`
	BreakerTimeout   time.Duration `yaml:"breaker_timeout" env:"CATALOG_REDIS_BREAKER_TIMEOUT" env-default:"10s"`
}

// BreakerConfig возвращает настройки выключателя для обращений к кэшу.
func (c *RedisConfig) BreakerConfig() resilience.BreakerConfig {
	cfg := resilience.DefaultBreakerConfig()
	cfg.FailureThreshold = c.BreakerThreshold
	cfg.OpenTimeout = c.BreakerTimeout
	return cfg
}

// ClientConfig возвращает настройки клиента Redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
