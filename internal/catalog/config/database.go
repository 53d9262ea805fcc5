package config

import (
	"fmt"
	"time"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host          string `yaml:"host" env:"CATALOG_POSTGRES_HOST" env-default:"0.0.0.0"`
	Port          int    `yaml:"port" env:"CATALOG_POSTGRES_PORT" env-default:"5432"`
	User          string `yaml:"user" env:"CATALOG_POSTGRES_USER" env-default:"postgres"`
	Password      string `yaml:"password" env:"CATALOG_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string `yaml:"database" env:"CATALOG_POSTGRES_DB" env-default:"filmorate"`
	MinConn       int    `yaml:"min_conn" env:"CATALOG_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int    `yaml:"max_conn" env:"CATALOG_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir string `yaml:"migrations_dir" env:"CATALOG_POSTGRES_MIGRATIONS_DIR" env-default:"migrations/catalog"`
	// ConnectAttempts - число попыток применить миграции и подключиться при старте.
	ConnectAttempts int           `yaml:"connect_attempts" env:"CATALOG_POSTGRES_CONNECT_ATTEMPTS" env-default:"5"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"CATALOG_POSTGRES_CONNECT_TIMEOUT" env-default:"5s"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}
