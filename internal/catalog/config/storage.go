package config

// Поддерживаемые хранилища.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// StorageConfig выбирает реализацию хранилища.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"CATALOG_STORAGE_BACKEND" env-default:"memory"`
}
