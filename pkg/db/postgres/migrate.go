package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrReadVersion             = "failed to read schema version"
	ErrDirtySchema             = "schema is dirty after migration"
	ErrCloseMigrations         = "failed to close migration instance"
)

// MigrationResult описывает состояние схемы после Migrate.
type MigrationResult struct {
	// Version - номер последней примененной миграции, 0 если миграций нет.
	Version uint
	// Applied равен true, если при вызове были применены новые миграции.
	Applied bool
}

// Migrate применяет все новые миграции из sourceURL к базе databaseURL.
func Migrate(ctx context.Context, sourceURL, databaseURL string) (MigrationResult, error) {
	log := logger.Log(ctx).With(zap.String("source", sourceURL))

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return MigrationResult{}, fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, ErrCloseMigrations, zap.NamedError("source_error", srcErr), zap.NamedError("database_error", dbErr))
		}
	}()

	var result MigrationResult
	switch err := m.Up(); {
	case err == nil:
		result.Applied = true
	case errors.Is(err, migrate.ErrNoChange):
	default:
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return MigrationResult{}, fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return result, nil
	case err != nil:
		return MigrationResult{}, fmt.Errorf("%s: %w", ErrReadVersion, err)
	case dirty:
		return MigrationResult{}, fmt.Errorf("%s: version %d", ErrDirtySchema, version)
	}
	result.Version = version
	return result, nil
}
