package db_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/catalog/config"
	"filmorate/internal/catalog/db"
	"filmorate/pkg/db/postgres"
)

func TestMigrationsURL(t *testing.T) {
	t.Run("Абсолютный путь", func(t *testing.T) {
		url, err := db.MigrationsURL("/srv/migrations/catalog")
		require.NoError(t, err)
		assert.Equal(t, "file:///srv/migrations/catalog", url)
	})

	t.Run("Относительный путь", func(t *testing.T) {
		url, err := db.MigrationsURL("migrations/catalog")
		require.NoError(t, err)

		path := strings.TrimPrefix(url, "file://")
		assert.True(t, filepath.IsAbs(path))
		assert.True(t, strings.HasSuffix(path, filepath.Join("migrations", "catalog")))
	})
}

func TestPoolOptions(t *testing.T) {
	cfg := &config.PostgresConfig{
		Host:           "localhost",
		Port:           5432,
		User:           "postgres",
		Password:       "postgres",
		Database:       "filmorate",
		MinConn:        2,
		MaxConn:        8,
		ConnectTimeout: 3 * time.Second,
	}

	poolCfg, err := postgres.PoolConfig(cfg.GetDSN(), db.PoolOptions(cfg)...)

	require.NoError(t, err)
	assert.Equal(t, int32(2), poolCfg.MinConns)
	assert.Equal(t, int32(8), poolCfg.MaxConns)
	assert.Equal(t, 3*time.Second, poolCfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, "filmorate", poolCfg.ConnConfig.Database)
}

func TestNew_MissingMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}

	cfg := &config.PostgresConfig{
		Host:            "localhost",
		Port:            1,
		User:            "postgres",
		Password:        "postgres",
		Database:        "filmorate",
		MinConn:         1,
		MaxConn:         1,
		MigrationsDir:   filepath.Join(t.TempDir(), "missing"),
		ConnectAttempts: 1,
	}

	database, err := db.New(context.Background(), cfg)

	require.Error(t, err)
	assert.Nil(t, database)
	assert.Contains(t, err.Error(), db.ErrDBMigrations)
}
