package logger_test

import (
	"context"
	"testing"

	"filmorate/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	t.Run("success when logger exists in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		retrievedLogger, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrievedLogger)
	})

	t.Run("error when no logger in context", func(t *testing.T) {
		retrievedLogger, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, retrievedLogger)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("error when context has non-logger values", func(t *testing.T) {
		type ctxKeyType struct{}
		ctx := context.WithValue(context.Background(), ctxKeyType{}, "not a logger")

		retrievedLogger, err := logger.FromContext(ctx)
		require.Error(t, err)
		assert.Nil(t, retrievedLogger)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("success with derived context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		type ctxKeyType struct{}
		ctx := logger.NewContext(context.Background(), testLogger)
		derivedCtx := context.WithValue(ctx, ctxKeyType{}, "some-value")

		retrievedLogger, err := logger.FromContext(derivedCtx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrievedLogger)
	})
}

func TestLog(t *testing.T) {
	t.Run("returns logger from context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)
		assert.Same(t, testLogger, logger.Log(ctx))
	})

	t.Run("returns global logger when context has none", func(t *testing.T) {
		globalLogger, err := logger.NewLogger(logger.Production, "info")
		require.NoError(t, err)
		logger.SetGlobalLogger(globalLogger)
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		assert.Same(t, globalLogger, logger.Log(context.Background()))
	})

	t.Run("returns fallback logger when nothing is configured", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		log := logger.Log(context.Background())
		require.NotNil(t, log)
		assert.NotPanics(t, func() {
			log.Info(context.Background(), "fallback message")
		})
	})
}

func TestInitGlobalLoggerWithLevel(t *testing.T) {
	logger.SetGlobalLogger(nil)
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "warn"))
	first := logger.Log(context.Background())

	require.NoError(t, logger.InitGlobalLogger(logger.Production))
	assert.Same(t, first, logger.Log(context.Background()), "second init must keep the existing logger")
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		env   logger.Environment
		level string
	}{
		{name: "development debug", env: logger.Development, level: "debug"},
		{name: "production info", env: logger.Production, level: "info"},
		{name: "production warning alias", env: logger.Production, level: "warning"},
		{name: "development error", env: logger.Development, level: "error"},
		{name: "unknown level falls back to info", env: logger.Development, level: "verbose"},
		{name: "empty level", env: logger.Production, level: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.NewLogger(tt.env, tt.level)
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewRequestIDContext(context.Background(), "req-1")
	child := log.With(zap.String("component", "test"))

	assert.NotPanics(t, func() {
		child.Debug(ctx, "debug", zap.Int("n", 1))
		child.Info(ctx, "info")
		child.Warn(ctx, "warn")
		child.Error(ctx, "error")
		child.Info(context.TODO(), "without request id")
	})
	assert.NotSame(t, log, child)
}

func TestNewRequestIDContext(t *testing.T) {
	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("generates id when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}

func TestGenerateRequestID(t *testing.T) {
	first := logger.GenerateRequestID()
	second := logger.GenerateRequestID()

	assert.NotEqual(t, first, second)
	_, err := uuid.Parse(first)
	assert.NoError(t, err)
}

func TestWithRequestID(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "info")
	require.NoError(t, err)

	assert.Same(t, log, log.WithRequestID(context.Background()))

	ctx := logger.NewRequestIDContext(context.Background(), "req-42")
	assert.NotSame(t, log, log.WithRequestID(ctx))
}
