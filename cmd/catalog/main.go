package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"filmorate/internal/catalog/adapters/cache"
	httpServer "filmorate/internal/catalog/adapters/http"
	"filmorate/internal/catalog/adapters/http/health"
	"filmorate/internal/catalog/adapters/memory"
	"filmorate/internal/catalog/adapters/postgres"
	"filmorate/internal/catalog/app"
	"filmorate/internal/catalog/config"
	"filmorate/internal/catalog/db"
	"filmorate/internal/catalog/ports/repositories"
	"filmorate/pkg/db/redis"
	"filmorate/pkg/logger"
	"filmorate/pkg/resilience"
	"filmorate/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "CATALOG_LOGGER_MODE"
	EnvLoggerLevel = "CATALOG_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "catalog service started"
	LogServiceShutdownDone = "catalog service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
	LogInitStorage         = "initializing storage"
	LogInitCache           = "initializing reference cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		var hooks []func(context.Context) error
		readiness := health.NewHandler(health.DefaultTimeout)

		log.Info(ctx, LogInitStorage, zap.String("backend", cfg.Storage.Backend))
		var factory repositories.Factory
		switch cfg.Storage.Backend {
		case config.BackendPostgres:
			database, err := db.New(ctx, &cfg.Postgres)
			if err != nil {
				log.Error(ctx, ErrInitDatabase, zap.Error(err))
				exitCode = 1
				return
			}
			factory = postgres.NewRepositoryFactory(database.Pool())
			readiness.AddCheck("postgres", database.Ping)
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return nil
			})
		default:
			factory = memory.NewStore()
		}

		refs := factory.ReferenceData()
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			var client *goredis.Client
			client, err = redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				exitCode = 1
				_ = closeResources(ctx, hooks)
				return
			}
			redisCache := cache.NewRedisCache(client, cfg.Redis.DefaultTTL)
			readiness.AddCheck("redis", redisCache.Ping)
			breaker := resilience.NewBreaker("reference-cache", cfg.Redis.BreakerConfig(), nil)
			refs = cache.NewCachedReferenceData(refs, redisCache, cfg.Redis.DefaultTTL, cache.WithBreaker(breaker))
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisCache.Close()
			})
		}

		log.Info(ctx, LogInitServices)
		userUseCase := app.NewUserUseCase(factory.UserRepository(), time.Now)
		filmUseCase := app.NewFilmUseCase(factory.FilmRepository(), factory.LikeRepository(), refs, userUseCase)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := httpServer.NewApp(&cfg.HTTP)
		httpServer.SetupRouter(fiberApp, filmUseCase, userUseCase, readiness)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// HTTP сервер останавливается первым, затем закрываются хранилища.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			if err := fiberApp.ShutdownWithContext(ctx); err != nil {
				return err
			}
			return closeResources(ctx, hooks)
		})

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// closeResources закрывает ресурсы в обратном порядке их создания.
func closeResources(ctx context.Context, hooks []func(context.Context) error) error {
	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
