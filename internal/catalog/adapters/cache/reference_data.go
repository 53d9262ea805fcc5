package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/internal/catalog/ports/cache"
	"filmorate/internal/catalog/ports/repositories"
	"filmorate/pkg/logger"
	"filmorate/pkg/resilience"
)

// Ключи справочников в Redis.
const (
	keyGenres      = "catalog:genres"
	keyMpa         = "catalog:mpa"
	keyGenrePrefix = "catalog:genre:"
	keyMpaPrefix   = "catalog:mpa:"

	LogCacheHit        = "reference cache hit"
	LogCacheMiss       = "reference cache miss"
	LogCacheFailed     = "reference cache unavailable, falling back to store"
	LogCacheDecodeFail = "failed to decode cached value"
)

// CachedReferenceData кэширует чтения справочников жанров и рейтингов.
// Ошибки кэша не прерывают запрос: значение берется из хранилища.
type CachedReferenceData struct {
	next    repositories.ReferenceData
	cache   cache.Cache
	ttl     time.Duration
	breaker *resilience.Breaker
}

var _ repositories.ReferenceData = (*CachedReferenceData)(nil)

// Option настраивает CachedReferenceData.
type Option func(*CachedReferenceData)

// WithBreaker направляет обращения к кэшу через выключатель: пока он разомкнут,
// чтения идут сразу в хранилище.
func WithBreaker(b *resilience.Breaker) Option {
	return func(r *CachedReferenceData) {
		r.breaker = b
	}
}

// NewCachedReferenceData оборачивает справочник кэшем.
func NewCachedReferenceData(next repositories.ReferenceData, c cache.Cache, ttl time.Duration, opts ...Option) *CachedReferenceData {
	r := &CachedReferenceData{next: next, cache: c, ttl: ttl}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetGenreByID возвращает жанр по ID.
func (r *CachedReferenceData) GetGenreByID(ctx context.Context, id int64) (*entities.Genre, error) {
	return readThrough(ctx, r, keyGenrePrefix+strconv.FormatInt(id, 10), func() (*entities.Genre, error) {
		return r.next.GetGenreByID(ctx, id)
	})
}

// ListGenres возвращает все жанры.
func (r *CachedReferenceData) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	return readThrough(ctx, r, keyGenres, func() ([]entities.Genre, error) {
		return r.next.ListGenres(ctx)
	})
}

// GenreExists проверяет существование жанра.
func (r *CachedReferenceData) GenreExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.GetGenreByID(ctx, id))
}

// GetMpaByID возвращает рейтинг по ID.
func (r *CachedReferenceData) GetMpaByID(ctx context.Context, id int64) (*entities.Mpa, error) {
	return readThrough(ctx, r, keyMpaPrefix+strconv.FormatInt(id, 10), func() (*entities.Mpa, error) {
		return r.next.GetMpaByID(ctx, id)
	})
}

// ListMpa возвращает все рейтинги.
func (r *CachedReferenceData) ListMpa(ctx context.Context) ([]entities.Mpa, error) {
	return readThrough(ctx, r, keyMpa, func() ([]entities.Mpa, error) {
		return r.next.ListMpa(ctx)
	})
}

// MpaExists проверяет существование рейтинга.
func (r *CachedReferenceData) MpaExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.GetMpaByID(ctx, id))
}

func exists[T any](v *T, err error) (bool, error) {
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return v != nil, nil
}

// readThrough читает ключ из кэша, при промахе загружает значение и кладет его в кэш.
// Ошибки загрузки (включая NotFound) не кэшируются.
func readThrough[T any](ctx context.Context, r *CachedReferenceData, key string, load func() (T, error)) (T, error) {
	log := logger.Log(ctx).With(zap.String("method", "readThrough"), zap.String("key", key))

	var (
		value T
		data  []byte
	)
	err := r.guard(ctx, func() error {
		var getErr error
		data, getErr = r.cache.Get(ctx, key)
		return getErr
	})
	switch {
	case err == nil:
		decodeErr := json.Unmarshal(data, &value)
		if decodeErr == nil {
			log.Debug(ctx, LogCacheHit)
			return value, nil
		}
		log.Warn(ctx, LogCacheDecodeFail, zap.Error(decodeErr))
	case errors.Is(err, cache.ErrCacheMiss):
		log.Debug(ctx, LogCacheMiss)
	default:
		log.Warn(ctx, LogCacheFailed, zap.Error(err))
	}

	value, err = load()
	if err != nil {
		return value, err
	}

	if encoded, encodeErr := json.Marshal(value); encodeErr == nil {
		setErr := r.guard(ctx, func() error {
			return r.cache.Set(ctx, key, encoded, r.ttl)
		})
		if setErr != nil {
			log.Warn(ctx, LogCacheFailed, zap.Error(setErr))
		}
	}
	return value, nil
}

// guard выполняет обращение к кэшу через выключатель, если он задан. Промах не считается отказом.
func (r *CachedReferenceData) guard(ctx context.Context, fn func() error) error {
	if r.breaker == nil {
		return fn()
	}
	if !r.breaker.Allow(ctx) {
		return resilience.ErrBreakerOpen
	}
	err := fn()
	if errors.Is(err, cache.ErrCacheMiss) {
		r.breaker.Record(ctx, nil)
	} else {
		r.breaker.Record(ctx, err)
	}
	return err
}
