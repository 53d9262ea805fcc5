// Package cache определяет интерфейсы для кэширования.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается Get при отсутствии ключа.
var ErrCacheMiss = errors.New("cache miss")

// Cache определяет интерфейс для работы с кэшем.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Close() error
}
