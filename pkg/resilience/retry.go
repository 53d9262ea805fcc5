package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// Константы для логирования.
const (
	LogRetryAttempt   = "operation failed, retrying"
	LogRetryExhausted = "retry attempts exhausted"
)

// ErrRetryCanceled возвращается, если контекст отменен во время ожидания.
var ErrRetryCanceled = errors.New("context was canceled during retry")

// RetryConfig содержит настройки повторных попыток.
type RetryConfig struct {
	// MaxAttempts - максимальное число попыток, включая первую.
	MaxAttempts int
	// InitialBackoff - задержка перед второй попыткой.
	InitialBackoff time.Duration
	// MaxBackoff - верхняя граница задержки.
	MaxBackoff time.Duration
	// Factor - множитель экспоненциального роста задержки.
	Factor float64
}

// DefaultRetryConfig возвращает конфигурацию повторов по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    5,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		Factor:         2,
	}
}

// Retry выполняет op, повторяя ее с экспоненциальной задержкой, пока она не вернет nil
// или не закончатся попытки. Возвращается последняя ошибка.
func Retry(ctx context.Context, name string, cfg RetryConfig, op func(ctx context.Context) error) error {
	log := logger.Log(ctx).With(zap.String("operation", name))

	backoff := cfg.InitialBackoff
	var err error
	for attempt := 1; ; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if attempt >= cfg.MaxAttempts {
			log.Warn(ctx, LogRetryExhausted, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Info(ctx, LogRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrRetryCanceled, errors.Join(ctx.Err(), err))
		}

		backoff = time.Duration(float64(backoff) * cfg.Factor)
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}
}
