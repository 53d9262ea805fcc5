// Package resilience содержит механизмы обеспечения отказоустойчивости.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// State - состояние автоматического выключателя.
type State int

// Состояния выключателя.
const (
	// StateClosed - запросы проходят.
	StateClosed State = iota
	// StateOpen - запросы отклоняются до истечения OpenTimeout.
	StateOpen
	// StateHalfOpen - пропускаются пробные запросы.
	StateHalfOpen
)

// String возвращает имя состояния.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogBreakerStateChange = "circuit breaker state changed"
	LogBreakerReject      = "circuit breaker rejected call"
)

// ErrBreakerOpen возвращается, когда выключатель разомкнут.
var ErrBreakerOpen = errors.New("circuit breaker is open")

// BreakerConfig содержит настройки выключателя.
type BreakerConfig struct {
	// FailureThreshold - число подряд идущих ошибок, размыкающее выключатель.
	FailureThreshold int
	// OpenTimeout - время в разомкнутом состоянии до пробного запроса.
	OpenTimeout time.Duration
	// SuccessThreshold - число успешных пробных запросов для замыкания.
	SuccessThreshold int
}

// DefaultBreakerConfig возвращает конфигурацию выключателя по умолчанию.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      10 * time.Second,
		SuccessThreshold: 2,
	}
}

// Breaker реализует паттерн Circuit Breaker.
type Breaker struct {
	name   string
	config BreakerConfig
	now    func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	changedAt time.Time
}

// NewBreaker создает выключатель. now может быть nil, тогда используется time.Now.
func NewBreaker(name string, config BreakerConfig, now func() time.Time) *Breaker {
	if now == nil {
		now = time.Now
	}
	return &Breaker{
		name:      name,
		config:    config,
		now:       now,
		state:     StateClosed,
		changedAt: now(),
	}
}

// Execute выполняет fn, если выключатель пропускает вызов, и учитывает результат.
func (b *Breaker) Execute(ctx context.Context, fn func() error) error {
	if !b.Allow(ctx) {
		return ErrBreakerOpen
	}
	err := fn()
	b.Record(ctx, err)
	return err
}

// Allow сообщает, можно ли выполнить вызов.
func (b *Breaker) Allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.changedAt) < b.config.OpenTimeout {
			logger.Log(ctx).Debug(ctx, LogBreakerReject, zap.String("circuit_breaker", b.name))
			return false
		}
		b.transition(ctx, StateHalfOpen)
	}
	return true
}

// Record учитывает результат вызова.
func (b *Breaker) Record(ctx context.Context, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.config.FailureThreshold {
			b.transition(ctx, StateOpen)
		}
		return
	}

	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.transition(ctx, StateClosed)
		}
	}
}

// State возвращает текущее состояние.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// transition вызывается под b.mu.
func (b *Breaker) transition(ctx context.Context, to State) {
	logger.Log(ctx).Warn(ctx, LogBreakerStateChange,
		zap.String("circuit_breaker", b.name),
		zap.Stringer("from", b.state),
		zap.Stringer("to", to),
		zap.Int("failures", b.failures))

	b.state = to
	b.changedAt = b.now()
	b.failures = 0
	b.successes = 0
}
