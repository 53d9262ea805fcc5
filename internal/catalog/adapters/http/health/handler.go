// Package health содержит проверку готовности сервиса каталога.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

// DefaultTimeout ограничивает одну проверку зависимости.
const DefaultTimeout = 2 * time.Second

// Статусы ответа.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	LogCheckFailed  = "readiness check failed"
	ErrSendResponse = "error sending response"
)

// CheckFunc проверяет одну зависимость. Ошибка означает, что зависимость недоступна.
type CheckFunc func(ctx context.Context) error

// Response - тело ответа GET /health.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type namedCheck struct {
	name  string
	check CheckFunc
}

// Handler выполняет зарегистрированные проверки зависимостей.
type Handler struct {
	mu      sync.RWMutex
	checks  []namedCheck
	timeout time.Duration
}

// NewHandler создает обработчик без проверок. Неположительный timeout заменяется DefaultTimeout.
func NewHandler(timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Handler{timeout: timeout}
}

// AddCheck регистрирует проверку под именем name.
func (h *Handler) AddCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, namedCheck{name: name, check: check})
}

// Check выполняет все проверки и возвращает сводный результат.
func (h *Handler) Check(ctx context.Context) Response {
	h.mu.RLock()
	checks := make([]namedCheck, len(h.checks))
	copy(checks, h.checks)
	h.mu.RUnlock()

	resp := Response{Status: StatusOK}
	if len(checks) == 0 {
		return resp
	}

	resp.Checks = make(map[string]string, len(checks))
	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
		err := c.check(checkCtx)
		cancel()

		if err != nil {
			logger.Log(ctx).Warn(ctx, LogCheckFailed, zap.String("check", c.name), zap.Error(err))
			resp.Status = StatusUnavailable
			resp.Checks[c.name] = err.Error()
			continue
		}
		resp.Checks[c.name] = StatusOK
	}
	return resp
}

// Ready обрабатывает GET /health: 200 если все проверки прошли, иначе 503.
func (h *Handler) Ready(ctx fiber.Ctx) error {
	resp := h.Check(ctx.Context())

	status := fiber.StatusOK
	if resp.Status != StatusOK {
		status = fiber.StatusServiceUnavailable
	}

	if err := ctx.Status(status).JSON(resp); err != nil {
		return fmt.Errorf("%s: %w", ErrSendResponse, err)
	}
	return nil
}
