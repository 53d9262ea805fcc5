// Package httperr переводит ошибки каталога в HTTP ответы.
package httperr

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/utils/v2"
	"go.uber.org/zap"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/pkg/logger"
)

// ErrMalformedRequest - тело или параметры запроса не удалось разобрать.
var ErrMalformedRequest = errors.New("malformed request")

// Константы для логирования.
const (
	LogClientError   = "request rejected"
	LogInternalError = "request failed with internal error"
	LogWriteFailed   = "failed to send error response"

	internalErrorMessage = "internal server error"
)

// Response - тело ответа об ошибке.
type Response struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// Malformed помечает ошибку разбора запроса.
func Malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
}

// Status возвращает HTTP статус и сообщение для ошибки.
func Status(err error) (int, string) {
	var (
		validationErrs validator.ValidationErrors
		fiberErr       *fiber.Error
	)
	switch {
	case errors.Is(err, entities.ErrValidation):
		return fiber.StatusBadRequest, entities.Message(err)
	case errors.Is(err, entities.ErrNotFound):
		return fiber.StatusNotFound, entities.Message(err)
	case errors.Is(err, ErrMalformedRequest), errors.As(err, &validationErrs):
		return fiber.StatusBadRequest, err.Error()
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, internalErrorMessage
	}
}

// Write пишет ответ об ошибке. Внутренние ошибки логируются на уровне error.
func Write(ctx fiber.Ctx, err error) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("path", ctx.Path()))

	status, message := Status(err)
	if status >= fiber.StatusInternalServerError {
		log.Error(requestCtx, LogInternalError, zap.Error(err))
	} else {
		log.Debug(requestCtx, LogClientError, zap.Int("status", status), zap.Error(err))
	}

	body := Response{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     utils.StatusMessage(status),
		Message:   message,
		Path:      ctx.Path(),
	}
	if err := ctx.Status(status).JSON(body); err != nil {
		log.Error(requestCtx, LogWriteFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", LogWriteFailed, err)
	}
	return nil
}

// Handler - обработчик ошибок приложения fiber.
func Handler(ctx fiber.Ctx, err error) error {
	return Write(ctx, err)
}
