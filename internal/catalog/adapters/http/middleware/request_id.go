// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"filmorate/pkg/logger"
)

// NewRequestIDMiddleware кладет идентификатор запроса в контекст и возвращает его в заголовке ответа.
// Идентификатор берется из заголовка запроса или генерируется.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(logger.RequestIDHeader))
		ctx.SetContext(requestCtx)

		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(logger.RequestIDHeader, id)
		}
		return ctx.Next()
	}
}
