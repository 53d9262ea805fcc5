// Package http содержит HTTP сервер каталога на fiber.
package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"

	"filmorate/internal/catalog/adapters/http/httperr"
	"filmorate/internal/catalog/config"
)

// AppName - имя приложения fiber.
const AppName = "filmorate-catalog"

// structValidator подключает validator/v10 к привязке параметров fiber.
type structValidator struct {
	validate *validator.Validate
}

// Validate проверяет структуру по тегам validate.
func (v *structValidator) Validate(out any) error {
	return v.validate.Struct(out)
}

// NewApp создает приложение fiber с кодеком goccy/go-json и общим обработчиком ошибок.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:         AppName,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		JSONEncoder:     json.Marshal,
		JSONDecoder:     json.Unmarshal,
		StructValidator: &structValidator{validate: validator.New(validator.WithRequiredStructEnabled())},
		ErrorHandler:    httperr.Handler,
	})
}
