package httperr_test

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"

	"filmorate/internal/catalog/adapters/http/httperr"
	"filmorate/internal/catalog/domain/entities"
)

func TestStatus(t *testing.T) {
	type query struct {
		Count int `validate:"gt=0"`
	}
	validationErr := validator.New().Struct(query{})

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"Ошибка валидации", entities.ValidationError("name must not be blank"), fiber.StatusBadRequest, "name must not be blank"},
		{"Не найдено", entities.NotFoundError("film with id %d not found", 7), fiber.StatusNotFound, "film with id 7 not found"},
		{"Обернутая ошибка валидации", errors.Join(errors.New("ctx"), entities.ValidationError("bad")), fiber.StatusBadRequest, "bad"},
		{"Некорректный запрос", httperr.Malformed(errors.New("unexpected EOF")), fiber.StatusBadRequest, "malformed request: unexpected EOF"},
		{"Ошибка validator", validationErr, fiber.StatusBadRequest, validationErr.Error()},
		{"Ошибка fiber", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, fiber.ErrMethodNotAllowed.Message},
		{"Внутренняя ошибка", errors.New("connection refused"), fiber.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := httperr.Status(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}
