// Package entities defines the domain entities for the catalog service.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Базовые ошибки домена. Каждая ошибка операции оборачивает одну из них.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// ValidationError возвращает ошибку валидации с сообщением.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundError возвращает ошибку отсутствия сущности с сообщением.
func NotFoundError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Message возвращает текст ошибки без префикса базовой ошибки.
func Message(err error) string {
	msg := err.Error()
	for _, base := range []error{ErrValidation, ErrNotFound} {
		if !errors.Is(err, base) {
			continue
		}
		prefix := base.Error() + ": "
		if idx := strings.LastIndex(msg, prefix); idx >= 0 {
			return msg[idx+len(prefix):]
		}
	}
	return msg
}
