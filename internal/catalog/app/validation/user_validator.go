package validation

import (
	"strings"
	"time"
	"unicode"

	"filmorate/internal/catalog/domain/entities"
)

// UserValidator проверяет UserInput. Часы внедряются для проверки даты рождения.
type UserValidator struct {
	now func() time.Time
}

// NewUserValidator создает валидатор пользователей. nil означает time.Now.
func NewUserValidator(now func() time.Time) *UserValidator {
	if now == nil {
		now = time.Now
	}
	return &UserValidator{now: now}
}

// ValidateCreate требует наличия email, логина и даты рождения.
func (v *UserValidator) ValidateCreate(in entities.UserInput) error {
	switch {
	case in.Email == nil:
		return entities.ValidationError("email must not be blank")
	case in.Login == nil:
		return entities.ValidationError("login must not be blank")
	case in.Birthday == nil:
		return entities.ValidationError("birthday is required")
	}
	return v.validate(in)
}

// ValidateUpdate проверяет только переданные поля. Идентификатор обязателен.
func (v *UserValidator) ValidateUpdate(in entities.UserInput) error {
	if in.ID == nil {
		return entities.ValidationError("user id is required")
	}
	return v.validate(in)
}

func (v *UserValidator) validate(in entities.UserInput) error {
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" {
			return entities.ValidationError("email must not be blank")
		}
		if !strings.Contains(*in.Email, "@") {
			return entities.ValidationError("email must contain '@'")
		}
	}
	if in.Login != nil {
		if strings.TrimSpace(*in.Login) == "" {
			return entities.ValidationError("login must not be blank")
		}
		if strings.IndexFunc(*in.Login, unicode.IsSpace) >= 0 {
			return entities.ValidationError("login must not contain whitespace")
		}
	}
	if in.Birthday != nil && in.Birthday.After(v.today()) {
		return entities.ValidationError("birthday must not be in the future")
	}
	return nil
}

func (v *UserValidator) today() time.Time {
	y, m, d := v.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
