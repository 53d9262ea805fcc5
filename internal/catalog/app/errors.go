// Package app implements application business logic for the catalog service.
package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"filmorate/internal/catalog/domain/entities"
	"filmorate/pkg/logger"
)

// logFailure пишет ошибки домена на уровне debug, остальные на уровне error.
func logFailure(ctx context.Context, log *logger.Logger, msg string, err error) {
	if errors.Is(err, entities.ErrValidation) || errors.Is(err, entities.ErrNotFound) {
		log.Debug(ctx, msg, zap.Error(err))
		return
	}
	log.Error(ctx, msg, zap.Error(err))
}
