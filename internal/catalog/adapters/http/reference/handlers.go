// Package reference содержит HTTP-обработчики справочников жанров и рейтингов MPA.
package reference

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"filmorate/internal/catalog/adapters/http/dto"
	"filmorate/internal/catalog/adapters/http/httperr"
	"filmorate/internal/catalog/ports/api"
)

// Handler обработчик HTTP-запросов к справочникам.
type Handler struct {
	films api.FilmUseCase
}

// NewHandler создает обработчик справочников.
func NewHandler(films api.FilmUseCase) *Handler {
	return &Handler{films: films}
}

// ListGenres обрабатывает GET /genres.
func (h *Handler) ListGenres(ctx fiber.Ctx) error {
	genres, err := h.films.ListGenres(ctx.Context())
	if err != nil {
		return httperr.Write(ctx, err)
	}
	return send(ctx, genres)
}

// GetGenre обрабатывает GET /genres/:id.
func (h *Handler) GetGenre(ctx fiber.Ctx) error {
	var params dto.IDParam
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	genre, err := h.films.GetGenre(ctx.Context(), params.ID)
	if err != nil {
		return httperr.Write(ctx, err)
	}
	return send(ctx, genre)
}

// ListMpa обрабатывает GET /mpa.
func (h *Handler) ListMpa(ctx fiber.Ctx) error {
	mpa, err := h.films.ListMpa(ctx.Context())
	if err != nil {
		return httperr.Write(ctx, err)
	}
	return send(ctx, mpa)
}

// GetMpa обрабатывает GET /mpa/:id.
func (h *Handler) GetMpa(ctx fiber.Ctx) error {
	var params dto.IDParam
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	mpa, err := h.films.GetMpa(ctx.Context(), params.ID)
	if err != nil {
		return httperr.Write(ctx, err)
	}
	return send(ctx, mpa)
}

func send(ctx fiber.Ctx, body any) error {
	if err := ctx.JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
