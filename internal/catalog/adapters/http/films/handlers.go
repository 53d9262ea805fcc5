// Package films содержит HTTP-обработчики фильмов и лайков.
package films

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"filmorate/internal/catalog/adapters/http/dto"
	"filmorate/internal/catalog/adapters/http/httperr"
	"filmorate/internal/catalog/ports/api"
	"filmorate/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerCreate     = "handling create film request"
	LogHandlerUpdate     = "handling update film request"
	LogHandlerGet        = "handling get film request"
	LogHandlerList       = "handling list films request"
	LogHandlerDelete     = "handling delete film request"
	LogHandlerAddLike    = "handling add like request"
	LogHandlerRemoveLike = "handling remove like request"
	LogHandlerPopular    = "handling popular films request"

	ErrSendResponse = "error sending response"
)

// Handler обработчик HTTP-запросов для работы с фильмами.
type Handler struct {
	films api.FilmUseCase
}

// NewHandler создает новый экземпляр обработчика фильмов.
func NewHandler(films api.FilmUseCase) *Handler {
	return &Handler{films: films}
}

// Create обрабатывает POST /films.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "films.Create")).Debug(requestCtx, LogHandlerCreate)

	var req dto.FilmRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	in, err := req.ToInput()
	if err != nil {
		return httperr.Write(ctx, err)
	}

	film, err := h.films.Create(requestCtx, in)
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx.Status(fiber.StatusCreated), dto.NewFilmResponse(film))
}

// Update обрабатывает PUT /films.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "films.Update")).Debug(requestCtx, LogHandlerUpdate)

	var req dto.FilmRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	in, err := req.ToInput()
	if err != nil {
		return httperr.Write(ctx, err)
	}

	film, err := h.films.Update(requestCtx, in)
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx, dto.NewFilmResponse(film))
}

// Get обрабатывает GET /films/:id.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "films.Get")).Debug(requestCtx, LogHandlerGet)

	var params dto.IDParam
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	film, err := h.films.GetByID(requestCtx, params.ID)
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx, dto.NewFilmResponse(film))
}

// List обрабатывает GET /films.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "films.List")).Debug(requestCtx, LogHandlerList)

	films, err := h.films.FindAll(requestCtx)
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx, dto.NewFilmListResponse(films))
}

// Delete обрабатывает DELETE /films/:id.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "films.Delete")).Debug(requestCtx, LogHandlerDelete)

	var params dto.IDParam
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	if err := h.films.Delete(requestCtx, params.ID); err != nil {
		return httperr.Write(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// AddLike обрабатывает PUT /films/:id/like/:userId.
func (h *Handler) AddLike(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "films.AddLike")).Debug(requestCtx, LogHandlerAddLike)

	var params dto.FilmLikeParams
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	if err := h.films.AddLike(requestCtx, params.ID, params.UserID); err != nil {
		return httperr.Write(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// RemoveLike обрабатывает DELETE /films/:id/like/:userId.
func (h *Handler) RemoveLike(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "films.RemoveLike")).Debug(requestCtx, LogHandlerRemoveLike)

	var params dto.FilmLikeParams
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	if err := h.films.RemoveLike(requestCtx, params.ID, params.UserID); err != nil {
		return httperr.Write(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// Popular обрабатывает GET /films/popular?count=N.
func (h *Handler) Popular(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "films.Popular")).Debug(requestCtx, LogHandlerPopular)

	query := dto.PopularQuery{Count: dto.DefaultPopularCount}
	if err := ctx.Bind().Query(&query); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	films, err := h.films.TopFilms(requestCtx, query.Count)
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx, dto.NewFilmListResponse(films))
}

func send(ctx fiber.Ctx, body any) error {
	if err := ctx.JSON(body); err != nil {
		return fmt.Errorf("%s: %w", ErrSendResponse, err)
	}
	return nil
}
