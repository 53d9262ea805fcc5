// Package users содержит HTTP-обработчики пользователей и дружбы.
package users

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
	LogHandlerCreate        = "handling create user request"
	LogHandlerUpdate        = "handling update user request"
	LogHandlerGet           = "handling get user request"
	LogHandlerList          = "handling list users request"
	LogHandlerDelete        = "handling delete user request"
	LogHandlerAddFriend     = "handling add friend request"
	LogHandlerRemoveFriend  = "handling remove friend request"
	LogHandlerFriends       = "handling friends request"
	LogHandlerCommonFriends = "handling common friends request"

	ErrSendResponse = "error sending response"
)

// Handler обработчик HTTP-запросов для работы с пользователями.
type Handler struct {
	users api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика пользователей.
func NewHandler(users api.UserUseCase) *Handler {
	return &Handler{users: users}
}

// Create обрабатывает POST /users.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "users.Create")).Debug(requestCtx, LogHandlerCreate)

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	user, err := h.users.Create(requestCtx, req.ToInput())
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx.Status(fiber.StatusCreated), dto.NewUserResponse(user))
}

// Update обрабатывает PUT /users.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "users.Update")).Debug(requestCtx, LogHandlerUpdate)

	var req dto.UserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	user, err := h.users.Update(requestCtx, req.ToInput())
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx, dto.NewUserResponse(user))
}

// Get обрабатывает GET /users/:id.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "users.Get")).Debug(requestCtx, LogHandlerGet)

	var params dto.IDParam
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	user, err := h.users.GetByID(requestCtx, params.ID)
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx, dto.NewUserResponse(user))
}

// List обрабатывает GET /users.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "users.List")).Debug(requestCtx, LogHandlerList)

	users, err := h.users.FindAll(requestCtx)
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx, dto.NewUserListResponse(users))
}

// Delete обрабатывает DELETE /users/:id.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "users.Delete")).Debug(requestCtx, LogHandlerDelete)

	var params dto.IDParam
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	if err := h.users.Delete(requestCtx, params.ID); err != nil {
		return httperr.Write(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// AddFriend обрабатывает PUT /users/:id/friends/:friendId.
func (h *Handler) AddFriend(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "users.AddFriend")).Debug(requestCtx, LogHandlerAddFriend)

	var params dto.FriendParams
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	if err := h.users.AddFriend(requestCtx, params.ID, params.FriendID); err != nil {
		return httperr.Write(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// RemoveFriend обрабатывает DELETE /users/:id/friends/:friendId.
func (h *Handler) RemoveFriend(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "users.RemoveFriend")).Debug(requestCtx, LogHandlerRemoveFriend)

	var params dto.FriendParams
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	if err := h.users.RemoveFriend(requestCtx, params.ID, params.FriendID); err != nil {
		return httperr.Write(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}

// Friends обрабатывает GET /users/:id/friends.
func (h *Handler) Friends(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "users.Friends")).Debug(requestCtx, LogHandlerFriends)

	var params dto.IDParam
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	friends, err := h.users.Friends(requestCtx, params.ID)
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx, dto.NewUserListResponse(friends))
}

// CommonFriends обрабатывает GET /users/:id/friends/common/:otherId.
func (h *Handler) CommonFriends(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).With(zap.String("handler", "users.CommonFriends")).Debug(requestCtx, LogHandlerCommonFriends)

	var params dto.CommonFriendsParams
	if err := ctx.Bind().URI(&params); err != nil {
		return httperr.Write(ctx, httperr.Malformed(err))
	}

	common, err := h.users.CommonFriends(requestCtx, params.ID, params.OtherID)
	if err != nil {
		return httperr.Write(ctx, err)
	}

	return send(ctx, dto.NewUserListResponse(common))
}

func send(ctx fiber.Ctx, body any) error {
	if err := ctx.JSON(body); err != nil {
		return fmt.Errorf("%s: %w", ErrSendResponse, err)
	}
	return nil
}
