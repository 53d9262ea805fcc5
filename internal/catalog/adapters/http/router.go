package http

import (
	"github.com/gofiber/fiber/v3"

	"filmorate/internal/catalog/adapters/http/films"
	"filmorate/internal/catalog/adapters/http/health"
	"filmorate/internal/catalog/adapters/http/httperr"
	"filmorate/internal/catalog/adapters/http/middleware"
	"filmorate/internal/catalog/adapters/http/reference"
	"filmorate/internal/catalog/adapters/http/users"
	"filmorate/internal/catalog/ports/api"
)

// ErrRouteNotFound - сообщение для несуществующих маршрутов.
const ErrRouteNotFound = "route not found"

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// readiness может быть nil, тогда /health отвечает без проверок зависимостей.
func SetupRouter(app *fiber.App, filmUseCase api.FilmUseCase, userUseCase api.UserUseCase, readiness *health.Handler) {
	if readiness == nil {
		readiness = health.NewHandler(health.DefaultTimeout)
	}

	filmHandler := films.NewHandler(filmUseCase)
	userHandler := users.NewHandler(userUseCase)
	referenceHandler := reference.NewHandler(filmUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	filmRoutes := app.Group("/films")
	filmRoutes.Get("/popular", filmHandler.Popular)
	filmRoutes.Get("/", filmHandler.List)
	filmRoutes.Post("/", filmHandler.Create)
	filmRoutes.Put("/", filmHandler.Update)
	filmRoutes.Get("/:id", filmHandler.Get)
	filmRoutes.Delete("/:id", filmHandler.Delete)
	filmRoutes.Put("/:id/like/:userId", filmHandler.AddLike)
	filmRoutes.Delete("/:id/like/:userId", filmHandler.RemoveLike)

	userRoutes := app.Group("/users")
	userRoutes.Get("/", userHandler.List)
	userRoutes.Post("/", userHandler.Create)
	userRoutes.Put("/", userHandler.Update)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Delete("/:id", userHandler.Delete)
	userRoutes.Get("/:id/friends", userHandler.Friends)
	userRoutes.Get("/:id/friends/common/:otherId", userHandler.CommonFriends)
	userRoutes.Put("/:id/friends/:friendId", userHandler.AddFriend)
	userRoutes.Delete("/:id/friends/:friendId", userHandler.RemoveFriend)

	app.Get("/genres", referenceHandler.ListGenres)
	app.Get("/genres/:id", referenceHandler.GetGenre)
	app.Get("/mpa", referenceHandler.ListMpa)
	app.Get("/mpa/:id", referenceHandler.GetMpa)

	app.Get("/health", readiness.Ready)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return httperr.Write(c, fiber.NewError(fiber.StatusNotFound, ErrRouteNotFound))
	})
}
