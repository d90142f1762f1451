package httpapi

import (
	"github.com/gofiber/fiber/v3"

	"textverse/internal/sync/ports/storage"
)

// SetupRouter настраивает маршрутизацию публичного HTTP surface.
func SetupRouter(app *fiber.App, backend storage.Backend) {
	publicHandler := NewPublicHandler(backend)

	// Middleware для всех запросов.
	app.Use(NewLoggerMiddleware())
	app.Use(NewRecoveryMiddleware())

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/public/:public_id", publicHandler.GetPublicNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
