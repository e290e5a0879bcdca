package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/legalassist/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, assistant *handlers.AssistantHandler, health *handlers.HealthHandler) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	api.Post("/legal-assistant", assistant.Ask)
}
