package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"fleetdocs/internal/config"
	"fleetdocs/internal/http/middleware"
	"fleetdocs/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic: parsing, translation to
// service calls, and translation of service errors back to HTTP live here,
// nothing else.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	authSvc service.AuthService,
	vehicleSvc service.VehicleService,
	docSvc service.DocumentService,
	uploadSvc service.UploadService,
	sess config.SessionConfig,
) {
	// Health endpoint: checks DB connectivity only.
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe.
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	registerAuthRoutes(app, authSvc, sess)

	// Everything below requires a live session.
	guard := middleware.RequireAuth(authSvc, sess.CookieName)
	api := app.Group("/api", guard)
	registerVehicleRoutes(api, vehicleSvc)
	registerDocumentRoutes(api, docSvc)
	registerUploadRoutes(app, api, uploadSvc, guard)
}
