package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fleetdocs/internal/http/middleware"
	"fleetdocs/internal/service"
)

// registerVehicleRoutes wires the vehicle CRUD plus the alert feed. All
// routes sit behind RequireAuth, so middleware.UserID is always populated.
func registerVehicleRoutes(api fiber.Router, vehicleSvc service.VehicleService) {
	// List the caller's vehicles, optionally filtered by registration number.
	api.Get("/vehicles", func(c *fiber.Ctx) error {
		res, err := vehicleSvc.List(c.UserContext(), middleware.UserID(c), c.Query("search"))
		if err != nil {
			return writeServiceError(c, err, "vehicle not found")
		}
		return c.JSON(res)
	})

	// Expiry alert feed over the whole fleet.
	api.Get("/alerts", func(c *fiber.Ctx) error {
		res, err := vehicleSvc.Alerts(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err, "vehicle not found")
		}
		return c.JSON(res)
	})

	api.Get("/vehicles/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := vehicleSvc.Get(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return writeServiceError(c, err, "vehicle not found")
		}
		return c.JSON(res)
	})

	api.Post("/vehicles", func(c *fiber.Ctx) error {
		var in service.VehicleInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := vehicleSvc.Create(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return writeServiceError(c, err, "vehicle not found")
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	// Vehicle plus its documents in one atomic request.
	api.Post("/vehicles/with-documents", func(c *fiber.Ctx) error {
		var in service.VehicleWithDocumentsInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := vehicleSvc.CreateWithDocuments(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return writeServiceError(c, err, "vehicle not found")
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	api.Put("/vehicles/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.UpdateVehicleInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := vehicleSvc.Update(c.UserContext(), middleware.UserID(c), id, in)
		if err != nil {
			return writeServiceError(c, err, "vehicle not found")
		}
		return c.JSON(res)
	})

	api.Delete("/vehicles/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := vehicleSvc.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
			return writeServiceError(c, err, "vehicle not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
