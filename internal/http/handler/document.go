package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fleetdocs/internal/http/middleware"
	"fleetdocs/internal/service"
)

// registerDocumentRoutes wires the document CRUD. Ownership is enforced by
// the service through the parent vehicle.
func registerDocumentRoutes(api fiber.Router, docSvc service.DocumentService) {
	api.Post("/documents", func(c *fiber.Ctx) error {
		var in service.CreateDocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if _, err := uuid.Parse(in.VehicleID); err != nil {
			return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "vehicleId is required", "vehicleId")
		}
		res, err := docSvc.Create(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return writeServiceError(c, err, "vehicle not found")
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	api.Get("/documents/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := docSvc.Get(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return writeServiceError(c, err, "document not found")
		}
		return c.JSON(res)
	})

	api.Put("/documents/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.UpdateDocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := docSvc.Update(c.UserContext(), middleware.UserID(c), id, in)
		if err != nil {
			return writeServiceError(c, err, "document not found")
		}
		return c.JSON(res)
	})

	api.Delete("/documents/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
			return writeServiceError(c, err, "document not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
