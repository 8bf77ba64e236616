package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"fleetdocs/internal/service"
)

// registerUploadRoutes wires file upload and file retrieval. Uploads go
// through the /api group; retrieval lives at /uploads/:name so stored
// file_url values resolve directly, gated by the same auth guard.
func registerUploadRoutes(app *fiber.App, api fiber.Router, uploadSvc service.UploadService, guard fiber.Handler) {
	// Upload a document file (multipart/form-data, field name: file).
	api.Post("/upload", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := uploadSvc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnsupportedType):
				return writeFieldError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE",
					"file type not allowed", "file")
			case errors.Is(err, service.ErrFileTooLarge):
				return writeFieldError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE",
					"file exceeds the maximum allowed size", "file")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	// Redirect a stored file reference to a short-lived download URL.
	app.Get("/uploads/:name", guard, func(c *fiber.Ctx) error {
		name := c.Params("name")
		url, err := uploadSvc.PresignURL(c.UserContext(), "uploads/"+name)
		if err != nil {
			if errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid file name")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Redirect(url, fiber.StatusTemporaryRedirect)
	})
}
