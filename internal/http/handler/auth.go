package handler

import (
	"github.com/gofiber/fiber/v2"

	"fleetdocs/internal/config"
	"fleetdocs/internal/http/middleware"
	"fleetdocs/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// registerAuthRoutes wires the session endpoints. Login and logout live
// outside the authenticated group; the current-user endpoint carries its own
// auth guard so an anonymous probe gets 401 instead of 404.
func registerAuthRoutes(app *fiber.App, authSvc service.AuthService, sess config.SessionConfig) {
	app.Post("/api/auth/login", func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.Username == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "username and password are required")
		}

		s, err := authSvc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err, "user not found")
		}

		c.Cookie(&fiber.Cookie{
			Name:     sess.CookieName,
			Value:    s.Token,
			Expires:  s.ExpiresAt,
			HTTPOnly: true,
			Secure:   sess.SecureCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"user": userResponse{ID: s.UserID, Username: s.Username},
		})
	})

	app.Post("/api/auth/logout", func(c *fiber.Ctx) error {
		token := c.Cookies(sess.CookieName)
		if err := authSvc.Logout(c.UserContext(), token); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		c.ClearCookie(sess.CookieName)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logged out"})
	})

	app.Get("/api/auth/user", middleware.RequireAuth(authSvc, sess.CookieName), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"user": userResponse{
				ID:       middleware.UserID(c),
				Username: middleware.Username(c),
			},
		})
	})
}
