package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"fleetdocs/internal/model"
)

const (
	// UserIDLocalKey is the context-locals key for the authenticated user's id.
	UserIDLocalKey = "user_id"
	// UsernameLocalKey is the context-locals key for the authenticated username.
	UsernameLocalKey = "username"
)

// UserResolver maps a session token to the authenticated user. Satisfied by
// service.AuthService.
type UserResolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// RequireAuth gates a route group on a live session. The session cookie is
// resolved through the injected resolver and the user identity is stored in
// context locals; handlers never see session mechanics, only the resolved
// user id.
func RequireAuth(resolver UserResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return fiber.ErrUnauthorized
		}
		user, err := resolver.Resolve(c.UserContext(), token)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(UserIDLocalKey, user.ID)
		c.Locals(UsernameLocalKey, user.Username)

		return c.Next()
	}
}

// UserID returns the authenticated user's id stored by RequireAuth.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}

// Username returns the authenticated username stored by RequireAuth.
func Username(c *fiber.Ctx) string {
	name, _ := c.Locals(UsernameLocalKey).(string)
	return name
}
