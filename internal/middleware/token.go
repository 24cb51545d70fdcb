package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/mockcanvas/internal/models"
)

const userIDLocal = "user_id"

// TokenResolver maps an access token to the user it was issued to.
type TokenResolver interface {
	UserForToken(token string) (models.User, bool)
}

// BearerToken identifies the calling user from an "Authorization: Bearer"
// header. Requests without a known token pass through anonymously; the fake
// canvas never rejects a caller.
func BearerToken(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Next()
		}

		if user, ok := resolver.UserForToken(token); ok {
			c.Locals(userIDLocal, user.ID)
		}
		return c.Next()
	}
}

// GetUserID returns the user resolved by BearerToken, if any.
func GetUserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(userIDLocal).(int64)
	return id, ok
}

func bearerToken(authorization string) string {
	const bearer = "bearer "
	if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
		return ""
	}
	return strings.TrimSpace(authorization[len(bearer):])
}
