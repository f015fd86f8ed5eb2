package middleware

import (
	"dsamentor/backend/config"
	"dsamentor/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the locals key under which AuthMiddleware stores the
// authenticated user's ID.
const UserIDKey = "userID"

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Invalid or expired token")
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the ID stored by AuthMiddleware. Only valid on routes
// behind it.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(UserIDKey).(uint)
	return id
}
