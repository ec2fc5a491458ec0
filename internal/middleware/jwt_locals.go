package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"freelancehub/internal/utils"
)

// AttachJWTLocals unpacks the parsed token into plain locals so handlers
// never touch jwt types directly.
func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("user")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		token, ok := raw.(*jwt.Token)
		if !ok || token == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		if claims.UserID == 0 {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", claims.UserID)
		c.Locals("isFreelancer", claims.IsFreelancer)

		return c.Next()
	}
}
