package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// InvalidateOnMutation calls invalidate after every successful POST, PUT, PATCH or DELETE
func InvalidateOnMutation(invalidate func(ctx context.Context)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, mutating := auditActions[c.Method()]; !mutating {
			return c.Next()
		}

		err := c.Next()
		if err == nil && c.Response().StatusCode() < fiber.StatusBadRequest {
			invalidate(c.UserContext())
		}
		return err
	}
}
