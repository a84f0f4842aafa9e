package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/utils/response"
)

// HandleCheckHealth reports liveness and database reachability
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
