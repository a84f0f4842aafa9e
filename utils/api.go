package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
)

// MakeHTTPHandleFunc adapts a store-backed handler to fiber. Returned errors become a generic 500.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("handler failed")
			return response.InternalServerError(c, "")
		}
		return nil
	}
}
