package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"gorm.io/gorm"
)

const maxAuditBody = 4096

var auditActions = map[string]string{
	fiber.MethodPost:   "create",
	fiber.MethodPut:    "update",
	fiber.MethodPatch:  "update",
	fiber.MethodDelete: "delete",
}

// AdminAuditLog records successful admin mutations on resource. Runs after SessionGuard.Required.
func AdminAuditLog(db *gorm.DB, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		action, mutating := auditActions[c.Method()]
		if !mutating {
			return c.Next()
		}

		err := c.Next()

		admin := CurrentAdmin(c)
		status := c.Response().StatusCode()
		if admin == nil || err != nil || status >= fiber.StatusBadRequest {
			return err
		}

		// fiber reuses the Ctx after the handler returns, so copy everything first
		entry := model.AdminAuditLog{
			AdminID:     admin.ID,
			Action:      action,
			Resource:    resource,
			ResourceID:  strings.Clone(c.Params("id")),
			Status:      status,
			IPAddress:   strings.Clone(c.IP()),
			UserAgent:   string(c.Request().Header.UserAgent()),
			Description: c.Method() + " " + c.Path(),
		}
		if body := c.Body(); len(body) > 0 && len(body) <= maxAuditBody && c.Is("json") {
			entry.NewValue = string(body)
		}

		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error().Interface("panic", r).Msg("audit log panicked")
				}
			}()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
				logger.Warn().Err(err).Str("resource", resource).Msg("failed to write audit log")
			}
		}()

		return err
	}
}
