package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/utils/middleware"
	"github.com/sahilchouksey/institute-site/utils/response"
)

// Me handles GET /admin/me and returns the admin behind the session
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		return response.Unauthorized(c, "")
	}

	return response.Success(c, "admin", toAdminResponse(admin))
}
