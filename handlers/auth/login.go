package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/model"
	authutil "github.com/sahilchouksey/institute-site/utils/auth"
	"github.com/sahilchouksey/institute-site/utils/cookies"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/middleware"
	"github.com/sahilchouksey/institute-site/utils/response"
	"gorm.io/gorm"
)

const invalidCredentials = "Invalid credentials"

// LoginRequest represents an admin login request
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Username and password are required")
	}

	ip := c.IP()

	var admin model.Admin
	if err := h.db.WithContext(c.UserContext()).Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error().Err(err).Msg("failed to look up admin")
			return response.InternalServerError(c, "Login failed")
		}
		// Record failed attempt even if the admin does not exist
		_ = h.bruteForceProtection.RecordFailedAttempt(c, ip, req.Username)
		return response.Unauthorized(c, invalidCredentials)
	}

	if err := authutil.VerifyPassword(admin.PasswordHash, req.Password); err != nil {
		_ = h.bruteForceProtection.RecordFailedAttempt(c, ip, req.Username)
		return response.Unauthorized(c, invalidCredentials)
	}

	_ = h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)

	token, _, err := h.jwtManager.GenerateSessionToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate session token")
		return response.InternalServerError(c, "Login failed")
	}

	cookies.SetSession(c, token, h.jwtManager.Expiry())
	logger.Info().Str("admin", admin.Username).Str("ip", ip).Msg("admin logged in")

	return response.Success(c, "admin", toAdminResponse(&admin))
}

// Logout handles POST /admin/logout. The cookie is always cleared and a valid token is revoked.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := middleware.TokenFromRequest(c); token != "" {
		if claims, err := h.jwtManager.ValidateToken(token); err == nil && claims.ExpiresAt != nil {
			if err := h.revocations.Revoke(c.UserContext(), claims.ID, claims.AdminID, claims.ExpiresAt.Time, "logout"); err != nil {
				logger.Warn().Err(err).Str("admin", claims.Username).Msg("failed to revoke session")
			}
		}
	}

	cookies.ClearSession(c)
	return response.OK(c)
}
