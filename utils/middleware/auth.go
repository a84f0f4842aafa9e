package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/auth"
	"github.com/sahilchouksey/institute-site/utils/cookies"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
	"gorm.io/gorm"
)

const (
	localsAdmin  = "admin"
	localsClaims = "claims"
)

// SessionGuard authenticates admin requests from the session cookie
type SessionGuard struct {
	jwtManager  *auth.JWTManager
	revocations *auth.RevocationService
	db          *gorm.DB
}

// NewSessionGuard creates a new session guard
func NewSessionGuard(jwtManager *auth.JWTManager, db *gorm.DB) *SessionGuard {
	return &SessionGuard{
		jwtManager:  jwtManager,
		revocations: auth.NewRevocationService(db),
		db:          db,
	}
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header for scripts
func TokenFromRequest(c *fiber.Ctx) string {
	if token := cookies.Session(c); token != "" {
		return token
	}

	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Authenticate resolves the admin behind the request token.
// Every failure mode maps to auth.ErrInvalidToken except storage errors.
func (g *SessionGuard) Authenticate(c *fiber.Ctx) (*model.Admin, *auth.Claims, error) {
	token := TokenFromRequest(c)
	if token == "" {
		return nil, nil, auth.ErrInvalidToken
	}

	claims, err := g.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, nil, auth.ErrInvalidToken
	}

	revoked, err := g.revocations.IsRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, auth.ErrInvalidToken
	}

	var admin model.Admin
	if err := g.db.WithContext(c.UserContext()).First(&admin, "id = ?", claims.AdminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, auth.ErrInvalidToken
		}
		return nil, nil, err
	}

	return &admin, claims, nil
}

// Required rejects the request with a uniform 401 unless it carries a live session
func (g *SessionGuard) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, claims, err := g.Authenticate(c)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				return response.Unauthorized(c, "Unauthorized")
			}
			logger.Error().Err(err).Str("path", c.Path()).Msg("session lookup failed")
			return response.InternalServerError(c, "Failed to verify session")
		}

		c.Locals(localsAdmin, admin)
		c.Locals(localsClaims, claims)

		return c.Next()
	}
}

// CurrentAdmin returns the admin stored by Required, or nil
func CurrentAdmin(c *fiber.Ctx) *model.Admin {
	admin, _ := c.Locals(localsAdmin).(*model.Admin)
	return admin
}

// CurrentClaims returns the session claims stored by Required, or nil
func CurrentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(localsClaims).(*auth.Claims)
	return claims
}
