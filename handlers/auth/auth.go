package auth

import (
	"github.com/sahilchouksey/institute-site/model"
	authutil "github.com/sahilchouksey/institute-site/utils/auth"
	"github.com/sahilchouksey/institute-site/utils/middleware"
	"github.com/sahilchouksey/institute-site/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles admin login, logout and session probes
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	revocations          *authutil.RevocationService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler. bruteForceProtection may be nil.
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		revocations:          authutil.NewRevocationService(db),
		bruteForceProtection: bruteForceProtection,
		validator:            validation.NewValidator(),
	}
}

// AdminResponse is the public view of an admin account
type AdminResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func toAdminResponse(admin *model.Admin) AdminResponse {
	return AdminResponse{
		ID:       admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
	}
}
