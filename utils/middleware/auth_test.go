package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/database/dbtest"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/auth"
	"github.com/sahilchouksey/institute-site/utils/cookies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGuard(t *testing.T) (*fiber.App, *auth.JWTManager, *model.Admin, *auth.RevocationService) {
	t.Helper()
	db := dbtest.New(t)
	manager := auth.NewJWTManager(auth.JWTConfig{Secret: "guard-secret"})

	admin := &model.Admin{Username: "owner", PasswordHash: "x"}
	require.NoError(t, db.Create(admin).Error)

	guard := NewSessionGuard(manager, db)
	app := fiber.New()
	app.Get("/admin/me", guard.Required(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": CurrentAdmin(c).Username, "jti": CurrentClaims(c).ID})
	})

	return app, manager, admin, auth.NewRevocationService(db)
}

func request(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookies.SessionCookieName, Value: token})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGuardAcceptsValidSession(t *testing.T) {
	app, manager, admin, _ := setupGuard(t)

	token, _, err := manager.GenerateSessionToken(admin.ID, admin.Username, admin.Role)
	require.NoError(t, err)

	resp := request(t, app, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuardAcceptsBearerHeader(t *testing.T) {
	app, manager, admin, _ := setupGuard(t)

	token, _, err := manager.GenerateSessionToken(admin.ID, admin.Username, admin.Role)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuardRejectsUniformly(t *testing.T) {
	app, manager, admin, revocations := setupGuard(t)

	foreign := auth.NewJWTManager(auth.JWTConfig{Secret: "other"})
	forged, _, err := foreign.GenerateSessionToken(admin.ID, admin.Username, admin.Role)
	require.NoError(t, err)

	ghost, _, err := manager.GenerateSessionToken("00000000-0000-0000-0000-000000000000", "ghost", "ADMIN")
	require.NoError(t, err)

	revokedToken, jti, err := manager.GenerateSessionToken(admin.ID, admin.Username, admin.Role)
	require.NoError(t, err)
	require.NoError(t, revocations.Revoke(context.Background(), jti, admin.ID, time.Now().Add(time.Hour), "logout"))

	for name, token := range map[string]string{
		"missing": "",
		"garbage": "not-a-jwt",
		"forged":  forged,
		"unknown": ghost,
		"revoked": revokedToken,
	} {
		resp := request(t, app, token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
	}
}
