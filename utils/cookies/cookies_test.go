package cookies

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var siteURL, _ = url.Parse("https://institute.test/")

func newApp() *fiber.App {
	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		SetSession(c, "token-value", time.Hour)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		ClearSession(c)
		return c.SendStatus(fiber.StatusOK)
	})
	// Clears with a different path, which browsers treat as a different cookie
	app.Post("/logout-wrong-path", func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookieName,
			Path:     "/admin",
			HTTPOnly: true,
			Secure:   true,
			SameSite: fiber.CookieSameSiteNoneMode,
			Expires:  time.Unix(0, 0),
		})
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func do(t *testing.T, app *fiber.App, jar http.CookieJar, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	jar.SetCookies(siteURL, resp.Cookies())
	return resp
}

func TestSetSessionAttributes(t *testing.T) {
	app := newApp()
	jar, _ := cookiejar.New(nil)

	resp := do(t, app, jar, "/login")
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, SessionCookieName, c.Name)
	assert.Equal(t, "token-value", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)

	require.Len(t, jar.Cookies(siteURL), 1)
}

func TestClearSessionRemovesCookie(t *testing.T) {
	app := newApp()
	jar, _ := cookiejar.New(nil)

	do(t, app, jar, "/login")
	require.Len(t, jar.Cookies(siteURL), 1)

	resp := do(t, app, jar, "/logout")
	cleared := resp.Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "/", cleared[0].Path)
	assert.True(t, cleared[0].HttpOnly)
	assert.True(t, cleared[0].Secure)
	assert.Equal(t, http.SameSiteNoneMode, cleared[0].SameSite)

	assert.Empty(t, jar.Cookies(siteURL))
}

func TestClearWithMismatchedPathLeavesCookie(t *testing.T) {
	app := newApp()
	jar, _ := cookiejar.New(nil)

	do(t, app, jar, "/login")
	do(t, app, jar, "/logout-wrong-path")

	remaining := jar.Cookies(siteURL)
	require.Len(t, remaining, 1)
	assert.Equal(t, "token-value", remaining[0].Value)
}
