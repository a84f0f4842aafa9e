package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginSuffixMatcher(t *testing.T) {
	assert.Nil(t, OriginSuffixMatcher(nil))

	match := OriginSuffixMatcher([]string{".trycloudflare.com"})
	assert.True(t, match("https://quiet-lake.trycloudflare.com"))
	assert.True(t, match("https://quiet-lake.trycloudflare.com:8443"))
	assert.False(t, match("https://trycloudflare.com.evil.io"))
	assert.False(t, match("http://localhost:3000"))
}

func TestSetupSecurityCORS(t *testing.T) {
	app := fiber.New()
	SetupSecurity(app, SecurityConfig{
		AllowedOrigins:        "http://localhost:3000/",
		AllowedOriginSuffixes: []string{".trycloudflare.com"},
		DisableAccessLog:      true,
	})
	app.Get("/public/home", func(c *fiber.Ctx) error { return c.SendString("ok") })

	cases := map[string]string{
		"http://localhost:3000":            "http://localhost:3000",
		"https://abc.trycloudflare.com":    "https://abc.trycloudflare.com",
		"https://not-allowed.example.com": "",
	}

	for origin, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/public/home", nil)
		req.Header.Set("Origin", origin)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.Header.Get("Access-Control-Allow-Origin"), origin)
		if want != "" {
			assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
		}
	}
}
