package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidateOnMutation(t *testing.T) {
	calls := 0
	app := fiber.New()
	app.Use(InvalidateOnMutation(func(context.Context) { calls++ }))
	app.All("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.All("/bad", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusBadRequest) })

	for _, tc := range []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/ok", 0},
		{http.MethodPost, "/ok", 1},
		{http.MethodDelete, "/ok", 2},
		{http.MethodPut, "/bad", 2},
	} {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, tc.want, calls, "%s %s", tc.method, tc.path)
	}
}
