package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visit struct{ path, ip, ua string }

type fakeRecorder struct {
	mu     sync.Mutex
	visits []visit
}

func (f *fakeRecorder) Record(path, ip, ua string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits = append(f.visits, visit{path, ip, ua})
}

func TestShouldRecordVisit(t *testing.T) {
	excluded := append(append([]string{}, DefaultVisitExclusions...), "/console")

	cases := []struct {
		method, path string
		want         bool
	}{
		{"GET", "/", true},
		{"GET", "/courses", true},
		{"GET", "/public/home", true},
		{"POST", "/", false},
		{"GET", "/admin/courses", false},
		{"GET", "/administrator", false},
		{"GET", "/auth/me", false},
		{"GET", "/favicon.ico", false},
		{"GET", "/uploads/a.png", false},
		{"GET", "/static/site.js", false},
		{"GET", "/console/login", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ShouldRecordVisit(tc.method, tc.path, excluded), "%s %s", tc.method, tc.path)
	}
}

func TestPageVisitMiddlewareRecordsAndContinues(t *testing.T) {
	rec := &fakeRecorder{}
	app := fiber.New()
	app.Use(PageVisit(rec, DefaultVisitExclusions))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Post("/*", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("User-Agent", "test-agent")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, r := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/admin/stats", nil),
		httptest.NewRequest(http.MethodPost, "/courses", nil),
	} {
		resp, err := app.Test(r)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.visits, 1)
	assert.Equal(t, "/courses", rec.visits[0].path)
	assert.Equal(t, "test-agent", rec.visits[0].ua)
	assert.NotEmpty(t, rec.visits[0].ip)
}

func TestPageVisitDefaultsUnknownUserAgent(t *testing.T) {
	rec := &fakeRecorder{}
	app := fiber.New()
	app.Use(PageVisit(rec, nil))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// an explicitly empty header stops net/http from adding its default agent
	req.Header.Set("User-Agent", "")
	_, err := app.Test(req)
	require.NoError(t, err)

	require.Len(t, rec.visits, 1)
	assert.Equal(t, "unknown", rec.visits[0].ua)
}
