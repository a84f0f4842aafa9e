package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// VisitRecorder persists page visits without blocking the caller
type VisitRecorder interface {
	Record(path, ipAddress, userAgent string)
}

// DefaultVisitExclusions are path prefixes that never count as page visits
var DefaultVisitExclusions = []string{
	"/admin",
	"/auth",
	"/favicon.ico",
	"/assets",
	"/uploads",
	"/static",
	"/ping",
}

// ShouldRecordVisit reports whether a request counts as a public page visit
func ShouldRecordVisit(method, path string, excluded []string) bool {
	if method != fiber.MethodGet {
		return false
	}
	for _, prefix := range excluded {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// PageVisit hands qualifying GET requests to the recorder and always continues the chain
func PageVisit(recorder VisitRecorder, excluded []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if recorder != nil && ShouldRecordVisit(c.Method(), c.Path(), excluded) {
			userAgent := string(c.Request().Header.UserAgent())
			if userAgent == "" {
				userAgent = "unknown"
			}
			ip := c.IP()
			if ip == "" {
				ip = "unknown"
			}
			// copies: the recorder outlives this Ctx
			recorder.Record(strings.Clone(c.Path()), strings.Clone(ip), userAgent)
		}
		return c.Next()
	}
}
