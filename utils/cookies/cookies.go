// Package cookies owns the admin session cookie. Setting and clearing share one attribute set
// so browsers treat them as the same cookie.
package cookies

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const SessionCookieName = "session"

// DefaultSessionMaxAge matches the session token lifetime
const DefaultSessionMaxAge = 7 * 24 * time.Hour

func sessionCookie(value string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}

// SetSession writes the session token cookie
func SetSession(c *fiber.Ctx, token string, maxAge time.Duration) {
	if maxAge <= 0 {
		maxAge = DefaultSessionMaxAge
	}
	cookie := sessionCookie(token)
	cookie.MaxAge = int(maxAge.Seconds())
	cookie.Expires = time.Now().Add(maxAge)
	c.Cookie(cookie)
}

// ClearSession expires the session cookie using the same attributes it was set with
func ClearSession(c *fiber.Ctx) {
	cookie := sessionCookie("")
	cookie.Expires = time.Unix(0, 0)
	c.Cookie(cookie)
}

// Session returns the raw session token sent by the browser
func Session(c *fiber.Ctx) string {
	return c.Cookies(SessionCookieName)
}
