// Package site renders the server side pages: the public landing page and the admin console shell.
package site

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/services"
	"github.com/sahilchouksey/institute-site/utils/auth"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/middleware"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/web/carousel"
	"github.com/sahilchouksey/institute-site/web/popup"
)

const localsConsoleAdmin = "console_admin"

var popupIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// Config carries the page level settings
type Config struct {
	SiteTitle string
	// AdminRoute is the console mount point without slashes
	AdminRoute string
	// APIBaseURL prefixes console API calls; empty means same origin
	APIBaseURL string
	// WhatsApp is the contact number, digits only or with a leading +
	WhatsApp string
}

// SiteHandler renders HTML pages
type SiteHandler struct {
	home   *services.HomeService
	guard  *middleware.SessionGuard
	config Config
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(home *services.HomeService, guard *middleware.SessionGuard, config Config) *SiteHandler {
	if config.SiteTitle == "" {
		config.SiteTitle = "Institute"
	}
	config.AdminRoute = strings.Trim(config.AdminRoute, "/")
	if config.AdminRoute == "" {
		config.AdminRoute = "console"
	}
	config.APIBaseURL = strings.TrimRight(config.APIBaseURL, "/")
	return &SiteHandler{home: home, guard: guard, config: config}
}

// ConsoleBase is the absolute path of the console
func (h *SiteHandler) ConsoleBase() string {
	return "/" + h.config.AdminRoute
}

// WhatsAppLink builds the wa.me link for the configured number
func WhatsAppLink(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + url.PathEscape(digits)
}

// cookieSeenStore keeps dismissed popup ids in session cookies
type cookieSeenStore struct {
	c *fiber.Ctx
}

func (s cookieSeenStore) Seen(id string) bool {
	return s.c.Cookies(popup.SeenCookiePrefix+id) == "true"
}

func (s cookieSeenStore) MarkSeen(id string) {
	// no Expires: the marker lives as long as the browser session
	s.c.Cookie(&fiber.Cookie{
		Name:     popup.SeenCookiePrefix + id,
		Value:    "true",
		Path:     "/",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Home handles GET /
func (h *SiteHandler) Home(c *fiber.Ctx) error {
	data, err := h.home.GetHomeData(c.UserContext())
	if err != nil {
		logger.Error().Err(err).Msg("home page data failed")
		data = services.EmptyHomeData()
	}

	ctrl := popup.NewController(data.Notifications, cookieSeenStore{c: c})
	show := ctrl.Mount()

	return c.Render("home", fiber.Map{
		"Title":              h.config.SiteTitle,
		"Data":               data,
		"CarouselIntervalMs": carousel.Interval.Milliseconds(),
		"WhatsAppLink":       WhatsAppLink(h.config.WhatsApp),
		"ShowPopup":          show,
		"Popup":              ctrl.Items(),
		"PopupDelayMs":       popup.EntranceDelay.Milliseconds(),
		"PopupIntervalMs":    popup.RotateInterval.Milliseconds(),
	}, "layouts/main")
}

// MarkPopupSeen handles POST /popup/:id/seen
func (h *SiteHandler) MarkPopupSeen(c *fiber.Ctx) error {
	id := c.Params("id")
	if !popupIDPattern.MatchString(id) {
		return response.BadRequest(c, "Invalid popup id")
	}
	cookieSeenStore{c: c}.MarkSeen(id)
	return response.OK(c)
}

func (h *SiteHandler) consoleView(c *fiber.Ctx, view, title, active string, extra fiber.Map) error {
	bind := fiber.Map{
		"Title":       title,
		"APIBase":     h.config.APIBaseURL,
		"ConsoleBase": h.ConsoleBase(),
		"Active":      active,
		"Admin":       ConsoleAdmin(c),
	}
	if active != "" {
		bind["Screens"] = Screens
	}
	for k, v := range extra {
		bind[k] = v
	}
	return c.Render(view, bind, "layouts/console")
}

// RequireConsole sends visitors without a live session to the login page
func (h *SiteHandler) RequireConsole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, _, err := h.guard.Authenticate(c)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) {
				logger.Error().Err(err).Msg("console session lookup failed")
			}
			return c.Redirect(h.ConsoleBase() + "/login")
		}
		c.Locals(localsConsoleAdmin, admin)
		return c.Next()
	}
}

// ConsoleAdmin returns the admin stored by RequireConsole, or nil
func ConsoleAdmin(c *fiber.Ctx) *model.Admin {
	admin, _ := c.Locals(localsConsoleAdmin).(*model.Admin)
	return admin
}

// Login handles GET /<console>/login
func (h *SiteHandler) Login(c *fiber.Ctx) error {
	if _, _, err := h.guard.Authenticate(c); err == nil {
		return c.Redirect(h.ConsoleBase() + "/dashboard")
	}
	return h.consoleView(c, "console/login", "Login", "", nil)
}

// Root handles GET /<console>
func (h *SiteHandler) Root(c *fiber.Ctx) error {
	return c.Redirect(h.ConsoleBase() + "/dashboard")
}

// Dashboard handles GET /<console>/dashboard
func (h *SiteHandler) Dashboard(c *fiber.Ctx) error {
	return h.consoleView(c, "console/dashboard", "Dashboard", "dashboard", nil)
}

// Entity handles GET /<console>/:screen
func (h *SiteHandler) Entity(c *fiber.Ctx) error {
	screen, ok := FindScreen(c.Params("screen"))
	if !ok {
		return fiber.ErrNotFound
	}
	return h.consoleView(c, "console/entity", screen.Title, screen.Slug, fiber.Map{
		"Screen":     screen,
		"ScreenJSON": screen.JSON(),
	})
}

// Register mounts the page routes
func (h *SiteHandler) Register(app fiber.Router) {
	app.Get("/", h.Home)
	app.Post("/popup/:id/seen", h.MarkPopupSeen)

	console := app.Group(h.ConsoleBase())
	console.Get("/login", h.Login)

	guard := h.RequireConsole()
	console.Get("/", guard, h.Root)
	console.Get("/dashboard", guard, h.Dashboard)
	console.Get("/:screen", guard, h.Entity)
}
