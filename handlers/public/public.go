package public

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/services"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
)

// PublicHandler serves unauthenticated site data
type PublicHandler struct {
	home *services.HomeService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(home *services.HomeService) *PublicHandler {
	return &PublicHandler{home: home}
}

// GetHomeData handles GET /public/home
func (h *PublicHandler) GetHomeData(c *fiber.Ctx) error {
	data, err := h.home.GetHomeData(c.UserContext())
	if err != nil {
		logger.Error().Err(err).Msg("public home data failed")
		return response.InternalServerError(c, "Failed to load homepage data")
	}

	return response.Success(c, "data", data)
}
