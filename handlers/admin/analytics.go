package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/services"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
)

// GetDashboardStats returns visit analytics and content counts
// GET /admin/stats
func GetDashboardStats(c *fiber.Ctx, store database.Storage) error {
	db, err := gormDB(store)
	if err != nil {
		return err
	}

	stats, err := services.NewAnalyticsService(db).GetDashboardStats(c.UserContext())
	if err != nil {
		logger.Error().Err(err).Msg("failed to build dashboard stats")
		return response.InternalServerError(c, "Failed to load stats")
	}

	return response.Success(c, "stats", stats)
}
