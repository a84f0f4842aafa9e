package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/response"
)

// ListAdmins returns console accounts. Password hashes never leave the model.
// GET /admin/admins
func ListAdmins(c *fiber.Ctx, store database.Storage) error {
	db, err := gormDB(store)
	if err != nil {
		return err
	}

	admins := []model.Admin{}
	if err := db.WithContext(c.UserContext()).Order("created_at ASC").Find(&admins).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch admins")
	}

	return response.Success(c, "admins", admins)
}
