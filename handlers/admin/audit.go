package admin

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/utils/validation"
	"gorm.io/gorm"
)

// ListAuditLogs retrieves admin audit logs with pagination
// GET /admin/audit-logs
func ListAuditLogs(c *fiber.Ctx, store database.Storage) error {
	db, err := gormDB(store)
	if err != nil {
		return err
	}

	// Pagination
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	// Filters
	query := db.WithContext(c.UserContext()).Model(&model.AdminAuditLog{})
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if resource := c.Query("resource"); resource != "" {
		query = query.Where("resource = ?", resource)
	}
	if adminID := c.Query("adminId"); adminID != "" {
		query = query.Where("admin_id = ?", adminID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch audit logs")
	}

	logs := []model.AdminAuditLog{}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch audit logs")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"logs":    logs,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetAuditLog retrieves a specific audit log entry
// GET /admin/audit-logs/:id
func GetAuditLog(c *fiber.Ctx, store database.Storage) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Audit log not found")
	}

	db, err := gormDB(store)
	if err != nil {
		return err
	}

	var entry model.AdminAuditLog
	if err := db.WithContext(c.UserContext()).First(&entry, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Audit log not found")
		}
		return response.InternalServerError(c, "Failed to fetch audit log")
	}

	return response.Success(c, "log", entry)
}

// ListCronLogs returns the latest background job runs
// GET /admin/cron-logs
func ListCronLogs(c *fiber.Ctx, store database.Storage) error {
	db, err := gormDB(store)
	if err != nil {
		return err
	}

	query := db.WithContext(c.UserContext()).Order("started_at DESC").Limit(50)
	if job := c.Query("job"); job != "" {
		query = query.Where("job_name = ?", job)
	}

	logs := []model.CronJobLog{}
	if err := query.Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch cron logs")
	}

	return response.Success(c, "logs", logs)
}
