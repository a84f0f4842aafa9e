package batch

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/utils/validation"
	"gorm.io/gorm"
)

// BatchHandler handles batch-related requests
type BatchHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(db *gorm.DB) *BatchHandler {
	return &BatchHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateBatchRequest represents the request body for creating a batch
type CreateBatchRequest struct {
	Name      string  `json:"name" validate:"notblank,max=255"`
	CourseID  string  `json:"courseId" validate:"notblank"`
	StartDate string  `json:"startDate" validate:"notblank"`
	EndDate   *string `json:"endDate"`
}

// UpdateBatchRequest represents the request body for updating a batch
type UpdateBatchRequest struct {
	Name      *string `json:"name" validate:"omitempty,notblank,max=255"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	IsActive  *bool   `json:"isActive"`
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

func withCourse(db *gorm.DB) *gorm.DB {
	return db.Preload("Course", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "title")
	})
}

// ListBatches handles GET /admin/batches
func (h *BatchHandler) ListBatches(c *fiber.Ctx) error {
	batches := []model.Batch{}
	if err := withCourse(h.db.WithContext(c.UserContext())).Order("start_date DESC").Find(&batches).Error; err != nil {
		logger.Error().Err(err).Msg("failed to fetch batches")
		return response.InternalServerError(c, "Failed to fetch batches")
	}

	return response.Success(c, "batches", batches)
}

// CreateBatch handles POST /admin/batches
func (h *BatchHandler) CreateBatch(c *fiber.Ctx) error {
	var req CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Name, Course, and Start Date are required")
	}

	startDate, err := ParseDate(req.StartDate)
	if err != nil {
		return response.BadRequest(c, "startDate must be a date (YYYY-MM-DD)")
	}

	batch := model.Batch{
		Name:      validation.SanitizeString(req.Name),
		CourseID:  req.CourseID,
		StartDate: startDate,
		IsActive:  true,
	}

	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := ParseDate(*req.EndDate)
		if err != nil {
			return response.BadRequest(c, "endDate must be a date (YYYY-MM-DD)")
		}
		batch.EndDate = &endDate
	}

	db := h.db.WithContext(c.UserContext())

	if !validation.IsUUID(req.CourseID) {
		return response.BadRequest(c, "Course not found")
	}

	var course model.BatchCourse
	if err := db.Select("id", "title").First(&course, "id = ?", req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BadRequest(c, "Course not found")
		}
		logger.Error().Err(err).Msg("failed to verify course")
		return response.InternalServerError(c, "Failed to create batch")
	}

	if err := db.Omit("Course").Create(&batch).Error; err != nil {
		logger.Error().Err(err).Msg("failed to create batch")
		return response.InternalServerError(c, "Failed to create batch")
	}

	batch.Course = &course
	return response.Success(c, "batch", batch)
}

// UpdateBatch handles PUT /admin/batches/:id
func (h *BatchHandler) UpdateBatch(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Batch not found")
	}

	var req UpdateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = validation.SanitizeString(*req.Name)
	}
	if req.StartDate != nil && *req.StartDate != "" {
		startDate, err := ParseDate(*req.StartDate)
		if err != nil {
			return response.BadRequest(c, "startDate must be a date (YYYY-MM-DD)")
		}
		updates["start_date"] = startDate
	}
	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := ParseDate(*req.EndDate)
		if err != nil {
			return response.BadRequest(c, "endDate must be a date (YYYY-MM-DD)")
		}
		updates["end_date"] = endDate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	db := h.db.WithContext(c.UserContext())

	var batch model.Batch
	if err := db.First(&batch, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Batch not found")
		}
		logger.Error().Err(err).Msg("failed to fetch batch")
		return response.InternalServerError(c, "Failed to update batch")
	}

	if len(updates) > 0 {
		if err := db.Model(&batch).Updates(updates).Error; err != nil {
			logger.Error().Err(err).Str("id", batch.ID).Msg("failed to update batch")
			return response.InternalServerError(c, "Failed to update batch")
		}
	}

	if err := withCourse(db).First(&batch, "id = ?", batch.ID).Error; err != nil {
		logger.Error().Err(err).Str("id", batch.ID).Msg("failed to reload batch")
		return response.InternalServerError(c, "Failed to update batch")
	}

	return response.Success(c, "batch", batch)
}

// DeleteBatch handles DELETE /admin/batches/:id
func (h *BatchHandler) DeleteBatch(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Batch not found")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.Batch{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("failed to delete batch")
		return response.InternalServerError(c, "Failed to delete batch")
	}

	if result.RowsAffected == 0 {
		return response.NotFound(c, "Batch not found")
	}

	return response.OK(c)
}
