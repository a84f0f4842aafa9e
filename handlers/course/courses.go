package course

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/services"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/utils/validation"
	"gorm.io/gorm"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"notblank,max=255"`
	Description string `json:"description" validate:"notblank"`
}

// UpdateCourseRequest represents the request body for updating a course
type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=255"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	IsActive    *bool   `json:"isActive"`
}

// StatusRequest toggles isActive
type StatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// ListCourses handles GET /admin/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses := []model.Course{}
	if err := h.db.WithContext(c.UserContext()).Order("created_at DESC").Find(&courses).Error; err != nil {
		logger.Error().Err(err).Msg("failed to fetch courses")
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	if err := services.AttachBatchCounts(c.UserContext(), h.db, courses); err != nil {
		logger.Error().Err(err).Msg("failed to count batches")
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Success(c, "courses", courses)
}

// CreateCourse handles POST /admin/courses. New courses are always active.
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Title and description are required")
	}

	course := model.Course{
		Title:       validation.SanitizeString(req.Title),
		Description: validation.SanitizeString(req.Description),
		IsActive:    true,
	}

	if err := h.db.WithContext(c.UserContext()).Create(&course).Error; err != nil {
		logger.Error().Err(err).Msg("failed to create course")
		return response.InternalServerError(c, "Failed to create course")
	}

	course.Count = &model.CourseCount{}
	return response.Success(c, "course", course)
}

// UpdateCourse handles PUT /admin/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = validation.SanitizeString(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = validation.SanitizeString(*req.Description)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	return h.apply(c, updates)
}

// ToggleCourseStatus handles PATCH /admin/courses/:id/status
func (h *CourseHandler) ToggleCourseStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	return h.apply(c, map[string]interface{}{"is_active": *req.IsActive})
}

func (h *CourseHandler) apply(c *fiber.Ctx, updates map[string]interface{}) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Course not found")
	}

	db := h.db.WithContext(c.UserContext())

	var course model.Course
	if err := db.First(&course, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		logger.Error().Err(err).Msg("failed to fetch course")
		return response.InternalServerError(c, "Failed to update course")
	}

	if len(updates) > 0 {
		if err := db.Model(&course).Updates(updates).Error; err != nil {
			logger.Error().Err(err).Str("id", course.ID).Msg("failed to update course")
			return response.InternalServerError(c, "Failed to update course")
		}
	}

	counted := []model.Course{course}
	if err := services.AttachBatchCounts(c.UserContext(), h.db, counted); err != nil {
		logger.Error().Err(err).Str("id", course.ID).Msg("failed to count batches")
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.Success(c, "course", counted[0])
}

// DeleteCourse handles DELETE /admin/courses/:id. Batches of the course are left in place.
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Course not found")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.Course{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("failed to delete course")
		return response.InternalServerError(c, "Failed to delete course")
	}

	if result.RowsAffected == 0 {
		return response.NotFound(c, "Course not found")
	}

	return response.OK(c)
}
