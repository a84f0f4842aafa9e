package notification

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/utils/validation"
	"gorm.io/gorm"
)

// NotificationHandler handles notification-related admin endpoints
type NotificationHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateNotificationRequest represents the request body for creating a notification
type CreateNotificationRequest struct {
	Message  string  `json:"message" validate:"notblank"`
	Link     *string `json:"link"`
	Type     string  `json:"type" validate:"omitempty,oneof=ANNOUNCEMENT POPUP"`
	IsActive *bool   `json:"isActive"`
}

// UpdateNotificationRequest represents the request body for updating a notification
type UpdateNotificationRequest struct {
	Message  *string `json:"message" validate:"omitempty,notblank"`
	Link     *string `json:"link"`
	Type     *string `json:"type" validate:"omitempty,oneof=ANNOUNCEMENT POPUP"`
	IsActive *bool   `json:"isActive"`
}

// ToggleRequest sets isActive, or flips it when omitted
type ToggleRequest struct {
	IsActive *bool `json:"isActive"`
}

// GetNotifications handles GET /admin/notifications
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	notifications := []model.Notification{}
	if err := h.db.WithContext(c.UserContext()).Order("created_at DESC").Find(&notifications).Error; err != nil {
		logger.Error().Err(err).Msg("failed to fetch notifications")
		return response.InternalServerError(c, "Failed to fetch notifications")
	}

	return response.Success(c, "notifications", notifications)
}

// CreateNotification handles POST /admin/notifications
func (h *NotificationHandler) CreateNotification(c *fiber.Ctx) error {
	var req CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	notification := model.Notification{
		Message:  validation.SanitizeString(req.Message),
		Link:     blankToNil(req.Link),
		Type:     model.NotificationTypeAnnouncement,
		IsActive: true,
	}
	if req.Type != "" {
		notification.Type = model.NotificationType(req.Type)
	}
	if req.IsActive != nil {
		notification.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.UserContext()).Create(&notification).Error; err != nil {
		logger.Error().Err(err).Msg("failed to create notification")
		return response.InternalServerError(c, "Failed to create notification")
	}

	return response.Success(c, "notification", notification)
}

// UpdateNotification handles PUT /admin/notifications/:id
func (h *NotificationHandler) UpdateNotification(c *fiber.Ctx) error {
	var req UpdateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	updates := map[string]interface{}{}
	if req.Message != nil {
		updates["message"] = validation.SanitizeString(*req.Message)
	}
	if req.Link != nil {
		updates["link"] = blankToNil(req.Link)
	}
	if req.Type != nil {
		updates["type"] = model.NotificationType(*req.Type)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	return h.apply(c, func(model.Notification) map[string]interface{} { return updates })
}

// ToggleNotification handles PATCH /admin/notifications/:id
func (h *NotificationHandler) ToggleNotification(c *fiber.Ctx) error {
	var req ToggleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	return h.apply(c, func(current model.Notification) map[string]interface{} {
		next := !current.IsActive
		if req.IsActive != nil {
			next = *req.IsActive
		}
		return map[string]interface{}{"is_active": next}
	})
}

func (h *NotificationHandler) apply(c *fiber.Ctx, changes func(model.Notification) map[string]interface{}) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Notification not found")
	}

	db := h.db.WithContext(c.UserContext())

	var notification model.Notification
	if err := db.First(&notification, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		logger.Error().Err(err).Msg("failed to fetch notification")
		return response.InternalServerError(c, "Failed to update notification")
	}

	if updates := changes(notification); len(updates) > 0 {
		if err := db.Model(&notification).Updates(updates).Error; err != nil {
			logger.Error().Err(err).Str("id", notification.ID).Msg("failed to update notification")
			return response.InternalServerError(c, "Failed to update notification")
		}
	}

	return response.Success(c, "notification", notification)
}

// DeleteNotification handles DELETE /admin/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Notification not found")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.Notification{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("failed to delete notification")
		return response.InternalServerError(c, "Failed to delete notification")
	}

	if result.RowsAffected == 0 {
		return response.NotFound(c, "Notification not found")
	}

	return response.OK(c)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := validation.SanitizeString(*s)
	if v == "" {
		return nil
	}
	return &v
}
