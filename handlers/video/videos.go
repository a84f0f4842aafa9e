package video

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/utils/validation"
	"gorm.io/gorm"
)

var youtubeID = regexp.MustCompile(`(?i)(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?|shorts)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractYouTubeID returns the 11 character video id of watch, embed, shorts and youtu.be URLs
func ExtractYouTubeID(url string) (string, bool) {
	m := youtubeID.FindStringSubmatch(url)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// VideoHandler handles video-related requests
type VideoHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(db *gorm.DB) *VideoHandler {
	return &VideoHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateVideoRequest represents the request body for creating a video
type CreateVideoRequest struct {
	Title       string  `json:"title" validate:"notblank,max=255"`
	VideoURL    string  `json:"videoUrl" validate:"notblank"`
	Description *string `json:"description"`
	Category    string  `json:"category" validate:"omitempty,oneof=STUDENT_STORY ACHIEVEMENT ALUMNI INSTITUTE FACULTY"`
	Type        string  `json:"type" validate:"omitempty,oneof=LONG_FORM SHORT"`
}

// UpdateVideoRequest represents the request body for updating a video
type UpdateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=255"`
	VideoURL    *string `json:"videoUrl" validate:"omitempty,notblank"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,oneof=STUDENT_STORY ACHIEVEMENT ALUMNI INSTITUTE FACULTY"`
	Type        *string `json:"type" validate:"omitempty,oneof=LONG_FORM SHORT"`
}

// ListVideos handles GET /admin/videos and GET /public/videos, optionally filtered by ?type=
func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	query := h.db.WithContext(c.UserContext()).Order("created_at DESC")
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	videos := []model.Video{}
	if err := query.Find(&videos).Error; err != nil {
		logger.Error().Err(err).Msg("failed to fetch videos")
		return response.InternalServerError(c, "Failed to fetch videos")
	}

	return response.Success(c, "videos", videos)
}

func applySource(v *model.Video, url string) {
	v.VideoURL = url
	if id, ok := ExtractYouTubeID(url); ok {
		v.ExternalID = &id
		v.Platform = model.VideoPlatformYouTube
		return
	}
	v.ExternalID = nil
	v.Platform = model.VideoPlatformOther
}

// CreateVideo handles POST /admin/videos
func (h *VideoHandler) CreateVideo(c *fiber.Ctx) error {
	var req CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	video := model.Video{
		Title:       validation.SanitizeString(req.Title),
		Description: req.Description,
		Category:    model.VideoCategoryInstitute,
		Type:        model.VideoTypeLongForm,
	}
	if req.Category != "" {
		video.Category = model.VideoCategory(req.Category)
	}
	if req.Type != "" {
		video.Type = model.VideoType(req.Type)
	}
	applySource(&video, validation.SanitizeString(req.VideoURL))

	if err := h.db.WithContext(c.UserContext()).Create(&video).Error; err != nil {
		logger.Error().Err(err).Msg("failed to create video")
		return response.InternalServerError(c, "Failed to create video")
	}

	return response.Success(c, "video", video)
}

// UpdateVideo handles PUT /admin/videos/:id
func (h *VideoHandler) UpdateVideo(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Video not found")
	}

	var req UpdateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	db := h.db.WithContext(c.UserContext())

	var video model.Video
	if err := db.First(&video, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Video not found")
		}
		logger.Error().Err(err).Msg("failed to fetch video")
		return response.InternalServerError(c, "Failed to update video")
	}

	if req.Title != nil {
		video.Title = validation.SanitizeString(*req.Title)
	}
	if req.Description != nil {
		video.Description = req.Description
	}
	if req.Category != nil {
		video.Category = model.VideoCategory(*req.Category)
	}
	if req.Type != nil {
		video.Type = model.VideoType(*req.Type)
	}
	if req.VideoURL != nil {
		applySource(&video, validation.SanitizeString(*req.VideoURL))
	}

	if err := db.Save(&video).Error; err != nil {
		logger.Error().Err(err).Str("id", video.ID).Msg("failed to update video")
		return response.InternalServerError(c, "Failed to update video")
	}

	return response.Success(c, "video", video)
}

// DeleteVideo handles DELETE /admin/videos/:id
func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Video not found")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.Video{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("failed to delete video")
		return response.InternalServerError(c, "Failed to delete video")
	}

	if result.RowsAffected == 0 {
		return response.NotFound(c, "Video not found")
	}

	return response.OK(c)
}
