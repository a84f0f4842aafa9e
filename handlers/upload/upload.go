package upload

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/services"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/utils/storage"
)

// MaxUploadSize bounds a single uploaded file
const MaxUploadSize = 10 * 1024 * 1024

// UploadHandler accepts media files from the console
type UploadHandler struct {
	uploads *services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload handles POST /admin/uploads (multipart field "file", optional "folder")
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "file is required")
	}

	if fileHeader.Size > MaxUploadSize {
		return response.BadRequest(c, "File exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Msg("failed to open upload")
		return response.InternalServerError(c, "Failed to read file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		logger.Error().Err(err).Msg("failed to read upload")
		return response.InternalServerError(c, "Failed to read file")
	}

	result, err := h.uploads.Upload(c.UserContext(), c.FormValue("folder"), data)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return response.BadRequest(c, "Only image files are allowed")
		}
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to store upload")
		return response.InternalServerError(c, "Upload failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"url":     result.URL,
		"file":    result,
	})
}
