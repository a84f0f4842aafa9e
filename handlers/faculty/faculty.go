package faculty

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/handlers/asset"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/middleware"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/utils/validation"
	"gorm.io/gorm"
)

// FacultyHandler handles faculty-related requests
type FacultyHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(db *gorm.DB) *FacultyHandler {
	return &FacultyHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateFacultyRequest represents the request body for creating a faculty profile
type CreateFacultyRequest struct {
	Name        string  `json:"name" validate:"notblank,max=255"`
	Designation string  `json:"designation" validate:"notblank,max=255"`
	Bio         *string `json:"bio"`
	Category    string  `json:"category" validate:"required,oneof=TEACHING LEADERSHIP"`
	PhotoURL    string  `json:"photoUrl" validate:"notblank"`
}

// UpdateFacultyRequest represents the request body for updating a faculty profile
type UpdateFacultyRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=255"`
	Designation *string `json:"designation" validate:"omitempty,notblank,max=255"`
	Bio         *string `json:"bio"`
	Category    *string `json:"category" validate:"omitempty,oneof=TEACHING LEADERSHIP"`
	PhotoURL    *string `json:"photoUrl"`
}

// ListFaculty handles GET /admin/faculty
func (h *FacultyHandler) ListFaculty(c *fiber.Ctx) error {
	faculty := []model.Faculty{}
	if err := h.db.WithContext(c.UserContext()).Preload("Photo").Order("created_at ASC").Find(&faculty).Error; err != nil {
		logger.Error().Err(err).Msg("failed to fetch faculty")
		return response.InternalServerError(c, "Failed to fetch faculty")
	}

	return response.Success(c, "faculty", faculty)
}

// photoAsset builds the FACULTY asset backing a profile photo
func photoAsset(c *fiber.Ctx, name, url string) *model.Asset {
	photo := &model.Asset{
		Title:    name,
		Type:     model.AssetTypeFaculty,
		FileURL:  url,
		MimeType: asset.ResolveMimeType("", url),
	}
	if admin := middleware.CurrentAdmin(c); admin != nil {
		photo.AdminID = &admin.ID
	}
	return photo
}

// CreateFaculty handles POST /admin/faculty. The photo asset and the profile are written together.
func (h *FacultyHandler) CreateFaculty(c *fiber.Ctx) error {
	var req CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, validation.Message(err))
	}

	faculty := model.Faculty{
		Name:        validation.SanitizeString(req.Name),
		Designation: validation.SanitizeString(req.Designation),
		Bio:         req.Bio,
		Category:    model.FacultyCategory(req.Category),
	}

	photo := photoAsset(c, faculty.Name, req.PhotoURL)

	err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(photo).Error; err != nil {
			return err
		}
		faculty.PhotoID = &photo.ID
		return tx.Omit("Photo").Create(&faculty).Error
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create faculty")
		return response.InternalServerError(c, "Failed to create faculty")
	}

	faculty.Photo = photo
	return response.Success(c, "faculty", faculty)
}

// UpdateFaculty handles PUT /admin/faculty/:id. A new photoUrl registers a new photo asset.
func (h *FacultyHandler) UpdateFaculty(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Faculty not found")
	}

	var req UpdateFacultyRequest
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
	if req.Designation != nil {
		updates["designation"] = validation.SanitizeString(*req.Designation)
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Category != nil {
		updates["category"] = model.FacultyCategory(*req.Category)
	}

	var faculty model.Faculty
	err := h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Photo").First(&faculty, "id = ?", c.Params("id")).Error; err != nil {
			return err
		}

		if req.PhotoURL != nil && *req.PhotoURL != "" && (faculty.Photo == nil || faculty.Photo.FileURL != *req.PhotoURL) {
			photo := photoAsset(c, faculty.Name, *req.PhotoURL)
			if err := tx.Create(photo).Error; err != nil {
				return err
			}
			updates["photo_id"] = photo.ID
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&faculty).Omit("Photo").Updates(updates).Error; err != nil {
			return err
		}
		return tx.Preload("Photo").First(&faculty, "id = ?", faculty.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		logger.Error().Err(err).Msg("failed to update faculty")
		return response.InternalServerError(c, "Failed to update faculty")
	}

	return response.Success(c, "faculty", faculty)
}

// DeleteFaculty handles DELETE /admin/faculty/:id. The photo asset is kept.
func (h *FacultyHandler) DeleteFaculty(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Faculty not found")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.Faculty{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("failed to delete faculty")
		return response.InternalServerError(c, "Failed to delete faculty")
	}

	if result.RowsAffected == 0 {
		return response.NotFound(c, "Faculty not found")
	}

	return response.OK(c)
}
