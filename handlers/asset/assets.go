package asset

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/middleware"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/utils/storage"
	"github.com/sahilchouksey/institute-site/utils/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultMimeType is stored when neither the client nor the URL says otherwise
const DefaultMimeType = "image/jpeg"

// AssetHandler handles asset-related requests
type AssetHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(db *gorm.DB) *AssetHandler {
	return &AssetHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateAssetRequest represents the request body for registering an uploaded file
type CreateAssetRequest struct {
	Title         string  `json:"title" validate:"notblank,max=255"`
	URL           string  `json:"url" validate:"notblank"`
	Type          string  `json:"type" validate:"notblank"`
	MimeType      string  `json:"mimeType" validate:"omitempty,max=100"`
	Size          int64   `json:"size" validate:"gte=0"`
	Width         int     `json:"width" validate:"gte=0"`
	Height        int     `json:"height" validate:"gte=0"`
	CategoryGroup *string `json:"categoryGroup" validate:"omitempty,max=100"`
	SubCategory   *string `json:"subCategory" validate:"omitempty,max=100"`
	Rank          *string `json:"rank" validate:"omitempty,max=50"`
}

// UpdateAssetRequest represents the request body for updating an asset
type UpdateAssetRequest struct {
	Title         *string `json:"title" validate:"omitempty,notblank,max=255"`
	Type          *string `json:"type"`
	CategoryGroup *string `json:"categoryGroup" validate:"omitempty,max=100"`
	SubCategory   *string `json:"subCategory" validate:"omitempty,max=100"`
	Rank          *string `json:"rank" validate:"omitempty,max=50"`
}

// ListAssets handles GET /admin/assets
func (h *AssetHandler) ListAssets(c *fiber.Ctx) error {
	query := h.db.WithContext(c.UserContext()).Order("created_at DESC")
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	assets := []model.Asset{}
	if err := query.Find(&assets).Error; err != nil {
		logger.Error().Err(err).Msg("failed to fetch assets")
		return response.InternalServerError(c, "Failed to fetch assets")
	}

	return response.Success(c, "assets", assets)
}

// CreateAsset handles POST /admin/assets
func (h *AssetHandler) CreateAsset(c *fiber.Ctx) error {
	var req CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.BadRequest(c, "Missing required fields")
	}

	assetType := model.AssetType(req.Type)
	if !assetType.Valid() {
		return response.BadRequest(c, "Invalid asset type")
	}

	asset := model.Asset{
		Title:         validation.SanitizeString(req.Title),
		Type:          assetType,
		FileURL:       req.URL,
		MimeType:      ResolveMimeType(req.MimeType, req.URL),
		Size:          req.Size,
		CategoryGroup: req.CategoryGroup,
		SubCategory:   req.SubCategory,
		Rank:          req.Rank,
	}

	if req.Width > 0 || req.Height > 0 {
		meta, err := json.Marshal(model.AssetMetadata{Width: req.Width, Height: req.Height})
		if err == nil {
			asset.Metadata = datatypes.JSON(meta)
		}
	}

	if admin := middleware.CurrentAdmin(c); admin != nil {
		asset.AdminID = &admin.ID
	}

	if err := h.db.WithContext(c.UserContext()).Create(&asset).Error; err != nil {
		logger.Error().Err(err).Msg("failed to save asset")
		return response.InternalServerError(c, "Failed to save asset")
	}

	return response.Success(c, "asset", asset)
}

// ResolveMimeType prefers the client value, then the URL extension, then DefaultMimeType
func ResolveMimeType(declared, url string) string {
	if declared != "" {
		return declared
	}
	if guessed := storage.ContentTypeFor(url); guessed != "" {
		return guessed
	}
	return DefaultMimeType
}

// UpdateAsset handles PUT /admin/assets/:id
func (h *AssetHandler) UpdateAsset(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Asset not found")
	}

	var req UpdateAssetRequest
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
	if req.Type != nil {
		t := model.AssetType(*req.Type)
		if !t.Valid() {
			return response.BadRequest(c, "Invalid asset type")
		}
		updates["type"] = t
	}
	if req.CategoryGroup != nil {
		updates["category_group"] = *req.CategoryGroup
	}
	if req.SubCategory != nil {
		updates["sub_category"] = *req.SubCategory
	}
	if req.Rank != nil {
		updates["rank"] = *req.Rank
	}

	db := h.db.WithContext(c.UserContext())

	var asset model.Asset
	if err := db.First(&asset, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		logger.Error().Err(err).Msg("failed to fetch asset")
		return response.InternalServerError(c, "Update failed")
	}

	if len(updates) > 0 {
		if err := db.Model(&asset).Updates(updates).Error; err != nil {
			logger.Error().Err(err).Str("id", asset.ID).Msg("failed to update asset")
			return response.InternalServerError(c, "Update failed")
		}
	}

	return response.Success(c, "asset", asset)
}

// DeleteAsset handles DELETE /admin/assets/:id. The stored file and any faculty photo reference are left alone.
func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {
	if !validation.IsUUID(c.Params("id")) {
		return response.NotFound(c, "Asset not found")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.Asset{}, "id = ?", c.Params("id"))
	if result.Error != nil {
		logger.Error().Err(result.Error).Msg("failed to delete asset")
		return response.InternalServerError(c, "Delete failed")
	}

	if result.RowsAffected == 0 {
		return response.NotFound(c, "Asset not found")
	}

	return response.OK(c)
}
