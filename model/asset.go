package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssetType classifies an uploaded file by where the site shows it
type AssetType string

const (
	AssetTypeGallery AssetType = "GALLERY"
	AssetTypeResult  AssetType = "RESULT"
	AssetTypeBanner  AssetType = "BANNER"
	AssetTypePoster  AssetType = "POSTER"
	AssetTypeImage   AssetType = "IMAGE"
	AssetTypeFaculty AssetType = "FACULTY"
)

// Valid reports whether t is one of the known asset types
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeGallery, AssetTypeResult, AssetTypeBanner, AssetTypePoster, AssetTypeImage, AssetTypeFaculty:
		return true
	}
	return false
}

// Asset represents an uploaded media file referenced by URL
type Asset struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Type          AssetType      `gorm:"type:varchar(20);not null;index" json:"type"`
	FileURL       string         `gorm:"type:text;not null" json:"fileUrl"`
	MimeType      string         `gorm:"type:varchar(100);not null" json:"mimeType"`
	Size          int64          `gorm:"not null" json:"size"`
	CategoryGroup *string        `gorm:"type:varchar(100)" json:"categoryGroup"`
	SubCategory   *string        `gorm:"type:varchar(100)" json:"subCategory"`
	Rank          *string        `gorm:"type:varchar(50)" json:"rank"`
	Metadata      datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	AdminID       *string        `gorm:"type:uuid;index" json:"adminId"`
	CreatedAt     time.Time      `gorm:"index" json:"createdAt"`
}

// AssetMetadata is the shape stored in Asset.Metadata
type AssetMetadata struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	a.ID = newID(a.ID)
	return nil
}
