package model

import (
	"time"

	"gorm.io/gorm"
)

// FacultyCategory splits staff between the teaching and leadership sections
type FacultyCategory string

const (
	FacultyCategoryTeaching   FacultyCategory = "TEACHING"
	FacultyCategoryLeadership FacultyCategory = "LEADERSHIP"
)

// Faculty represents a staff member shown on the site
type Faculty struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Designation string          `gorm:"type:varchar(255);not null" json:"designation"`
	Bio         *string         `gorm:"type:text" json:"bio"`
	Category    FacultyCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	PhotoID     *string         `gorm:"type:uuid" json:"photoId"`
	CreatedAt   time.Time       `gorm:"index" json:"createdAt"`

	// Relationships (photo may dangle after its asset is deleted)
	Photo *Asset `gorm:"foreignKey:PhotoID" json:"photo"`
}

func (f *Faculty) BeforeCreate(tx *gorm.DB) error {
	f.ID = newID(f.ID)
	return nil
}
