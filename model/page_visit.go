package model

import (
	"time"

	"gorm.io/gorm"
)

// PageVisit is one recorded public page view
type PageVisit struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Path      string    `gorm:"type:text;not null;index" json:"path"`
	IPAddress string    `gorm:"type:varchar(64)" json:"ipAddress"`
	UserAgent string    `gorm:"type:text" json:"userAgent"`
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
}

func (v *PageVisit) BeforeCreate(tx *gorm.DB) error {
	v.ID = newID(v.ID)
	return nil
}
