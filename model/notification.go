package model

import (
	"time"

	"gorm.io/gorm"
)

// NotificationType decides where a notification surfaces
type NotificationType string

const (
	NotificationTypeAnnouncement NotificationType = "ANNOUNCEMENT"
	NotificationTypePopup        NotificationType = "POPUP"
	// NotificationTypePoster is never stored, it marks notifications synthesized from poster assets
	NotificationTypePoster NotificationType = "POSTER"
)

// Notification represents a site announcement or popup
type Notification struct {
	ID        string           `gorm:"type:uuid;primaryKey" json:"id"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Link      *string          `gorm:"type:text" json:"link"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	IsActive  bool             `gorm:"not null;index" json:"isActive"`
	CreatedAt time.Time        `gorm:"index" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	n.ID = newID(n.ID)
	return nil
}
