package model

import (
	"time"

	"gorm.io/gorm"
)

// AdminAuditLog represents audit trail for admin mutations
type AdminAuditLog struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID     string    `gorm:"type:uuid;not null;index" json:"adminId"`
	Action      string    `gorm:"type:varchar(20);not null" json:"action"`   // create, update, delete
	Resource    string    `gorm:"type:varchar(50);not null" json:"resource"` // e.g., "courses", "assets"
	ResourceID  string    `gorm:"type:varchar(64)" json:"resourceId"`
	NewValue    string    `gorm:"type:text" json:"newValue"`
	Status      int       `json:"status"`
	IPAddress   string    `gorm:"type:varchar(64)" json:"ipAddress"`
	UserAgent   string    `gorm:"type:text" json:"userAgent"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for AdminAuditLog
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}

func (l *AdminAuditLog) BeforeCreate(tx *gorm.DB) error {
	l.ID = newID(l.ID)
	return nil
}
