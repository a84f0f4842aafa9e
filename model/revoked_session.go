package model

import (
	"time"
)

// RevokedSession stores the jti of session tokens invalidated by logout
type RevokedSession struct {
	JTI       string    `gorm:"type:varchar(64);primaryKey" json:"jti"`
	AdminID   string    `gorm:"type:uuid;index" json:"adminId"`
	Reason    string    `gorm:"type:varchar(50)" json:"reason"` // logout, manual_revoke
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for RevokedSession
func (RevokedSession) TableName() string {
	return "revoked_sessions"
}
