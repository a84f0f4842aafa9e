package model

import (
	"time"

	"gorm.io/gorm"
)

const AdminRoleAdmin = "ADMIN"

// Admin represents a back-office operator
type Admin struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string    `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	a.ID = newID(a.ID)
	if a.Role == "" {
		a.Role = AdminRoleAdmin
	}
	return nil
}
