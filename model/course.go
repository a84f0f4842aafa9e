package model

import (
	"time"

	"gorm.io/gorm"
)

// Course represents a program offered by the institute (e.g., JEE Foundation, NEET Crash)
type Course struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	IsActive    bool      `gorm:"not null;index" json:"isActive"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Computed on read, never stored
	Count *CourseCount `gorm:"-" json:"_count,omitempty"`
}

// CourseCount carries relation counts attached to a course listing
type CourseCount struct {
	Batches int64 `json:"batches"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	c.ID = newID(c.ID)
	return nil
}

// Batch represents a dated intake of a course
type Batch struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	CourseID  string     `gorm:"type:uuid;not null;index" json:"courseId"`
	StartDate time.Time  `gorm:"not null;index" json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	IsActive  bool       `gorm:"not null" json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`

	// Relationships (no DB constraint, batches outlive their course)
	Course *BatchCourse `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (b *Batch) BeforeCreate(tx *gorm.DB) error {
	b.ID = newID(b.ID)
	return nil
}

// BatchCourse is the slim course projection preloaded onto batches
type BatchCourse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TableName specifies the table name for BatchCourse
func (BatchCourse) TableName() string {
	return "courses"
}
