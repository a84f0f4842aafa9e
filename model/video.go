package model

import (
	"time"

	"gorm.io/gorm"
)

type VideoType string

const (
	VideoTypeLongForm VideoType = "LONG_FORM"
	VideoTypeShort    VideoType = "SHORT"
)

type VideoCategory string

const (
	VideoCategoryStudentStory VideoCategory = "STUDENT_STORY"
	VideoCategoryAchievement  VideoCategory = "ACHIEVEMENT"
	VideoCategoryAlumni       VideoCategory = "ALUMNI"
	VideoCategoryInstitute    VideoCategory = "INSTITUTE"
	VideoCategoryFaculty      VideoCategory = "FACULTY"
)

const (
	VideoPlatformYouTube = "YOUTUBE"
	VideoPlatformOther   = "OTHER"
)

// Video is an embedded testimonial, short or long-form clip
type Video struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	VideoURL    string        `gorm:"type:text;not null" json:"videoUrl"`
	ExternalID  *string       `gorm:"type:varchar(64)" json:"externalId"`
	Description *string       `gorm:"type:text" json:"description"`
	Category    VideoCategory `gorm:"type:varchar(30);not null" json:"category"`
	Type        VideoType     `gorm:"type:varchar(20);not null;index" json:"type"`
	Platform    string        `gorm:"type:varchar(20);not null" json:"platform"`
	CreatedAt   time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	v.ID = newID(v.ID)
	return nil
}
