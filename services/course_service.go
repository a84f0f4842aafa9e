package services

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/institute-site/model"
	"gorm.io/gorm"
)

// ActiveCourses returns active courses, newest first, with their batch counts
func ActiveCourses(ctx context.Context, db *gorm.DB) ([]model.Course, error) {
	var courses []model.Course
	if err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}

	if err := AttachBatchCounts(ctx, db, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// AttachBatchCounts fills Count.Batches on every course with one grouped query
func AttachBatchCounts(ctx context.Context, db *gorm.DB, courses []model.Course) error {
	if len(courses) == 0 {
		return nil
	}

	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}

	var rows []struct {
		CourseID string
		Total    int64
	}
	if err := db.WithContext(ctx).
		Model(&model.Batch{}).
		Select("course_id, COUNT(*) AS total").
		Where("course_id IN ?", ids).
		Group("course_id").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to count batches: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CourseID] = r.Total
	}

	for i := range courses {
		courses[i].Count = &model.CourseCount{Batches: counts[courses[i].ID]}
	}
	return nil
}
