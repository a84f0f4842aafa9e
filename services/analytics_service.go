package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/institute-site/model"
	"gorm.io/gorm"
)

// AnalyticsService handles visit analytics for the admin dashboard
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		db:  db,
		now: time.Now,
	}
}

// ContentCounts is the number of stored records per content type
type ContentCounts struct {
	Courses       int64 `json:"courses"`
	ActiveCourses int64 `json:"activeCourses"`
	Batches       int64 `json:"batches"`
	Faculty       int64 `json:"faculty"`
	Assets        int64 `json:"assets"`
	Notifications int64 `json:"notifications"`
	Videos        int64 `json:"videos"`
}

// TimeSeriesPoint represents a data point in time series
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// TopPage is a path with its visit count
type TopPage struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// DashboardStats represents the admin dashboard numbers
type DashboardStats struct {
	TotalVisits int64             `json:"totalVisits"`
	VisitsToday int64             `json:"visitsToday"`
	VisitsWeek  int64             `json:"visitsLast7Days"`
	Daily       []TimeSeriesPoint `json:"daily"`
	TopPages    []TopPage         `json:"topPages"`
	Content     ContentCounts     `json:"content"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

const statsDays = 7

// GetDashboardStats retrieves visit and content statistics
func (s *AnalyticsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	now := s.now()
	stats := &DashboardStats{GeneratedAt: now}

	if err := db.Model(&model.PageVisit{}).Count(&stats.TotalVisits).Error; err != nil {
		return nil, fmt.Errorf("failed to count visits: %w", err)
	}

	daily, err := s.DailyVisits(ctx, statsDays)
	if err != nil {
		return nil, err
	}
	stats.Daily = daily
	for _, p := range daily {
		stats.VisitsWeek += p.Count
	}
	if len(daily) > 0 {
		stats.VisitsToday = daily[len(daily)-1].Count
	}

	if stats.TopPages, err = s.TopPages(ctx, 5); err != nil {
		return nil, err
	}

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&model.Course{}), &stats.Content.Courses},
		{db.Model(&model.Course{}).Where("is_active = ?", true), &stats.Content.ActiveCourses},
		{db.Model(&model.Batch{}), &stats.Content.Batches},
		{db.Model(&model.Faculty{}), &stats.Content.Faculty},
		{db.Model(&model.Asset{}), &stats.Content.Assets},
		{db.Model(&model.Notification{}), &stats.Content.Notifications},
		{db.Model(&model.Video{}), &stats.Content.Videos},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count content: %w", err)
		}
	}

	return stats, nil
}

// DailyVisits returns one point per day for the last `days` days, oldest first, today last.
// Bucketing happens in Go so the query stays portable across databases.
func (s *AnalyticsService) DailyVisits(ctx context.Context, days int) ([]TimeSeriesPoint, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(days - 1))

	var visits []model.PageVisit
	if err := s.db.WithContext(ctx).
		Select("created_at").
		Where("created_at >= ?", start).
		Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch visits: %w", err)
	}

	points := make([]TimeSeriesPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		points[i].Date = date
		index[date] = i
	}

	for _, v := range visits {
		if i, ok := index[v.CreatedAt.In(now.Location()).Format("2006-01-02")]; ok {
			points[i].Count++
		}
	}

	return points, nil
}

// TopPages returns the most visited paths
func (s *AnalyticsService) TopPages(ctx context.Context, limit int) ([]TopPage, error) {
	pages := []TopPage{}
	if err := s.db.WithContext(ctx).
		Model(&model.PageVisit{}).
		Select("path, COUNT(*) AS count").
		Group("path").
		Order("count DESC, path ASC").
		Limit(limit).
		Scan(&pages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch top pages: %w", err)
	}
	return pages, nil
}
