package services

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/institute-site/model"
	"gorm.io/gorm"
)

// PosterFallbackMessage labels poster assets that have no title
const PosterFallbackMessage = "Announcement"

// NotificationService builds the public notification feed
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// ActiveNotifications returns stored notifications that are switched on, newest first
func (s *NotificationService) ActiveNotifications(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

// RecentPosters returns up to limit POSTER assets, newest first
func (s *NotificationService) RecentPosters(ctx context.Context, limit int) ([]model.Asset, error) {
	var posters []model.Asset
	if err := s.db.WithContext(ctx).
		Where("type = ?", model.AssetTypePoster).
		Order("created_at DESC").
		Limit(limit).
		Find(&posters).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch posters: %w", err)
	}
	return posters, nil
}

// PostersToNotifications maps poster assets onto notification-shaped records
func PostersToNotifications(posters []model.Asset) []model.Notification {
	out := make([]model.Notification, 0, len(posters))
	for _, p := range posters {
		message := p.Title
		if message == "" {
			message = PosterFallbackMessage
		}
		link := p.FileURL
		out = append(out, model.Notification{
			ID:        p.ID,
			Message:   message,
			Link:      &link,
			Type:      model.NotificationTypePoster,
			IsActive:  true,
			CreatedAt: p.CreatedAt,
		})
	}
	return out
}

// MergeNotifications puts poster entries ahead of genuine notifications, keeping both orders
func MergeNotifications(posters []model.Asset, notifications []model.Notification) []model.Notification {
	merged := PostersToNotifications(posters)
	return append(merged, notifications...)
}
