package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/cache"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	HomeCacheKey        = "public:home"
	HomeCacheVersionKey = "public:home:version"

	homeBannerLimit  = 5
	homeGalleryLimit = 10
	homeResultLimit  = 10
	homePosterLimit  = 5
)

// HomeData is the payload of the public landing page
type HomeData struct {
	Courses       []model.Course       `json:"courses"`
	Faculty       []model.Faculty      `json:"faculty"`
	Leadership    []model.Faculty      `json:"leadership"`
	Notifications []model.Notification `json:"notifications"`
	Banners       []model.Asset        `json:"banners"`
	Gallery       []model.Asset        `json:"gallery"`
	Results       []model.Asset        `json:"results"`
}

// EmptyHomeData is what pages render when the aggregation fails
func EmptyHomeData() *HomeData {
	return &HomeData{
		Courses:       []model.Course{},
		Faculty:       []model.Faculty{},
		Leadership:    []model.Faculty{},
		Notifications: []model.Notification{},
		Banners:       []model.Asset{},
		Gallery:       []model.Asset{},
		Results:       []model.Asset{},
	}
}

// HomeService aggregates everything the landing page shows
type HomeService struct {
	db            *gorm.DB
	notifications *NotificationService
	cache         *cache.RedisCache
	ttl           time.Duration
}

// NewHomeService creates a home service. redisCache may be nil, and ttl <= 0 disables caching.
func NewHomeService(db *gorm.DB, redisCache *cache.RedisCache, ttl time.Duration) *HomeService {
	return &HomeService{
		db:            db,
		notifications: NewNotificationService(db),
		cache:         redisCache,
		ttl:           ttl,
	}
}

func (s *HomeService) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

// cacheKey returns the payload key for the current generation. Invalidate bumps the
// generation, so a payload computed before an invalidation is written under a key
// nobody reads anymore.
func (s *HomeService) cacheKey(ctx context.Context) (string, error) {
	version, err := s.cache.Get(ctx, HomeCacheVersionKey)
	if errors.Is(err, cache.ErrNotFound) {
		version, err = "0", nil
	}
	if err != nil {
		return "", err
	}
	return HomeCacheKey + ":" + version, nil
}

// GetHomeData runs the independent queries concurrently. Any failure fails the whole payload.
func (s *HomeService) GetHomeData(ctx context.Context) (*HomeData, error) {
	var key string
	if s.cacheEnabled() {
		var err error
		key, err = s.cacheKey(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("home cache read failed")
		}
	}

	if key != "" {
		var cached HomeData
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			logger.Warn().Err(err).Msg("home cache read failed")
		}
	}

	var (
		courses       []model.Course
		faculty       []model.Faculty
		notifications []model.Notification
		banners       []model.Asset
		gallery       []model.Asset
		results       []model.Asset
		posters       []model.Asset
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		courses, err = ActiveCourses(gctx, s.db)
		return err
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Preload("Photo").Order("created_at ASC").Find(&faculty).Error
	})
	g.Go(func() error {
		var err error
		notifications, err = s.notifications.ActiveNotifications(gctx)
		return err
	})
	g.Go(func() error {
		return s.assetsOfType(gctx, model.AssetTypeBanner, homeBannerLimit, &banners)
	})
	g.Go(func() error {
		return s.assetsOfType(gctx, model.AssetTypeGallery, homeGalleryLimit, &gallery)
	})
	g.Go(func() error {
		return s.assetsOfType(gctx, model.AssetTypeResult, homeResultLimit, &results)
	})
	g.Go(func() error {
		var err error
		posters, err = s.notifications.RecentPosters(gctx, homePosterLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load home data: %w", err)
	}

	teaching, leadership := PartitionFaculty(faculty)
	data := &HomeData{
		Courses:       nonNil(courses),
		Faculty:       teaching,
		Leadership:    leadership,
		Notifications: MergeNotifications(posters, notifications),
		Banners:       nonNil(banners),
		Gallery:       nonNil(gallery),
		Results:       nonNil(results),
	}

	if key != "" {
		if err := s.cache.SetJSON(ctx, key, data, s.ttl); err != nil {
			logger.Warn().Err(err).Msg("home cache write failed")
		}
	}

	return data, nil
}

// Invalidate drops the cached payload so the next read sees admin changes
func (s *HomeService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	key, keyErr := s.cacheKey(ctx)
	if _, err := s.cache.Increment(ctx, HomeCacheVersionKey); err != nil {
		logger.Warn().Err(err).Msg("home cache invalidation failed")
	}
	if keyErr == nil {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Warn().Err(err).Msg("home cache invalidation failed")
		}
	}
}

func (s *HomeService) assetsOfType(ctx context.Context, t model.AssetType, limit int, dest *[]model.Asset) error {
	return s.db.WithContext(ctx).
		Where("type = ?", t).
		Order("created_at DESC").
		Limit(limit).
		Find(dest).Error
}

// PartitionFaculty splits staff into teaching and leadership. Other categories are dropped.
func PartitionFaculty(all []model.Faculty) (teaching, leadership []model.Faculty) {
	teaching = make([]model.Faculty, 0, len(all))
	leadership = make([]model.Faculty, 0)
	for _, f := range all {
		switch f.Category {
		case model.FacultyCategoryTeaching:
			teaching = append(teaching, f)
		case model.FacultyCategoryLeadership:
			leadership = append(leadership, f)
		}
	}
	return teaching, leadership
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
