package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sahilchouksey/institute-site/database/dbtest"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var base = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func seedHome(t *testing.T, db *gorm.DB) {
	t.Helper()

	active := model.Course{Title: "JEE", Description: "Prep", IsActive: true, CreatedAt: at(1)}
	inactive := model.Course{Title: "Old", Description: "Closed", IsActive: false, CreatedAt: at(2)}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&inactive).Error)
	require.NoError(t, db.Create(&model.Batch{Name: "JEE 2026", CourseID: active.ID, StartDate: at(0), IsActive: true}).Error)
	require.NoError(t, db.Create(&model.Batch{Name: "JEE 2027", CourseID: active.ID, StartDate: at(5), IsActive: true}).Error)

	require.NoError(t, db.Create(&[]model.Faculty{
		{Name: "A", Designation: "Physics", Category: model.FacultyCategoryTeaching, CreatedAt: at(1)},
		{Name: "B", Designation: "Director", Category: model.FacultyCategoryLeadership, CreatedAt: at(2)},
		{Name: "C", Designation: "Clerk", Category: "SUPPORT", CreatedAt: at(3)},
		{Name: "D", Designation: "Chemistry", Category: model.FacultyCategoryTeaching, CreatedAt: at(4)},
	}).Error)

	require.NoError(t, db.Create(&[]model.Notification{
		{Message: "first", Type: model.NotificationTypeAnnouncement, IsActive: true, CreatedAt: at(1)},
		{Message: "second", Type: model.NotificationTypePopup, IsActive: true, CreatedAt: at(2)},
		{Message: "hidden", Type: model.NotificationTypeAnnouncement, IsActive: false, CreatedAt: at(3)},
	}).Error)

	require.NoError(t, db.Create(&[]model.Asset{
		{Title: "", Type: model.AssetTypePoster, FileURL: "/uploads/p1.png", MimeType: "image/png", CreatedAt: at(1)},
		{Title: "Admissions", Type: model.AssetTypePoster, FileURL: "/uploads/p2.png", MimeType: "image/png", CreatedAt: at(2)},
		{Title: "Hero", Type: model.AssetTypeBanner, FileURL: "/uploads/b.png", MimeType: "image/png", CreatedAt: at(1)},
		{Title: "Topper", Type: model.AssetTypeResult, FileURL: "/uploads/r.png", MimeType: "image/png", CreatedAt: at(1)},
	}).Error)

	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&model.Asset{Title: "g", Type: model.AssetTypeGallery, FileURL: "/uploads/g.png", MimeType: "image/png", CreatedAt: at(10 + i)}).Error)
	}
}

func TestGetHomeData(t *testing.T) {
	db := dbtest.New(t)
	seedHome(t, db)

	data, err := NewHomeService(db, nil, 0).GetHomeData(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Courses, 1)
	assert.Equal(t, "JEE", data.Courses[0].Title)
	require.NotNil(t, data.Courses[0].Count)
	assert.Equal(t, int64(2), data.Courses[0].Count.Batches)

	var teaching []string
	for _, f := range data.Faculty {
		teaching = append(teaching, f.Name)
	}
	assert.Equal(t, []string{"A", "D"}, teaching)
	require.Len(t, data.Leadership, 1)
	assert.Equal(t, "B", data.Leadership[0].Name)

	var messages []string
	for _, n := range data.Notifications {
		messages = append(messages, n.Message)
	}
	assert.Equal(t, []string{"Admissions", PosterFallbackMessage, "second", "first"}, messages)
	assert.Equal(t, model.NotificationTypePoster, data.Notifications[0].Type)

	assert.Len(t, data.Banners, 1)
	assert.Len(t, data.Results, 1)
	require.Len(t, data.Gallery, 10)
	assert.True(t, data.Gallery[0].CreatedAt.After(data.Gallery[9].CreatedAt))
}

func TestGetHomeDataCapsBannersAndPosters(t *testing.T) {
	db := dbtest.New(t)

	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&model.Asset{Title: fmt.Sprintf("banner-%d", i), Type: model.AssetTypeBanner, FileURL: "/uploads/b.png", MimeType: "image/png", CreatedAt: at(i)}).Error)
		require.NoError(t, db.Create(&model.Asset{Title: fmt.Sprintf("poster-%d", i), Type: model.AssetTypePoster, FileURL: "/uploads/p.png", MimeType: "image/png", CreatedAt: at(i)}).Error)
	}
	require.NoError(t, db.Create(&model.Notification{Message: "note", Type: model.NotificationTypeAnnouncement, IsActive: true, CreatedAt: at(20)}).Error)

	data, err := NewHomeService(db, nil, 0).GetHomeData(context.Background())
	require.NoError(t, err)

	var banners []string
	for _, b := range data.Banners {
		banners = append(banners, b.Title)
	}
	assert.Equal(t, []string{"banner-6", "banner-5", "banner-4", "banner-3", "banner-2"}, banners)

	var posters []string
	for _, n := range data.Notifications {
		if n.Type == model.NotificationTypePoster {
			posters = append(posters, n.Message)
		}
	}
	assert.Equal(t, []string{"poster-6", "poster-5", "poster-4", "poster-3", "poster-2"}, posters)
	require.Len(t, data.Notifications, 6)
	assert.Equal(t, "note", data.Notifications[5].Message)
}

func TestGetHomeDataEmptyDatabase(t *testing.T) {
	data, err := NewHomeService(dbtest.New(t), nil, 0).GetHomeData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EmptyHomeData(), data)
}

func TestGetHomeDataFailsAsAWhole(t *testing.T) {
	db := dbtest.New(t)
	seedHome(t, db)
	require.NoError(t, db.Migrator().DropTable(&model.Asset{}))

	data, err := NewHomeService(db, nil, 0).GetHomeData(context.Background())
	assert.Error(t, err)
	assert.Nil(t, data)
}

func TestGetHomeDataCachesAndInvalidates(t *testing.T) {
	db := dbtest.New(t)
	seedHome(t, db)

	mr := miniredis.RunT(t)
	redisCache, err := cache.NewRedisCache("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	svc := NewHomeService(db, redisCache, time.Minute)
	ctx := context.Background()

	first, err := svc.GetHomeData(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(HomeCacheKey+":0"))

	require.NoError(t, db.Create(&model.Course{Title: "NEET", Description: "Bio", IsActive: true, CreatedAt: at(30)}).Error)

	cached, err := svc.GetHomeData(ctx)
	require.NoError(t, err)
	assert.Len(t, cached.Courses, len(first.Courses))

	svc.Invalidate(ctx)
	fresh, err := svc.GetHomeData(ctx)
	require.NoError(t, err)
	require.Len(t, fresh.Courses, 2)
	assert.Equal(t, "NEET", fresh.Courses[0].Title)
}

func TestInvalidateDuringLoadDoesNotCacheStaleData(t *testing.T) {
	db := dbtest.New(t)
	seedHome(t, db)

	mr := miniredis.RunT(t)
	redisCache, err := cache.NewRedisCache("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	svc := NewHomeService(db, redisCache, time.Minute)
	ctx := context.Background()

	// a reader resolved its key, then an admin change landed before it wrote back
	staleKey, err := svc.cacheKey(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Course{Title: "NEET", Description: "Bio", IsActive: true, CreatedAt: at(30)}).Error)
	svc.Invalidate(ctx)
	require.NoError(t, redisCache.SetJSON(ctx, staleKey, EmptyHomeData(), time.Minute))

	fresh, err := svc.GetHomeData(ctx)
	require.NoError(t, err)
	require.Len(t, fresh.Courses, 2)
	assert.True(t, mr.Exists(HomeCacheKey+":1"))
}

func TestGetHomeDataIgnoresCacheOutage(t *testing.T) {
	db := dbtest.New(t)
	seedHome(t, db)

	mr := miniredis.RunT(t)
	redisCache, err := cache.NewRedisCache("redis://" + mr.Addr())
	require.NoError(t, err)
	mr.Close()

	data, err := NewHomeService(db, redisCache, time.Minute).GetHomeData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Courses, 1)
}

func TestPartitionFacultyDropsUnknownCategories(t *testing.T) {
	teaching, leadership := PartitionFaculty([]model.Faculty{
		{Name: "x", Category: "SUPPORT"},
		{Name: "y", Category: model.FacultyCategoryLeadership},
		{Name: "z", Category: model.FacultyCategoryTeaching},
	})
	assert.Len(t, teaching, 1)
	assert.Len(t, leadership, 1)
	assert.Equal(t, "z", teaching[0].Name)
	assert.Equal(t, "y", leadership[0].Name)
}

func TestMergeNotificationsPostersFirst(t *testing.T) {
	posters := []model.Asset{
		{ID: "p1", Title: "One", FileURL: "/uploads/1.png", CreatedAt: at(2)},
		{ID: "p2", FileURL: "/uploads/2.png", CreatedAt: at(1)},
	}
	notifications := []model.Notification{{ID: "n1", Message: "hello"}, {ID: "n2", Message: "bye"}}

	merged := MergeNotifications(posters, notifications)

	var ids []string
	for _, n := range merged {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"p1", "p2", "n1", "n2"}, ids)
	assert.Equal(t, PosterFallbackMessage, merged[1].Message)
	require.NotNil(t, merged[0].Link)
	assert.Equal(t, "/uploads/1.png", *merged[0].Link)
	assert.True(t, merged[0].IsActive)
	assert.Equal(t, at(2), merged[0].CreatedAt)
}
