package router

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/sahilchouksey/institute-site/config"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/handlers"
	admin_handlers "github.com/sahilchouksey/institute-site/handlers/admin"
	asset_handlers "github.com/sahilchouksey/institute-site/handlers/asset"
	auth_handlers "github.com/sahilchouksey/institute-site/handlers/auth"
	batch_handlers "github.com/sahilchouksey/institute-site/handlers/batch"
	course_handlers "github.com/sahilchouksey/institute-site/handlers/course"
	faculty_handlers "github.com/sahilchouksey/institute-site/handlers/faculty"
	notification_handlers "github.com/sahilchouksey/institute-site/handlers/notification"
	public_handlers "github.com/sahilchouksey/institute-site/handlers/public"
	site_handlers "github.com/sahilchouksey/institute-site/handlers/site"
	upload_handlers "github.com/sahilchouksey/institute-site/handlers/upload"
	video_handlers "github.com/sahilchouksey/institute-site/handlers/video"
	"github.com/sahilchouksey/institute-site/services"
	"github.com/sahilchouksey/institute-site/utils"
	"github.com/sahilchouksey/institute-site/utils/auth"
	"github.com/sahilchouksey/institute-site/utils/cache"
	"github.com/sahilchouksey/institute-site/utils/middleware"
	"github.com/sahilchouksey/institute-site/utils/storage"
	"github.com/sahilchouksey/institute-site/web"
	"gorm.io/gorm"
)

// Options carries the collaborators built by app setup
type Options struct {
	Env *config.EnvironmentVariable
	// Cache is optional; without it the home payload is uncached and login is not throttled
	Cache *cache.RedisCache
	// Uploads receives console uploads; nil disables POST /admin/uploads
	Uploads storage.ObjectStore
	Visits  middleware.VisitRecorder
	// Quiet disables the access log
	Quiet bool
	// RateLimit is requests per minute per IP; 0 disables it
	RateLimit int
}

func SetupRoutes(app *fiber.App, store database.Storage, opts Options) error {
	env := opts.Env
	if env.JWT_SECRET == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return errors.New("failed to get GORM DB instance")
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: env.SESSION_TTL,
		Issuer: env.JWT_ISSUER,
	})
	guard := middleware.NewSessionGuard(jwtManager, db)

	var bruteForceProtection *middleware.BruteForceProtection
	if opts.Cache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(opts.Cache)
	}

	homeService := services.NewHomeService(db, opts.Cache, env.HOME_CACHE_TTL)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	publicHandler := public_handlers.NewPublicHandler(homeService)
	courseHandler := course_handlers.NewCourseHandler(db)
	batchHandler := batch_handlers.NewBatchHandler(db)
	assetHandler := asset_handlers.NewAssetHandler(db)
	facultyHandler := faculty_handlers.NewFacultyHandler(db)
	notificationHandler := notification_handlers.NewNotificationHandler(db)
	videoHandler := video_handlers.NewVideoHandler(db)
	siteHandler := site_handlers.NewSiteHandler(homeService, guard, site_handlers.Config{
		SiteTitle:  env.SITE_TITLE,
		AdminRoute: env.ADMIN_ROUTE,
		APIBaseURL: env.PUBLIC_API_URL,
		WhatsApp:   env.CONTACT_WHATSAPP,
	})

	// Apply security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:        env.ALLOWED_ORIGINS,
		AllowedOriginSuffixes: env.ALLOWED_ORIGIN_SUFFIXES,
		RateLimitRequests:     opts.RateLimit,
		RateLimitWindow:       1 * time.Minute,
		DisableAccessLog:      opts.Quiet,
	})

	excluded := append([]string{siteHandler.ConsoleBase(), "/popup"}, middleware.DefaultVisitExclusions...)
	app.Use(middleware.PageVisit(opts.Visits, excluded))

	// Browser assets and locally stored uploads
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   web.Static(),
		MaxAge: 3600,
	}))
	if !env.SpacesEnabled() {
		app.Static("/uploads", env.UPLOAD_DIR, fiber.Static{MaxAge: 86400})
	}

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// Public data
	public := app.Group("/public")
	public.Get("/home", publicHandler.GetHomeData)
	public.Get("/videos", videoHandler.ListVideos)

	// Session endpoints
	if bruteForceProtection != nil {
		app.Post("/admin/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		app.Post("/admin/login", authHandler.Login)
	}
	app.Post("/admin/logout", authHandler.Logout)

	// Everything else under /admin requires a session; successful mutations drop the home cache
	admin := app.Group("/admin", guard.Required(), middleware.InvalidateOnMutation(homeService.Invalidate))
	admin.Get("/me", authHandler.Me)
	admin.Get("/stats", utils.MakeHTTPHandleFunc(admin_handlers.GetDashboardStats, store))
	admin.Get("/audit-logs", utils.MakeHTTPHandleFunc(admin_handlers.ListAuditLogs, store))
	admin.Get("/audit-logs/:id", utils.MakeHTTPHandleFunc(admin_handlers.GetAuditLog, store))
	admin.Get("/cron-logs", utils.MakeHTTPHandleFunc(admin_handlers.ListCronLogs, store))
	admin.Get("/admins", utils.MakeHTTPHandleFunc(admin_handlers.ListAdmins, store))

	if opts.Uploads != nil {
		uploadService := services.NewUploadService(opts.Uploads, storage.ImageOptions{
			MaxWidth: env.UPLOAD_MAX_WIDTH,
			WebP:     env.UPLOAD_WEBP,
		})
		uploadHandler := upload_handlers.NewUploadHandler(uploadService)
		admin.Post("/uploads", middleware.AdminAuditLog(db, "uploads"), uploadHandler.Upload)
	}

	courses := admin.Group("/courses", middleware.AdminAuditLog(db, "courses"))
	courses.Get("/", courseHandler.ListCourses)
	courses.Post("/", courseHandler.CreateCourse)
	courses.Put("/:id", courseHandler.UpdateCourse)
	courses.Patch("/:id/status", courseHandler.ToggleCourseStatus)
	courses.Delete("/:id", courseHandler.DeleteCourse)

	batches := admin.Group("/batches", middleware.AdminAuditLog(db, "batches"))
	batches.Get("/", batchHandler.ListBatches)
	batches.Post("/", batchHandler.CreateBatch)
	batches.Put("/:id", batchHandler.UpdateBatch)
	batches.Delete("/:id", batchHandler.DeleteBatch)

	assets := admin.Group("/assets", middleware.AdminAuditLog(db, "assets"))
	assets.Get("/", assetHandler.ListAssets)
	assets.Post("/", assetHandler.CreateAsset)
	assets.Put("/:id", assetHandler.UpdateAsset)
	assets.Delete("/:id", assetHandler.DeleteAsset)

	faculty := admin.Group("/faculty", middleware.AdminAuditLog(db, "faculty"))
	faculty.Get("/", facultyHandler.ListFaculty)
	faculty.Post("/", facultyHandler.CreateFaculty)
	faculty.Put("/:id", facultyHandler.UpdateFaculty)
	faculty.Delete("/:id", facultyHandler.DeleteFaculty)

	notifications := admin.Group("/notifications", middleware.AdminAuditLog(db, "notifications"))
	notifications.Get("/", notificationHandler.GetNotifications)
	notifications.Post("/", notificationHandler.CreateNotification)
	notifications.Put("/:id", notificationHandler.UpdateNotification)
	notifications.Patch("/:id", notificationHandler.ToggleNotification)
	notifications.Delete("/:id", notificationHandler.DeleteNotification)

	videos := admin.Group("/videos", middleware.AdminAuditLog(db, "videos"))
	videos.Get("/", videoHandler.ListVideos)
	videos.Post("/", videoHandler.CreateVideo)
	videos.Put("/:id", videoHandler.UpdateVideo)
	videos.Delete("/:id", videoHandler.DeleteVideo)

	// Server rendered pages
	siteHandler.Register(app)

	return nil
}
