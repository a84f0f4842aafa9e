package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilchouksey/institute-site/api"
	"github.com/sahilchouksey/institute-site/config"
	"github.com/sahilchouksey/institute-site/database"
	"github.com/sahilchouksey/institute-site/router"
	"github.com/sahilchouksey/institute-site/services"
	"github.com/sahilchouksey/institute-site/services/cron"
	"github.com/sahilchouksey/institute-site/utils/cache"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/storage"
	"gorm.io/gorm"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(getEnv.LOG_LEVEL),
		Pretty: getEnv.LOG_PRETTY,
	})

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		logger.Error().Msg("check whether Postgres is running (make docker-up or make db-up)")
		return err
	}

	if err := store.Init(); err != nil {
		logger.Error().Err(err).Msg("failed to initialize database tables")
		return err
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("failed to get GORM DB instance")
	}

	// Redis is optional: the home cache and login throttling switch off without it
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, caching and brute force protection disabled")
			redisCache = nil
		}
	}

	uploads, err := newObjectStore(getEnv)
	if err != nil {
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(db, cron.Options{
			VisitRetention: time.Duration(getEnv.VISIT_RETENTION_DAYS) * 24 * time.Hour,
			LogRetention:   time.Duration(getEnv.LOG_RETENTION_DAYS) * 24 * time.Hour,
		})
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			logger.Warn().Err(err).Msg("failed to start cron jobs")
			cronManager = nil
		}
	}

	visits := services.NewVisitRecorder(db, 5*time.Second)

	// Defer closing DB, stopping cron jobs and flushing pending visits
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		visits.Wait()
		if redisCache != nil {
			_ = redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	if err := router.SetupRoutes(app, store, router.Options{
		Env:       getEnv,
		Cache:     redisCache,
		Uploads:   uploads,
		Visits:    visits,
		RateLimit: getEnv.RATE_LIMIT_PER_MIN,
	}); err != nil {
		return err
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()
}

// newObjectStore picks Spaces when credentials are configured, local disk otherwise
func newObjectStore(env *config.EnvironmentVariable) (storage.ObjectStore, error) {
	if env.SpacesEnabled() {
		client, err := storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: env.SPACES_ACCESS_KEY,
			SecretKey: env.SPACES_SECRET_KEY,
			Bucket:    env.SPACES_BUCKET,
			Region:    env.SPACES_REGION,
			Endpoint:  env.SPACES_ENDPOINT,
			CDNURL:    env.SPACES_CDN_URL,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("bucket", env.SPACES_BUCKET).Msg("uploads go to Spaces")
		return client, nil
	}

	local, err := storage.NewLocalStorage(env.UPLOAD_DIR, env.UPLOAD_BASE_URL)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("dir", local.BasePath()).Msg("uploads go to local disk")
	return local, nil
}
