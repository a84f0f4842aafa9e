package database

import (
	"fmt"
	"time"

	"github.com/sahilchouksey/institute-site/config"
	"github.com/sahilchouksey/institute-site/model"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore wraps an already opened connection
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// DSN builds the PostgreSQL connection string for dbName
func DSN(env *config.EnvironmentVariable, dbName string) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		dbName,
		env.DB_PORT,
		env.DB_SSL_MODE,
	)
}

// GORMConfig is shared by the server, the CLIs and the test database
func GORMConfig(goEnv string) *gorm.Config {
	gormLogger := gormlogger.Default.LogMode(gormlogger.Warn)
	switch goEnv {
	case "production":
		gormLogger = gormlogger.Default.LogMode(gormlogger.Error)
	case "test":
		gormLogger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	return &gorm.Config{
		Logger: gormLogger,
		// Batches and faculty photos may outlive the rows they point at
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	if getEnv.DB_CREATE_IF_MISSING {
		if err := EnsureDatabase(getEnv); err != nil {
			return nil, err
		}
	}

	cfg := GORMConfig(getEnv.GO_ENV)
	cfg.PrepareStmt = true

	db, err := gorm.Open(postgres.Open(DSN(getEnv, getEnv.DB_NAME)), cfg)
	if err != nil {
		logger.Error().Err(err).Msg("unable to connect to PostgreSQL")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info().Str("host", getEnv.DB_HOST).Str("db", getEnv.DB_NAME).Msg("connected to PostgreSQL")

	return &GORMStore{db: db}, nil
}

// Models lists every table managed by AutoMigrate
func Models() []interface{} {
	return []interface{}{
		// Content
		&model.Course{},
		&model.Batch{},
		&model.Asset{},
		&model.Faculty{},
		&model.Notification{},
		&model.Video{},

		// Back office
		&model.Admin{},
		&model.RevokedSession{},

		// Audit & logging
		&model.PageVisit{},
		&model.AdminAuditLog{},
		&model.CronJobLog{},
	}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	logger.Info().Int("models", len(Models())).Msg("running AutoMigrate")

	if err := s.db.AutoMigrate(Models()...); err != nil {
		logger.Error().Err(err).Msg("AutoMigrate failed")
		return err
	}

	logger.Info().Msg("AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in handlers and services
func (s *GORMStore) GetDB() interface{} {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
