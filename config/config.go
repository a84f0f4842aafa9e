package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	// All variables
	GO_ENV               string
	DB_USER_NAME         string
	DB_PASSWORD          string
	DB_NAME              string
	DB_HOST              string
	DB_PORT              string
	DB_SSL_MODE          string
	DB_CREATE_IF_MISSING bool
	PORT                 int
	// Session Configuration
	JWT_SECRET  string
	JWT_ISSUER  string
	SESSION_TTL time.Duration
	// Redis Configuration
	REDIS_URL string
	// HTTP surface
	SITE_TITLE              string
	ALLOWED_ORIGINS         string
	ALLOWED_ORIGIN_SUFFIXES []string
	ADMIN_ROUTE             string
	PUBLIC_API_URL          string
	CONTACT_WHATSAPP        string
	// Uploads
	UPLOAD_DIR       string
	UPLOAD_BASE_URL  string
	UPLOAD_MAX_WIDTH int
	UPLOAD_WEBP      bool
	// S3 compatible storage (DigitalOcean Spaces)
	SPACES_ACCESS_KEY string
	SPACES_SECRET_KEY string
	SPACES_BUCKET     string
	SPACES_REGION     string
	SPACES_ENDPOINT   string
	SPACES_CDN_URL    string
	// Background jobs and caching
	CRON_ENABLED         bool
	VISIT_RETENTION_DAYS int
	LOG_RETENTION_DAYS   int
	RATE_LIMIT_PER_MIN   int
	HOME_CACHE_TTL       time.Duration
	// Logging
	LOG_LEVEL  string
	LOG_PRETTY bool
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	dbSSLMode := os.Getenv("DB_SSL_MODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable"
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "institute-site"
	}

	adminRoute := strings.Trim(os.Getenv("ADMIN_ROUTE"), "/")
	if adminRoute == "" {
		adminRoute = "console"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:               os.Getenv("GO_ENV"),
		DB_USER_NAME:         os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:          os.Getenv("DB_PASSWORD"),
		DB_NAME:              os.Getenv("DB_NAME"),
		DB_HOST:              dbHost,
		DB_PORT:              dbPort,
		DB_SSL_MODE:          dbSSLMode,
		DB_CREATE_IF_MISSING: getBool("DB_CREATE_IF_MISSING", false),
		PORT:                 port,
		// Session
		JWT_SECRET:  os.Getenv("JWT_SECRET"),
		JWT_ISSUER:  jwtIssuer,
		SESSION_TTL: getDuration("SESSION_TTL", 7*24*time.Hour),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// HTTP
		SITE_TITLE:              getString("SITE_TITLE", "Institute"),
		ALLOWED_ORIGINS:         getString("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		ALLOWED_ORIGIN_SUFFIXES: splitList(os.Getenv("ALLOWED_ORIGIN_SUFFIXES")),
		ADMIN_ROUTE:             adminRoute,
		PUBLIC_API_URL:          strings.TrimRight(os.Getenv("PUBLIC_API_URL"), "/"),
		CONTACT_WHATSAPP:        os.Getenv("CONTACT_WHATSAPP"),
		// Uploads
		UPLOAD_DIR:       uploadDir,
		UPLOAD_BASE_URL:  getString("UPLOAD_BASE_URL", "/uploads"),
		UPLOAD_MAX_WIDTH: getInt("UPLOAD_MAX_WIDTH", 1920),
		UPLOAD_WEBP:      getBool("UPLOAD_WEBP", false),
		// Spaces
		SPACES_ACCESS_KEY: os.Getenv("SPACES_ACCESS_KEY"),
		SPACES_SECRET_KEY: os.Getenv("SPACES_SECRET_KEY"),
		SPACES_BUCKET:     os.Getenv("SPACES_BUCKET"),
		SPACES_REGION:     os.Getenv("SPACES_REGION"),
		SPACES_ENDPOINT:   os.Getenv("SPACES_ENDPOINT"),
		SPACES_CDN_URL:    strings.TrimRight(os.Getenv("SPACES_CDN_URL"), "/"),
		// Jobs
		CRON_ENABLED:         getBool("CRON_ENABLED", true),
		VISIT_RETENTION_DAYS: getInt("VISIT_RETENTION_DAYS", 0),
		LOG_RETENTION_DAYS:   getInt("LOG_RETENTION_DAYS", 90),
		RATE_LIMIT_PER_MIN:   getInt("RATE_LIMIT_PER_MIN", 300),
		HOME_CACHE_TTL:       getDuration("HOME_CACHE_TTL", 60*time.Second),
		// Logging
		LOG_LEVEL:  getString("LOG_LEVEL", "info"),
		LOG_PRETTY: getBool("LOG_PRETTY", os.Getenv("GO_ENV") != "production"),
	}

	return envVariables, nil
}

// IsProduction reports whether GO_ENV is production
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

// SpacesEnabled reports whether uploads should go to S3 compatible storage
func (e *EnvironmentVariable) SpacesEnabled() bool {
	return e.SPACES_BUCKET != "" && e.SPACES_ACCESS_KEY != "" && e.SPACES_SECRET_KEY != ""
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go durations ("90s", "168h") or a bare number of seconds
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
