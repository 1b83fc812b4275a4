package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables (.env được load ở main)
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Book    BookConfig
	Catalog CatalogConfig
	Worker  WorkerConfig
	MinIO   MinIOConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	CORSOrigins []string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type BookConfig struct {
	PageSize           int           // số book mỗi trang của GET /api/books
	AllowAuthorCreate  bool          // tạo author mới khi author_name chưa tồn tại
	CacheTTL           time.Duration // TTL cho book detail + list page
	AuthorUpsertRetry  int
	AuthorListCacheTTL time.Duration
}

type CatalogConfig struct {
	Dir           string        // thư mục chứa file export (phục vụ static ở /catalog)
	PublicBaseURL string        // prefix cho file_url, rỗng = đường dẫn tương đối
	BatchSize     int           // số book mỗi lần đọc DB
	Timeout       time.Duration // timeout của task export
	JobTTL        time.Duration // thời gian giữ job status trong Redis
	RatePerMinute int           // số lần trigger export mỗi phút
	Cron          string        // lịch export định kỳ, rỗng = tắt
	UploadEnabled bool          // mirror file lên MinIO
}

type WorkerConfig struct {
	Embedded    bool // chạy asynq worker ngay trong process api
	Concurrency int
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // catalog
	UseSSL    bool   // false for local
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Book: BookConfig{
			PageSize:           getEnvInt("BOOK_PAGE_SIZE", 10),
			AllowAuthorCreate:  getEnvBool("BOOK_AUTHOR_AUTO_CREATE", true),
			CacheTTL:           getEnvDuration("BOOK_CACHE_TTL", 10*time.Minute),
			AuthorUpsertRetry:  getEnvInt("AUTHOR_UPSERT_RETRY", 3),
			AuthorListCacheTTL: getEnvDuration("AUTHOR_LIST_CACHE_TTL", 5*time.Minute),
		},
		Catalog: CatalogConfig{
			Dir:           getEnv("CATALOG_DIR", "catalog"),
			PublicBaseURL: strings.TrimRight(getEnv("CATALOG_PUBLIC_BASE_URL", ""), "/"),
			BatchSize:     getEnvInt("CATALOG_BATCH_SIZE", 20000),
			Timeout:       getEnvDuration("CATALOG_EXPORT_TIMEOUT", 30*time.Minute),
			JobTTL:        getEnvDuration("CATALOG_JOB_TTL", 24*time.Hour),
			RatePerMinute: getEnvInt("CATALOG_EXPORT_RATE", 6),
			Cron:          getEnv("CATALOG_EXPORT_CRON", ""),
			UploadEnabled: getEnvBool("CATALOG_UPLOAD_ENABLED", false),
		},
		Worker: WorkerConfig{
			Embedded:    getEnvBool("WORKER_EMBEDDED", true),
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 4),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "catalog"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Book.PageSize <= 0 {
		return fmt.Errorf("BOOK_PAGE_SIZE must be positive, got %d", c.Book.PageSize)
	}
	if c.Catalog.BatchSize <= 0 {
		return fmt.Errorf("CATALOG_BATCH_SIZE must be positive, got %d", c.Catalog.BatchSize)
	}
	if c.Catalog.Dir == "" {
		return fmt.Errorf("CATALOG_DIR must not be empty")
	}
	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive, got %d", c.Worker.Concurrency)
	}

	if c.App.Environment == "production" {
		if c.Catalog.UploadEnabled && c.MinIO.SecretKey == "minioadmin" {
			return fmt.Errorf("MINIO_SECRET_KEY must be set in production when CATALOG_UPLOAD_ENABLED")
		}
		if len(c.App.CORSOrigins) == 1 && c.App.CORSOrigins[0] == "*" {
			log.Warn().Msg("CORS_ALLOWED_ORIGINS is * in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
