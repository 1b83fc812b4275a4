package container

import (
	"context"
	"fmt"
	"time"

	"book-catalog/internal/config"
	infraCache "book-catalog/internal/infrastructure/cache"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/internal/infrastructure/queue"
	"book-catalog/internal/infrastructure/storage"
	"book-catalog/pkg/cache"

	authorHandler "book-catalog/internal/domains/author/handler"
	authorRepo "book-catalog/internal/domains/author/repository"
	authorService "book-catalog/internal/domains/author/service"
	bookHandler "book-catalog/internal/domains/book/handler"
	bookRepo "book-catalog/internal/domains/book/repository"
	bookService "book-catalog/internal/domains/book/service"
	catalogHandler "book-catalog/internal/domains/catalog/handler"
	catalogJob "book-catalog/internal/domains/catalog/job"
	catalogRepo "book-catalog/internal/domains/catalog/repository"
	catalogService "book-catalog/internal/domains/catalog/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application.
// Dùng chung cho cmd/api và cmd/worker.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	RedisOpt    asynq.RedisClientOpt
	AsynqClient *asynq.Client
	Queue       *queue.Client
	Storage     *storage.MinIOStorage // nil khi CATALOG_UPLOAD_ENABLED=false

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface
	JobStore   catalogRepo.JobStore

	// Services
	AuthorService  authorService.ServiceInterface
	BookService    bookService.ServiceInterface
	CatalogService catalogService.ServiceInterface

	// HTTP handlers
	AuthorHandler  *authorHandler.AuthorHandler
	BookHandler    *bookHandler.Handler
	CatalogHandler *catalogHandler.CatalogHandler

	// Task handlers
	ExportHandler *catalogJob.ExportHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo toàn bộ dependency graph theo thứ tự:
// 1. Config
// 2. Infrastructure (Postgres + schema, Redis, Asynq, MinIO)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("[CONTAINER] Initializing...")

	c := &Container{}

	// STEP 1: CONFIG
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("[CONTAINER] Config loaded")

	// STEP 2: INFRASTRUCTURE
	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 3-5
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("[CONTAINER] Initialized successfully")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// ---------- PostgreSQL ----------
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	// ---------- Redis ----------
	// Redis giữ cả cache lẫn trạng thái export job nên là dependency bắt buộc
	c.Redis = infraCache.NewRedisClient(cfg.Redis)
	if err := c.Redis.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client, "")

	// ---------- Asynq ----------
	c.RedisOpt = c.Redis.AsynqOpt()
	c.AsynqClient = asynq.NewClient(c.RedisOpt)
	c.Queue = queue.NewClient(c.AsynqClient, cfg.Catalog.Timeout)

	// ---------- MinIO (optional) ----------
	if cfg.Catalog.UploadEnabled {
		st, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("failed to init minio: %w", err)
		}
		c.Storage = st
		log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("[CONTAINER] MinIO upload enabled")
	}

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Config.Book.AuthorUpsertRetry)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.JobStore = catalogRepo.NewJobStore(c.Cache, c.Config.Catalog.JobTTL)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Cache, cfg.Book.AuthorListCacheTTL)

	c.BookService = bookService.NewService(c.BookRepo, c.AuthorService, c.Cache, bookService.Config{
		PageSize:          cfg.Book.PageSize,
		AllowAuthorCreate: cfg.Book.AllowAuthorCreate,
		CacheTTL:          cfg.Book.CacheTTL,
	})

	// interface nil != *MinIOStorage nil, chỉ gán khi đã khởi tạo
	var uploader catalogService.Uploader
	if c.Storage != nil {
		uploader = c.Storage
	}
	c.CatalogService = catalogService.NewService(c.BookRepo, c.JobStore, c.Queue, uploader, catalogService.Config{
		Dir:           cfg.Catalog.Dir,
		PublicBaseURL: cfg.Catalog.PublicBaseURL,
		BatchSize:     cfg.Catalog.BatchSize,
	})
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.ExportHandler = catalogJob.NewExportHandler(c.CatalogService)
}

// QueueHandlers trả về các task handler để đăng ký vào asynq server
func (c *Container) QueueHandlers() queue.Handlers {
	return queue.Handlers{
		CatalogExport: asynq.HandlerFunc(c.ExportHandler.ProcessTask),
	}
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close asynq client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close database")
		}
	}

	log.Info().Msg("[CONTAINER] Cleanup completed")
}
