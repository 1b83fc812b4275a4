package main

import (
	"net/http"

	"book-catalog/internal/shared/middleware"
	"book-catalog/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/catalog", c.Config.Catalog.Dir)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c.DB, c.Redis, c.Config.App.Version))

		setupBookRoutes(api, c)
		setupAuthorRoutes(api, c)
		setupDocRoutes(api)
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.POST("", c.BookHandler.CreateBook)

		// catalog phải khai báo trước :id
		books.GET("/catalog", middleware.RateLimit(c.Config.Catalog.RatePerMinute), c.CatalogHandler.ExportCatalog)
		books.GET("/catalog/:job_id", c.CatalogHandler.GetExportJob)

		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/authors", c.AuthorHandler.ListAuthors)
}

// ========================================
// API DOC
// ========================================
func setupDocRoutes(api *gin.RouterGroup) {
	api.GET("/doc", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/api/doc/index.html")
	})
	api.GET("/doc/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// withCORS bọc gin engine bằng rs/cors
func withCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler(h)
}
