package main

import (
	"context"
	"net/http"
	"time"

	"book-catalog/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
)

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

type dbChecker interface {
	healthChecker
	Stats() (*database.PoolStats, error)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(db dbChecker, redis healthChecker, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services := gin.H{}
		healthy := true

		dbStatus := gin.H{"status": "ok"}
		if err := db.HealthCheck(ctx); err != nil {
			dbStatus["status"] = "error: " + err.Error()
			healthy = false
		} else if stats, err := db.Stats(); err == nil {
			dbStatus["pool"] = stats
		}
		services["database"] = dbStatus

		redisStatus := "ok"
		if err := redis.HealthCheck(ctx); err != nil {
			redisStatus = "error: " + err.Error()
			healthy = false
		}
		services["redis"] = redisStatus

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"services":  services,
		})
	}
}
