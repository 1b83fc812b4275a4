// cmd/worker/main.go
package main

import (
	"os"
	"os/signal"
	"syscall"

	"book-catalog/pkg/container"
	"book-catalog/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "info"))
	if envErr != nil {
		logger.Info("[Worker] No .env file found, using system environment variables", nil)
	}

	if err := run(); err != nil {
		logger.Error("[Worker] Exited with error", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize container
	c, err := container.NewContainer()
	if err != nil {
		return err
	}
	defer c.Cleanup()
	logger.Debug("[Worker] Container ready")

	// Setup Asynq server
	srv, err := setupAsynqServer(c)
	if err != nil {
		return err
	}

	// Setup scheduler (chỉ khi CATALOG_EXPORT_CRON được set)
	scheduler, err := setupScheduler(c)
	if err != nil {
		srv.Shutdown()
		return err
	}

	// Health checks + health endpoint
	if err := startServices(c, getEnv("WORKER_HEALTH_PORT", "9999")); err != nil {
		scheduler.Shutdown()
		srv.Shutdown()
		return err
	}

	// Wait for shutdown signal
	waitForShutdown(srv, scheduler)
	return nil
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("[Shutdown] Gracefully stopping...", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("[Shutdown] ✓ Stopped", nil)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
