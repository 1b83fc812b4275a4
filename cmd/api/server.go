package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"book-catalog/internal/infrastructure/queue"
	"book-catalog/pkg/container"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Serve chạy HTTP server (và asynq worker nhúng nếu bật) tới khi nhận SIGINT/SIGTERM
func Serve() error {
	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	appContainer, err := container.NewContainer()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer appContainer.Cleanup()

	cfg := appContainer.Config

	// ========================================
	// 2. CONFIGURE HTTP SERVER
	// ========================================
	router := SetupRouter(appContainer)
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", cfg.App.Port),
		Handler:        withCORS(router, cfg.App.CORSOrigins),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// ========================================
	// 3. HTTP SERVER
	// ========================================
	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("docs", fmt.Sprintf("http://localhost:%s/api/doc", cfg.App.Port)).
			Msg("[HTTP] Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("[HTTP] Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// ========================================
	// 4. EMBEDDED WORKER
	// ========================================
	if cfg.Worker.Embedded {
		worker, mux := queue.NewServer(appContainer.RedisOpt, cfg.Worker.Concurrency, appContainer.QueueHandlers())
		if err := worker.Start(mux); err != nil {
			return fmt.Errorf("start embedded worker: %w", err)
		}
		log.Info().Int("concurrency", cfg.Worker.Concurrency).Msg("[Worker] Embedded worker started")

		var scheduler *queue.Scheduler
		if cfg.Catalog.Cron != "" {
			scheduler = queue.NewScheduler(appContainer.RedisOpt, cfg.Catalog.Cron, cfg.Catalog.Timeout)
			if err := scheduler.RegisterCatalogExport(); err != nil {
				worker.Shutdown()
				return fmt.Errorf("register scheduled export: %w", err)
			}
			if err := scheduler.Start(); err != nil {
				worker.Shutdown()
				return fmt.Errorf("start scheduler: %w", err)
			}
		}

		g.Go(func() error {
			<-gctx.Done()
			if scheduler != nil {
				scheduler.Shutdown()
			}
			worker.Shutdown()
			log.Info().Msg("[Worker] Embedded worker stopped")
			return nil
		})
	}

	// ========================================
	// 5. WAIT
	// ========================================
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
