// cmd/worker/startup.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"book-catalog/pkg/container"

	"github.com/rs/zerolog/log"
)

type check struct {
	name string
	fn   func(ctx context.Context) error
}

// startServices chạy health check lúc khởi động rồi mở endpoint /health, /ready
func startServices(c *container.Container, port string) error {
	log.Info().Msg("============================================")
	log.Info().Msg("🚀 Book Catalog Worker Starting...")
	log.Info().Msg("============================================")

	checks := []check{
		{"PostgreSQL", c.DB.HealthCheck},
		{"Redis", c.Redis.HealthCheck},
	}
	if c.Storage != nil {
		checks = append(checks, check{"MinIO", c.Storage.HealthCheck})
	}

	if err := runChecks(context.Background(), checks); err != nil {
		return err
	}

	go startHealthCheckServer(port, checks)
	return nil
}

func runChecks(ctx context.Context, checks []check) error {
	for _, ch := range checks {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := ch.fn(ctx)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("check", ch.name).Msg("❌ Health check failed")
			return fmt.Errorf("%s failed: %w", ch.name, err)
		}
		log.Info().Str("check", ch.name).Msg("✓ OK")
	}
	return nil
}

// startHealthCheckServer: /health = process sống, /ready = dependencies sẵn sàng
func startHealthCheckServer(port string, checks []check) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, `{"status":"UP","service":"book-catalog-worker"}`)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := runChecks(r.Context(), checks); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, `{"status":"NOT_READY"}`)
			return
		}
		writeStatus(w, http.StatusOK, `{"status":"READY"}`)
	})

	log.Info().Str("port", port).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}

func writeStatus(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
