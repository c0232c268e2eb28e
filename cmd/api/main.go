package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/avshapoval/doc-insights/internal/adapters/http"
	"github.com/avshapoval/doc-insights/internal/bootstrap"
	"github.com/avshapoval/doc-insights/internal/config"
	"github.com/avshapoval/doc-insights/internal/export"
	"github.com/avshapoval/doc-insights/internal/observability/logging"
	"github.com/avshapoval/doc-insights/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	router := httpadapter.NewRouter(
		app.UploadUC,
		app.DocumentsUC,
		app.DocumentsUC,
		app.DashboardUC,
		export.NewService(logger),
		metrics.NewHTTPServerMetrics("api"),
		logger,
		httpadapter.RouterConfig{
			MaxUploadBytes:   cfg.MaxUploadBytes,
			RateLimitRPS:     cfg.APIRateLimitRPS,
			RateLimitBurst:   cfg.APIRateLimitBurst,
			MaxConcurrent:    cfg.APIMaxConcurrent,
			BackpressureWait: time.Duration(cfg.APIBackpressureWaitMs) * time.Millisecond,
		},
	)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown error", "error", err)
	}
}
