// Package bootstrap wires infrastructure into the use cases shared by the
// api and worker binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avshapoval/doc-insights/internal/config"
	"github.com/avshapoval/doc-insights/internal/core/ports"
	"github.com/avshapoval/doc-insights/internal/core/usecase"
	"github.com/avshapoval/doc-insights/internal/infrastructure/extractor/text"
	"github.com/avshapoval/doc-insights/internal/infrastructure/llm/gemini"
	"github.com/avshapoval/doc-insights/internal/infrastructure/llm/mock"
	"github.com/avshapoval/doc-insights/internal/infrastructure/queue/nats"
	"github.com/avshapoval/doc-insights/internal/infrastructure/repository/postgres"
	"github.com/avshapoval/doc-insights/internal/infrastructure/resilience"
	"github.com/avshapoval/doc-insights/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue

	UploadUC    ports.DocumentUploader
	ProcessUC   ports.DocumentProcessor
	DocumentsUC *usecase.DocumentsUseCase
	DashboardUC ports.DashboardService

	// Synthesizer is exposed so the worker can attach a fallback observer.
	Synthesizer ports.InsightSynthesizer

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	docRepo := postgres.NewDocumentRepository(db)
	analysisRepo := postgres.NewAnalysisRepository(db)
	insightRepo := postgres.NewInsightRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init blob storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	synthesizer := newSynthesizer(cfg, logger)
	extractor := text.NewExtractor(storage, logger)

	uploadUC := usecase.NewUploadDocumentUseCase(docRepo, storage, queue, logger)
	processUC := usecase.NewProcessDocumentUseCase(docRepo, analysisRepo, insightRepo, extractor, synthesizer)
	documentsUC := usecase.NewDocumentsUseCase(docRepo, storage, logger)
	dashboardUC := usecase.NewDashboardUseCase(docRepo)

	return &App{
		Config: cfg,
		Queue:  queue,

		UploadUC:    uploadUC,
		ProcessUC:   processUC,
		DocumentsUC: documentsUC,
		DashboardUC: dashboardUC,
		Synthesizer: synthesizer,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// newSynthesizer picks the model-backed analyzer when an API key is
// configured; the deterministic mock otherwise. The model path always keeps
// the mock as its degradation target.
func newSynthesizer(cfg config.Config, logger *slog.Logger) ports.InsightSynthesizer {
	fallback := mock.New(cfg.KeywordTopN)
	if cfg.GeminiAPIKey == "" {
		logger.Info("model API key not configured, using deterministic analyzer")
		return fallback
	}

	client := gemini.NewClient(cfg.GeminiAPIURL, cfg.GeminiModel, cfg.GeminiAPIKey, cfg.GeminiRPM)
	return gemini.NewSynthesizer(client, fallback, logger)
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
