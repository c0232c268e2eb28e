package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avshapoval/doc-insights/internal/core/domain"
	"github.com/avshapoval/doc-insights/internal/core/ports"
	"github.com/avshapoval/doc-insights/internal/infrastructure/heuristics"
)

// ProcessDocumentUseCase drives the per-document state machine:
//
//	processing -> completed (then insight creation)
//	processing -> failed    (terminal, no insight)
//
// The chain is strictly sequential and never retried; a failed document is
// recovered only by re-uploading it.
type ProcessDocumentUseCase struct {
	docs        ports.DocumentRepository
	analyses    ports.AnalysisRepository
	insights    ports.InsightRepository
	extractor   ports.TextExtractor
	synthesizer ports.InsightSynthesizer
}

func NewProcessDocumentUseCase(
	docs ports.DocumentRepository,
	analyses ports.AnalysisRepository,
	insights ports.InsightRepository,
	extractor ports.TextExtractor,
	synthesizer ports.InsightSynthesizer,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		docs:        docs,
		analyses:    analyses,
		insights:    insights,
		extractor:   extractor,
		synthesizer: synthesizer,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) (*domain.AnalysisRecord, error) {
	doc, err := uc.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}

	now := time.Now().UTC()
	record := &domain.AnalysisRecord{
		ID:               uuid.NewString(),
		DocumentID:       doc.ID,
		ProcessingStatus: domain.ProcessingInProgress,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.analyses.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create analysis record: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		if failErr := uc.analyses.MarkFailed(ctx, doc.ID, err.Error()); failErr != nil {
			return nil, fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return nil, err
	}

	ocrConfidence := heuristics.OCRConfidence(text)

	record, err = uc.analyses.MarkCompleted(ctx, doc.ID, text, ocrConfidence)
	if err != nil {
		return nil, fmt.Errorf("mark analysis completed: %w", err)
	}

	// The synthesizer self-recovers (mock fallback), so this error path is
	// only reachable through context cancellation inside an implementation.
	insights, err := uc.synthesizer.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("synthesize insights: %w", err)
	}

	// A failed insert here intentionally leaves the completed analysis
	// untouched: completed is terminal, and a missing insight row is an
	// accepted recoverable state.
	insightRecord := &domain.InsightRecord{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Insights:   insights,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.insights.Create(ctx, insightRecord); err != nil {
		return nil, fmt.Errorf("create insight record: %w", err)
	}

	return record, nil
}
