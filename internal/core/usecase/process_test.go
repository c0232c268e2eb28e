package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

type docRepoFake struct {
	doc    *domain.Document
	getErr error
}

func (f *docRepoFake) Create(context.Context, *domain.Document) error { return nil }
func (f *docRepoFake) Delete(context.Context, string) error           { return nil }

func (f *docRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *docRepoFake) GetWithRelations(context.Context, string) (*domain.DocumentWithRelations, error) {
	return nil, nil
}

func (f *docRepoFake) ListByUser(context.Context, string) ([]domain.DocumentWithRelations, error) {
	return nil, nil
}

type analysisRepoFake struct {
	created       *domain.AnalysisRecord
	createErr     error
	completedErr  error
	failedMessage string
	failedCalls   int
	completed     *domain.AnalysisRecord
}

func (f *analysisRepoFake) Create(_ context.Context, rec *domain.AnalysisRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = rec
	return nil
}

func (f *analysisRepoFake) MarkCompleted(_ context.Context, documentID, text string, conf int) (*domain.AnalysisRecord, error) {
	if f.completedErr != nil {
		return nil, f.completedErr
	}
	f.completed = &domain.AnalysisRecord{
		DocumentID:       documentID,
		ExtractedText:    text,
		OCRConfidence:    conf,
		ProcessingStatus: domain.ProcessingCompleted,
	}
	return f.completed, nil
}

func (f *analysisRepoFake) MarkFailed(_ context.Context, _ string, message string) error {
	f.failedCalls++
	f.failedMessage = message
	return nil
}

func (f *analysisRepoFake) GetByDocumentID(context.Context, string) (*domain.AnalysisRecord, error) {
	return f.completed, nil
}

type insightRepoFake struct {
	created   *domain.InsightRecord
	createErr error
}

func (f *insightRepoFake) Create(_ context.Context, rec *domain.InsightRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = rec
	return nil
}

func (f *insightRepoFake) GetByDocumentID(context.Context, string) (*domain.InsightRecord, error) {
	return f.created, nil
}

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, *domain.Document) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type synthesizerFake struct {
	insights domain.Insights
	err      error
}

func (f *synthesizerFake) Analyze(context.Context, string) (domain.Insights, error) {
	if f.err != nil {
		return domain.Insights{}, f.err
	}
	return f.insights, nil
}

func TestProcessByIDSuccess(t *testing.T) {
	analyses := &analysisRepoFake{}
	insights := &insightRepoFake{}
	uc := NewProcessDocumentUseCase(
		&docRepoFake{doc: &domain.Document{ID: "doc-1"}},
		analyses,
		insights,
		&extractorFake{text: "a contract with plenty of words, punctuation, and structure."},
		&synthesizerFake{insights: domain.Insights{Summary: "ok"}},
	)

	record, err := uc.ProcessByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if record.ProcessingStatus != domain.ProcessingCompleted {
		t.Fatalf("expected completed analysis, got %+v", record)
	}
	if analyses.created == nil || analyses.created.ProcessingStatus != domain.ProcessingInProgress {
		t.Fatalf("analysis must start in processing, got %+v", analyses.created)
	}
	if record.OCRConfidence <= 0 || record.OCRConfidence > 95 {
		t.Fatalf("ocr confidence out of range: %d", record.OCRConfidence)
	}
	if insights.created == nil || insights.created.DocumentID != "doc-1" {
		t.Fatalf("expected insight record, got %+v", insights.created)
	}
}

func TestProcessByIDExtractionFailure(t *testing.T) {
	analyses := &analysisRepoFake{}
	insights := &insightRepoFake{}
	uc := NewProcessDocumentUseCase(
		&docRepoFake{doc: &domain.Document{ID: "doc-1"}},
		analyses,
		insights,
		&extractorFake{err: domain.WrapError(domain.ErrUnreadable, "decode", errors.New("bad bytes"))},
		&synthesizerFake{},
	)

	_, err := uc.ProcessByID(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrUnreadable) {
		t.Fatalf("expected extraction error to surface, got %v", err)
	}
	if analyses.failedCalls != 1 || analyses.failedMessage == "" {
		t.Fatalf("expected failed analysis with message, got calls=%d message=%q",
			analyses.failedCalls, analyses.failedMessage)
	}
	if insights.created != nil {
		t.Fatalf("no insight record may exist after a failed extraction, got %+v", insights.created)
	}
}

func TestProcessByIDInsightInsertFailureKeepsCompletedAnalysis(t *testing.T) {
	analyses := &analysisRepoFake{}
	uc := NewProcessDocumentUseCase(
		&docRepoFake{doc: &domain.Document{ID: "doc-1"}},
		analyses,
		&insightRepoFake{createErr: errors.New("insert failed")},
		&extractorFake{text: "some text"},
		&synthesizerFake{insights: domain.Insights{Summary: "ok"}},
	)

	_, err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected insight insert error to surface")
	}
	if analyses.failedCalls != 0 {
		t.Fatalf("completed analysis is terminal and must not be marked failed")
	}
	if analyses.completed == nil || analyses.completed.ProcessingStatus != domain.ProcessingCompleted {
		t.Fatalf("expected completed analysis to stay, got %+v", analyses.completed)
	}
}

func TestProcessByIDDocumentLookupFailure(t *testing.T) {
	analyses := &analysisRepoFake{}
	uc := NewProcessDocumentUseCase(
		&docRepoFake{getErr: domain.ErrDocumentNotFound},
		analyses,
		&insightRepoFake{},
		&extractorFake{},
		&synthesizerFake{},
	)

	if _, err := uc.ProcessByID(context.Background(), "missing"); !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if analyses.created != nil {
		t.Fatalf("no analysis record may be created for a missing document")
	}
}
