package ports

import (
	"context"
	"io"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

// DocumentRepository persists document rows and their joined children.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	GetWithRelations(ctx context.Context, id string) (*domain.DocumentWithRelations, error)
	ListByUser(ctx context.Context, userID string) ([]domain.DocumentWithRelations, error)
	Delete(ctx context.Context, id string) error
}

// AnalysisRepository tracks the per-document processing state machine.
type AnalysisRepository interface {
	Create(ctx context.Context, rec *domain.AnalysisRecord) error
	MarkCompleted(ctx context.Context, documentID, extractedText string, ocrConfidence int) (*domain.AnalysisRecord, error)
	MarkFailed(ctx context.Context, documentID, errMessage string) error
	GetByDocumentID(ctx context.Context, documentID string) (*domain.AnalysisRecord, error)
}

// InsightRepository stores synthesizer output; rows are write-once.
type InsightRepository interface {
	Create(ctx context.Context, rec *domain.InsightRecord) error
	GetByDocumentID(ctx context.Context, documentID string) (*domain.InsightRecord, error)
}

// BlobStorage stores source documents.
type BlobStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// MessageQueue publishes/consumes upload events.
type MessageQueue interface {
	PublishDocumentUploaded(ctx context.Context, documentID string) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor turns a stored document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// InsightSynthesizer turns extracted text into structured insights.
// Implementations must degrade internally rather than fail: a model-backed
// synthesizer falls back to the deterministic mock on any call or parse error.
type InsightSynthesizer interface {
	Analyze(ctx context.Context, text string) (domain.Insights, error)
}
