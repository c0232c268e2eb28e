package ports

import (
	"context"
	"io"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

// DocumentUploader is the inbound contract for the upload saga.
type DocumentUploader interface {
	Upload(ctx context.Context, userID, filename, mimeType string, size int64, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor runs the extraction/analysis pipeline for one document.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) (*domain.AnalysisRecord, error)
}

// DocumentReader is the inbound read model.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.DocumentWithRelations, error)
	ListByUser(ctx context.Context, userID string) ([]domain.DocumentWithRelations, error)
}

// DocumentRemover deletes a document, its blob, and dependent rows.
type DocumentRemover interface {
	Delete(ctx context.Context, documentID string) error
}

// DashboardService aggregates insights across a user's documents.
type DashboardService interface {
	Stats(ctx context.Context, userID string) (*domain.DashboardStats, error)
}
