package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avshapoval/doc-insights/internal/core/domain"
	"github.com/avshapoval/doc-insights/internal/core/ports"
)

// DocumentsUseCase serves reads and deletion of documents with their
// analysis and insight children.
type DocumentsUseCase struct {
	repo    ports.DocumentRepository
	storage ports.BlobStorage
	logger  *slog.Logger
}

func NewDocumentsUseCase(repo ports.DocumentRepository, storage ports.BlobStorage, logger *slog.Logger) *DocumentsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentsUseCase{repo: repo, storage: storage, logger: logger}
}

func (uc *DocumentsUseCase) GetByID(ctx context.Context, id string) (*domain.DocumentWithRelations, error) {
	doc, err := uc.repo.GetWithRelations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	return doc, nil
}

// ListByUser returns the user's documents newest first.
func (uc *DocumentsUseCase) ListByUser(ctx context.Context, userID string) ([]domain.DocumentWithRelations, error) {
	docs, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Delete removes the blob first, then the row; dependent analysis and
// insight rows go with the row via cascade. A blob delete failure is only
// logged so a half-removed blob cannot strand the row forever.
func (uc *DocumentsUseCase) Delete(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document for delete: %w", err)
	}

	if err := uc.storage.Delete(ctx, doc.StoragePath); err != nil {
		uc.logger.Warn("blob delete failed", "storage_key", doc.StoragePath, "error", err)
	}

	if err := uc.repo.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("delete document row: %w", err)
	}
	return nil
}
