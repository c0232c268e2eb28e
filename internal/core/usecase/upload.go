package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avshapoval/doc-insights/internal/core/domain"
	"github.com/avshapoval/doc-insights/internal/core/ports"
)

// UploadDocumentUseCase runs the upload saga: blob write, row insert,
// uploaded event. The blob and row writes are not transactional; a failed
// insert triggers a best-effort compensating delete of the blob.
type UploadDocumentUseCase struct {
	repo    ports.DocumentRepository
	storage ports.BlobStorage
	queue   ports.MessageQueue
	logger  *slog.Logger
}

func NewUploadDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.BlobStorage,
	queue ports.MessageQueue,
	logger *slog.Logger,
) *UploadDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadDocumentUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
		logger:  logger,
	}
}

func (uc *UploadDocumentUseCase) Upload(
	ctx context.Context,
	userID, filename, mimeType string,
	size int64,
	body io.Reader,
) (*domain.Document, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", fmt.Errorf("user id is required"))
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s/%s_%s", userID, id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "save to blob storage", err)
	}

	doc := &domain.Document{
		ID:           id,
		UserID:       userID,
		Filename:     filename,
		FileSize:     size,
		FileType:     mimeType,
		StoragePath:  storageKey,
		UploadStatus: domain.UploadCompleted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		// Compensate the blob write. A failed compensation leaves an
		// orphaned blob, which is accepted and only logged.
		if delErr := uc.storage.Delete(ctx, storageKey); delErr != nil {
			uc.logger.Error("compensating blob delete failed",
				"storage_key", storageKey, "error", delErr)
		}
		return nil, domain.WrapError(domain.ErrStorage, "insert document row", err)
	}

	if err := uc.queue.PublishDocumentUploaded(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish uploaded event: %w", err)
	}

	return doc, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
