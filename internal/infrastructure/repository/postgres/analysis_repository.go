package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avshapoval/doc-insights/internal/core/domain"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Create(ctx context.Context, rec *domain.AnalysisRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO document_analysis (
	id, document_id, extracted_text, ocr_confidence, processing_status, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		rec.ID, rec.DocumentID, rec.ExtractedText, rec.OCRConfidence,
		string(rec.ProcessingStatus), rec.ErrorMessage, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis record: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) MarkCompleted(ctx context.Context, documentID, extractedText string, ocrConfidence int) (*domain.AnalysisRecord, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE document_analysis
SET extracted_text = $2, ocr_confidence = $3, processing_status = $4, updated_at = $5
WHERE document_id = $1
RETURNING id, document_id, extracted_text, ocr_confidence, processing_status, error_message, created_at, updated_at
`, documentID, extractedText, ocrConfidence, string(domain.ProcessingCompleted), time.Now().UTC())

	rec, err := scanAnalysisRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "mark analysis completed", fmt.Errorf("document %s", documentID))
		}
		return nil, fmt.Errorf("mark analysis completed: %w", err)
	}
	return rec, nil
}

func (r *AnalysisRepository) MarkFailed(ctx context.Context, documentID, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE document_analysis
SET processing_status = $2, error_message = $3, updated_at = $4
WHERE document_id = $1
`, documentID, string(domain.ProcessingFailed), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark analysis failed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark analysis failed rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "mark analysis failed", fmt.Errorf("document %s", documentID))
	}
	return nil
}

func (r *AnalysisRepository) GetByDocumentID(ctx context.Context, documentID string) (*domain.AnalysisRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, document_id, extracted_text, ocr_confidence, processing_status, error_message, created_at, updated_at
FROM document_analysis
WHERE document_id = $1
`, documentID)

	rec, err := scanAnalysisRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get analysis record", fmt.Errorf("document %s", documentID))
		}
		return nil, fmt.Errorf("get analysis record: %w", err)
	}
	return rec, nil
}

func scanAnalysisRow(row rowScanner) (*domain.AnalysisRecord, error) {
	var rec domain.AnalysisRecord
	var extractedText, errorMessage sql.NullString
	var status string

	err := row.Scan(
		&rec.ID, &rec.DocumentID, &extractedText, &rec.OCRConfidence,
		&status, &errorMessage, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.ExtractedText = extractedText.String
	rec.ErrorMessage = errorMessage.String
	rec.ProcessingStatus = domain.ProcessingStatus(status)
	return &rec, nil
}
